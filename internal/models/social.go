package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "PENDING"
	FriendshipAccepted FriendshipStatus = "ACCEPTED"
	FriendshipRejected FriendshipStatus = "REJECTED"
)

type Friendship struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	SenderID   uuid.UUID        `db:"sender_id" json:"senderId"`
	ReceiverID uuid.UUID        `db:"receiver_id" json:"receiverId"`
	Status     FriendshipStatus `db:"status" json:"status"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updatedAt"`
}

// Other returns the counterparty of userID in the friendship.
func (f *Friendship) Other(userID uuid.UUID) uuid.UUID {
	if f.SenderID == userID {
		return f.ReceiverID
	}
	return f.SenderID
}

// Blocks reports whether the friendship prevents a new request.
func (f *Friendship) Blocks() bool {
	return f.Status == FriendshipPending || f.Status == FriendshipAccepted
}

type FriendRequest struct {
	Friendship
	Sender UserSummary `db:"sender" json:"sender"`
}

type BlockedUser struct {
	BlockerID uuid.UUID `db:"blocker_id" json:"blockerId"`
	BlockedID uuid.UUID `db:"blocked_id" json:"blockedId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
