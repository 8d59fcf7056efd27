package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatRoom struct {
	ID           uuid.UUID         `db:"id" json:"id"`
	IsGroup      bool              `db:"is_group" json:"isGroup"`
	Name         *string           `db:"name" json:"name"`
	CreatedAt    time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updatedAt"`
	Participants []ChatParticipant `db:"-" json:"participants"`
	Messages     []Message         `db:"-" json:"messages,omitempty"`
}

func (r *ChatRoom) HasParticipant(userID uuid.UUID) bool {
	for _, p := range r.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the counterparty in a 1:1 room.
func (r *ChatRoom) OtherParticipant(viewer uuid.UUID) (uuid.UUID, bool) {
	if r.IsGroup {
		return uuid.Nil, false
	}
	for _, p := range r.Participants {
		if p.UserID != viewer {
			return p.UserID, true
		}
	}
	return uuid.Nil, false
}

type ChatParticipant struct {
	UserID   uuid.UUID   `db:"user_id" json:"userId"`
	RoomID   uuid.UUID   `db:"room_id" json:"roomId"`
	JoinedAt time.Time   `db:"joined_at" json:"joinedAt"`
	User     UserSummary `db:"user" json:"user"`
}

type Message struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	RoomID    uuid.UUID       `db:"room_id" json:"roomId"`
	SenderID  uuid.UUID       `db:"sender_id" json:"senderId"`
	Content   string          `db:"content" json:"content"`
	ReplyToID *uuid.UUID      `db:"reply_to_id" json:"replyToId"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	Sender    UserSummary     `db:"sender" json:"sender"`
	ReplyTo   *MessagePreview `db:"-" json:"replyTo"`
}

type MessagePreview struct {
	ID      uuid.UUID   `db:"id" json:"id"`
	Content string      `db:"content" json:"content"`
	Sender  UserSummary `db:"sender" json:"sender"`
}
