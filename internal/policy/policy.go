// Package policy decides who may see or interact with whom. Every decision is
// computed from the current friendship and block edges; nothing is cached.
package policy

//go:generate mockgen -destination=mocks/mock_graph.go -package=mocks habitserver/internal/policy Graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
)

// Graph is the read side of the social graph the policy consults.
type Graph interface {
	// IsBlocked reports whether a block edge exists between a and b in either
	// direction.
	IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error)
	// FriendshipBetween returns the friendship of the unordered pair, or nil.
	FriendshipBetween(ctx context.Context, a, b uuid.UUID) (*models.Friendship, error)
	// BlockedIDs returns every user on either side of a block edge with userID.
	BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type Access int

const (
	Denied Access = iota
	Restricted
	Full
)

func (a Access) String() string {
	switch a {
	case Full:
		return "FULL"
	case Restricted:
		return "RESTRICTED"
	}
	return "DENIED"
}

type Policy struct {
	graph Graph
}

func New(graph Graph) *Policy {
	return &Policy{graph: graph}
}

func (p *Policy) CanViewProfile(ctx context.Context, viewer uuid.UUID, target *models.User) (Access, error) {
	if viewer == target.ID {
		return Full, nil
	}

	blocked, err := p.graph.IsBlocked(ctx, viewer, target.ID)
	if err != nil {
		return Denied, errors.Wrap(err, "policy.CanViewProfile")
	}
	if blocked {
		return Denied, nil
	}

	if target.ProfileVisibility == models.VisibilityPublic {
		return Full, nil
	}

	friends, err := p.areFriends(ctx, viewer, target.ID)
	if err != nil {
		return Denied, errors.Wrap(err, "policy.CanViewProfile")
	}
	switch {
	case friends:
		return Full, nil
	case target.ProfileVisibility == models.VisibilityPrivate:
		return Denied, nil
	}
	return Restricted, nil
}

// CanInteractInChat is false when a block edge separates the two users.
func (p *Policy) CanInteractInChat(ctx context.Context, viewer, other uuid.UUID) (bool, error) {
	blocked, err := p.graph.IsBlocked(ctx, viewer, other)
	if err != nil {
		return false, errors.Wrap(err, "policy.CanInteractInChat")
	}
	return !blocked, nil
}

// CanChatInRoom applies CanInteractInChat to the counterpart of a 1:1 room.
// Group rooms always pass. room.Participants must be loaded.
func (p *Policy) CanChatInRoom(ctx context.Context, viewer uuid.UUID, room *models.ChatRoom) (bool, error) {
	other, ok := room.OtherParticipant(viewer)
	if !ok {
		return true, nil
	}
	return p.CanInteractInChat(ctx, viewer, other)
}

// FilterBlockedFromRoomList drops 1:1 rooms whose counterpart has a block edge
// with viewer. rooms must have their participants loaded.
func (p *Policy) FilterBlockedFromRoomList(ctx context.Context, viewer uuid.UUID, rooms []models.ChatRoom) ([]models.ChatRoom, error) {
	ids, err := p.graph.BlockedIDs(ctx, viewer)
	if err != nil {
		return nil, errors.Wrap(err, "policy.FilterBlockedFromRoomList")
	}
	blocked := models.UUIDList(ids)

	out := make([]models.ChatRoom, 0, len(rooms))
	for _, room := range rooms {
		if other, ok := room.OtherParticipant(viewer); ok && blocked.Contains(other) {
			continue
		}
		out = append(out, room)
	}
	return out, nil
}

// CanSendFriendRequest is false for self requests and while a PENDING or
// ACCEPTED friendship exists in either direction.
func (p *Policy) CanSendFriendRequest(ctx context.Context, viewer, target uuid.UUID) (bool, error) {
	if viewer == target {
		return false, nil
	}
	f, err := p.graph.FriendshipBetween(ctx, viewer, target)
	if err != nil {
		return false, errors.Wrap(err, "policy.CanSendFriendRequest")
	}
	return f == nil || !f.Blocks(), nil
}

// CanSeePost reports whether a post by author appears for viewer.
func (p *Policy) CanSeePost(ctx context.Context, viewer uuid.UUID, author *models.User) (bool, error) {
	if viewer == author.ID {
		return true, nil
	}
	blocked, err := p.graph.IsBlocked(ctx, viewer, author.ID)
	if err != nil {
		return false, errors.Wrap(err, "policy.CanSeePost")
	}
	if blocked {
		return false, nil
	}
	var friends bool
	if author.ProfileVisibility == models.VisibilityFriends {
		if friends, err = p.areFriends(ctx, viewer, author.ID); err != nil {
			return false, errors.Wrap(err, "policy.CanSeePost")
		}
	}
	return FeedVisible(viewer, author.ID, author.ProfileVisibility, friends), nil
}

// FeedVisible is the feed rule for one post: the viewer's own posts, every
// PUBLIC author, and FRIENDS authors the viewer is friends with. Block edges
// are applied by the caller.
func FeedVisible(viewer, author uuid.UUID, visibility models.Visibility, friends bool) bool {
	switch {
	case viewer == author:
		return true
	case visibility == models.VisibilityPublic:
		return true
	case visibility == models.VisibilityFriends:
		return friends
	}
	return false
}

func (p *Policy) areFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	f, err := p.graph.FriendshipBetween(ctx, a, b)
	if err != nil {
		return false, err
	}
	return f != nil && f.Status == models.FriendshipAccepted, nil
}
