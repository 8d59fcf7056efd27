package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/policy"
	"habitserver/internal/store"
)

type FriendAction string

const (
	ActionAccept FriendAction = "ACCEPT"
	ActionReject FriendAction = "REJECT"
)

type FriendRequestInput struct {
	Username string `json:"username" binding:"required"`
}

type RespondInput struct {
	RequestID uuid.UUID    `json:"requestId" binding:"required"`
	Action    FriendAction `json:"action" binding:"required"`
}

type TargetInput struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

func (s *Service) SearchUsers(ctx context.Context, viewer uuid.UUID, term string) ([]models.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.SearchResult{}, nil
	}
	users, err := s.store.SearchUsers(ctx, viewer, term, models.SEARCH_LIMIT)
	return users, errors.Wrap(err, "social.SearchUsers")
}

// SendFriendRequest creates a PENDING friendship from viewer to the named
// user. A REJECTED friendship between the pair is reopened in the new
// direction.
func (s *Service) SendFriendRequest(ctx context.Context, viewer uuid.UUID, username string) (*models.Friendship, error) {
	target, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, notFound(err, api_error.UserNotFound, "social.SendFriendRequest")
	}
	if target.ID == viewer {
		return nil, api_error.SelfRequest
	}

	var f *models.Friendship
	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.LockPair(ctx, "friendship", viewer, target.ID); err != nil {
			return err
		}

		blocked, err := tx.IsBlocked(ctx, viewer, target.ID)
		if err != nil {
			return err
		}
		if blocked {
			return api_error.UserBlocked
		}

		ok, err := policy.New(tx).CanSendFriendRequest(ctx, viewer, target.ID)
		if err != nil {
			return err
		}
		if !ok {
			return api_error.RequestExists
		}

		existing, err := tx.FriendshipBetween(ctx, viewer, target.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			f, err = tx.ReopenFriendRequest(ctx, existing.ID, viewer, target.ID)
		} else {
			f, err = tx.CreateFriendRequest(ctx, viewer, target.ID)
		}
		if errors.Is(err, store.ErrConflict) {
			return api_error.RequestExists
		}
		if err != nil {
			return err
		}

		sender, err := tx.GetUserByID(ctx, viewer)
		if err != nil {
			return err
		}
		content := fmt.Sprintf("%s sent you a friend request", sender.Name)
		return notify(ctx, tx, target.ID, models.NotificationFriendRequest, &viewer, &f.ID, content)
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) IncomingRequests(ctx context.Context, viewer uuid.UUID) ([]models.FriendRequest, error) {
	reqs, err := s.store.IncomingRequests(ctx, viewer)
	return reqs, errors.Wrap(err, "social.IncomingRequests")
}

// RespondToRequest accepts or rejects a PENDING request addressed to viewer.
func (s *Service) RespondToRequest(ctx context.Context, viewer uuid.UUID, in RespondInput) (*models.Friendship, error) {
	var status models.FriendshipStatus
	switch FriendAction(strings.ToUpper(string(in.Action))) {
	case ActionAccept:
		status = models.FriendshipAccepted
	case ActionReject:
		status = models.FriendshipRejected
	default:
		return nil, api_error.BadRequest("action must be ACCEPT or REJECT")
	}

	var f *models.Friendship
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		current, err := tx.GetFriendship(ctx, in.RequestID)
		if err != nil {
			return notFound(err, api_error.RequestNotFound, "social.RespondToRequest")
		}
		if current.ReceiverID != viewer || current.Status != models.FriendshipPending {
			return api_error.RequestNotFound
		}

		if f, err = tx.SetFriendshipStatus(ctx, current.ID, status); err != nil {
			return err
		}
		if status != models.FriendshipAccepted {
			return nil
		}

		receiver, err := tx.GetUserByID(ctx, viewer)
		if err != nil {
			return err
		}
		content := fmt.Sprintf("%s accepted your friend request", receiver.Name)
		return notify(ctx, tx, f.SenderID, models.NotificationFriendRequest, &viewer, &f.ID, content)
	})
	if err != nil {
		return nil, err
	}

	if status == models.FriendshipAccepted {
		afterCommit("badges", s.evaluateBadges(ctx, f.SenderID))
		afterCommit("badges", s.evaluateBadges(ctx, f.ReceiverID))
	}
	return f, nil
}

func (s *Service) ListFriends(ctx context.Context, viewer uuid.UUID) ([]models.UserSummary, error) {
	friends, err := s.store.ListFriends(ctx, viewer)
	return friends, errors.Wrap(err, "social.ListFriends")
}

// Block records a block edge from viewer to target. Blocking twice is a
// no-op.
func (s *Service) Block(ctx context.Context, viewer, target uuid.UUID) error {
	if viewer == target {
		return api_error.SelfBlock
	}
	if _, err := s.getUser(ctx, target); err != nil {
		return err
	}
	return errors.Wrap(s.store.Block(ctx, viewer, target), "social.Block")
}

func (s *Service) Unblock(ctx context.Context, viewer, target uuid.UUID) error {
	return errors.Wrap(s.store.Unblock(ctx, viewer, target), "social.Unblock")
}

func (s *Service) ListBlocked(ctx context.Context, viewer uuid.UUID) ([]models.UserSummary, error) {
	users, err := s.store.ListBlocked(ctx, viewer)
	return users, errors.Wrap(err, "social.ListBlocked")
}
