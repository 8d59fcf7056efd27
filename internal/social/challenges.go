package social

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/store"
)

func (s *Service) ListChallenges(ctx context.Context, viewer uuid.UUID) ([]models.ChallengeView, error) {
	views, err := s.store.ListChallenges(ctx, viewer)
	return views, errors.Wrap(err, "social.ListChallenges")
}

// JoinChallenge creates the tracking habit, the participant row and the forum
// membership, and bumps the counter, all in one transaction.
func (s *Service) JoinChallenge(ctx context.Context, viewer, challengeID uuid.UUID) (*models.ChallengeView, error) {
	var view models.ChallengeView
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		c, err := tx.GetChallenge(ctx, challengeID)
		if err != nil {
			return notFound(err, api_error.ChallengeNotFound, "social.JoinChallenge")
		}

		if _, err := tx.GetParticipant(ctx, c.ID, viewer); err == nil {
			return api_error.AlreadyJoined
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		h := &models.Habit{UserID: viewer, Name: c.Name, Category: models.CHALLENGE_CATEGORY}
		if err := tx.CreateHabit(ctx, h); err != nil {
			return err
		}
		if err := tx.CreateParticipant(ctx, c.ID, viewer, &h.ID); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return api_error.AlreadyJoined
			}
			return err
		}
		if c.RoomID != nil {
			if err := tx.AddParticipant(ctx, *c.RoomID, viewer); err != nil {
				return err
			}
		}
		if err := tx.AdjustParticipants(ctx, c.ID, 1); err != nil {
			return err
		}

		updated, err := tx.GetChallenge(ctx, c.ID)
		if err != nil {
			return err
		}
		view = models.ChallengeView{Challenge: *updated, Joined: true, HabitID: &h.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	afterCommit("badges", s.evaluateBadges(ctx, viewer))
	return &view, nil
}

// LeaveChallenge reverses JoinChallenge in one transaction.
func (s *Service) LeaveChallenge(ctx context.Context, viewer, challengeID uuid.UUID) (*models.ChallengeView, error) {
	var view models.ChallengeView
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		c, err := tx.GetChallenge(ctx, challengeID)
		if err != nil {
			return notFound(err, api_error.ChallengeNotFound, "social.LeaveChallenge")
		}

		p, err := tx.GetParticipant(ctx, c.ID, viewer)
		if err != nil {
			return notFound(err, api_error.NotAParticipant, "social.LeaveChallenge")
		}

		if err := tx.DeleteParticipant(ctx, c.ID, viewer); err != nil {
			return err
		}
		if p.HabitID != nil {
			if err := tx.DeleteHabit(ctx, *p.HabitID); err != nil {
				return err
			}
		}
		if c.RoomID != nil {
			if err := tx.RemoveParticipant(ctx, *c.RoomID, viewer); err != nil {
				return err
			}
		}
		if err := tx.AdjustParticipants(ctx, c.ID, -1); err != nil {
			return err
		}

		updated, err := tx.GetChallenge(ctx, c.ID)
		if err != nil {
			return err
		}
		view = models.ChallengeView{Challenge: *updated}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}
