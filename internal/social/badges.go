package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/store"
)

// evaluateBadges awards every badge whose threshold the user has reached and
// sends an ACHIEVEMENT notification for each new one.
func (s *Service) evaluateBadges(ctx context.Context, userID uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx *store.Store) error {
		locked, err := tx.LockedBadges(ctx, userID)
		if err != nil {
			return err
		}
		if len(locked) == 0 {
			return nil
		}

		progress, err := progressOf(ctx, tx, userID)
		if err != nil {
			return err
		}

		for _, b := range locked {
			if progress.Value(b.Type) < b.Threshold {
				continue
			}
			awarded, err := tx.AwardBadge(ctx, userID, b.ID)
			if err != nil {
				return err
			}
			if !awarded {
				continue
			}
			badgeID := b.ID
			content := fmt.Sprintf("You unlocked the %s badge!", b.Name)
			if err := notify(ctx, tx, userID, models.NotificationAchievement, nil, &badgeID, content); err != nil {
				return err
			}
		}
		return nil
	})
}

func progressOf(ctx context.Context, st *store.Store, userID uuid.UUID) (models.Progress, error) {
	count, longest, err := st.HabitStats(ctx, userID)
	if err != nil {
		return models.Progress{}, errors.Wrap(err, "social.progressOf")
	}
	friends, err := st.CountFriends(ctx, userID)
	if err != nil {
		return models.Progress{}, errors.Wrap(err, "social.progressOf")
	}
	return models.Progress{HabitCount: count, LongestStreak: longest, FriendCount: friends}, nil
}

func (s *Service) ListBadges(ctx context.Context, userID uuid.UUID) ([]models.UnlockedBadge, error) {
	badges, err := s.store.UnlockedBadges(ctx, userID)
	return badges, errors.Wrap(err, "social.ListBadges")
}
