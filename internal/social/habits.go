package social

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/habit"
	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/store"
)

type HabitInput struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category"`
	ScheduledTime *string `json:"scheduledTime"`
	IsPrivate     bool    `json:"isPrivate"`
}

type HabitUpdate struct {
	Name           *string `json:"name"`
	Category       *string `json:"category"`
	ScheduledTime  *string `json:"scheduledTime"`
	IsPrivate      *bool   `json:"isPrivate"`
	CompletedToday *bool   `json:"completedToday"`
}

type ActivityInput struct {
	Date            string      `json:"date" binding:"required"`
	CompletedHabits []uuid.UUID `json:"completedHabits"`
	TotalHabits     *int        `json:"totalHabits"`
}

// ListHabits returns the user's habits with completedToday reflecting the
// current day.
func (s *Service) ListHabits(ctx context.Context, userID uuid.UUID) ([]models.Habit, error) {
	habits, err := s.store.ListHabits(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "social.ListHabits")
	}
	today := s.today()
	for i := range habits {
		habit.ResetIfStale(&habits[i], today)
	}
	return habits, nil
}

func (s *Service) CreateHabit(ctx context.Context, userID uuid.UUID, in HabitInput) (*models.Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, api_error.BadRequest("Name is required")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.DEFAULT_CATEGORY
	}

	h := &models.Habit{
		UserID:        userID,
		Name:          name,
		Category:      category,
		ScheduledTime: in.ScheduledTime,
		IsPrivate:     in.IsPrivate,
	}
	if err := s.store.CreateHabit(ctx, h); err != nil {
		return nil, errors.Wrap(err, "social.CreateHabit")
	}

	afterCommit("badges", s.evaluateBadges(ctx, userID))
	return h, nil
}

// UpdateHabit edits one of the caller's habits. Completion goes through the
// streak rules; another user's habit is reported as missing.
func (s *Service) UpdateHabit(ctx context.Context, userID, habitID uuid.UUID, in HabitUpdate) (*models.Habit, error) {
	var h *models.Habit
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		var err error
		h, err = tx.LockHabit(ctx, habitID)
		if err != nil {
			return notFound(err, api_error.HabitNotFound, "social.UpdateHabit")
		}
		if err := ensureOwner(h, userID, api_error.HabitNotFound); err != nil {
			return err
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return api_error.BadRequest("Name is required")
			}
			h.Name = name
		}
		if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
			h.Category = strings.TrimSpace(*in.Category)
		}
		if in.ScheduledTime != nil {
			h.ScheduledTime = in.ScheduledTime
			if *in.ScheduledTime == "" {
				h.ScheduledTime = nil
			}
		}
		if in.IsPrivate != nil {
			h.IsPrivate = *in.IsPrivate
		}
		if in.CompletedToday != nil {
			habit.ApplyCompletion(h, *in.CompletedToday, s.today())
		}
		return tx.SaveHabit(ctx, h)
	})
	if err != nil {
		return nil, err
	}

	if in.CompletedToday != nil && *in.CompletedToday {
		afterCommit("badges", s.evaluateBadges(ctx, userID))
	}
	return h, nil
}

func (s *Service) DeleteHabit(ctx context.Context, userID, habitID uuid.UUID) error {
	h, err := s.store.GetHabit(ctx, habitID)
	if err != nil {
		return notFound(err, api_error.HabitNotFound, "social.DeleteHabit")
	}
	if err := ensureOwner(h, userID, api_error.HabitNotFound); err != nil {
		return err
	}
	return errors.Wrap(s.store.DeleteHabit(ctx, habitID), "social.DeleteHabit")
}

// SaveActivity upserts the snapshot of one day. Only the caller's own habits
// may be listed as completed.
func (s *Service) SaveActivity(ctx context.Context, userID uuid.UUID, in ActivityInput) (*models.DailyActivity, error) {
	if _, err := time.Parse(models.DATE_FORMAT, in.Date); err != nil {
		return nil, api_error.BadRequest("date must be YYYY-MM-DD")
	}

	completed := dedupe(in.CompletedHabits)
	if len(completed) > 0 {
		owned, err := s.store.CountOwnedHabits(ctx, userID, completed)
		if err != nil {
			return nil, errors.Wrap(err, "social.SaveActivity")
		}
		if owned != len(completed) {
			return nil, api_error.HabitNotFound
		}
	}

	total := 0
	if in.TotalHabits != nil {
		total = *in.TotalHabits
	} else {
		count, _, err := s.store.HabitStats(ctx, userID)
		if err != nil {
			return nil, errors.Wrap(err, "social.SaveActivity")
		}
		total = count
	}
	if total < len(completed) {
		total = len(completed)
	}

	a := &models.DailyActivity{
		UserID:          userID,
		Date:            in.Date,
		CompletedHabits: completed,
		TotalHabits:     total,
		CompletionRate:  habit.CompletionRate(len(completed), total),
	}
	if err := s.store.UpsertActivity(ctx, a); err != nil {
		return nil, errors.Wrap(err, "social.SaveActivity")
	}
	return a, nil
}

func (s *Service) AnalyticsSummary(ctx context.Context, userID uuid.UUID) (*models.AnalyticsSummary, error) {
	count, longest, err := s.store.HabitStats(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "social.AnalyticsSummary")
	}
	dates, err := s.store.ActivityDates(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "social.AnalyticsSummary")
	}
	recent, err := s.store.RecentActivity(ctx, userID, 7)
	if err != nil {
		return nil, errors.Wrap(err, "social.AnalyticsSummary")
	}
	return &models.AnalyticsSummary{
		TotalHabits:    count,
		LongestStreak:  longest,
		ActivityStreak: habit.CurrentStreak(dates, s.today()),
		RecentActivity: recent,
	}, nil
}

func dedupe(ids []uuid.UUID) models.UUIDList {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make(models.UUIDList, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
