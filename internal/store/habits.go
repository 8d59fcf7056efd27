package store

import (
	"context"

	"github.com/google/uuid"

	"habitserver/internal/models"
	"habitserver/internal/utils/utils_db"
)

const habitColumns = `id, user_id, name, category, scheduled_time, streak, completed_today, last_completed_date, is_private, created_at`

func (s *Store) ListHabits(ctx context.Context, userID uuid.UUID) ([]models.Habit, error) {
	habits, err := utils_db.FetchAll[models.Habit](ctx, s.q,
		"SELECT "+habitColumns+" FROM habits WHERE user_id = $1 ORDER BY created_at, id", userID)
	return habits, wrap(err, "store.ListHabits")
}

func (s *Store) GetHabit(ctx context.Context, id uuid.UUID) (*models.Habit, error) {
	h, err := utils_db.FetchOne[models.Habit](ctx, s.q,
		"SELECT "+habitColumns+" FROM habits WHERE id = $1", id)
	if err != nil {
		return nil, wrap(err, "store.GetHabit")
	}
	return &h, nil
}

// LockHabit loads a habit row for update. It must be called inside WithTx.
func (s *Store) LockHabit(ctx context.Context, id uuid.UUID) (*models.Habit, error) {
	h, err := utils_db.FetchOne[models.Habit](ctx, s.q,
		"SELECT "+habitColumns+" FROM habits WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		return nil, wrap(err, "store.LockHabit")
	}
	return &h, nil
}

func (s *Store) CreateHabit(ctx context.Context, h *models.Habit) error {
	created, err := utils_db.FetchOne[models.Habit](ctx, s.q, `
	INSERT INTO habits (user_id, name, category, scheduled_time, is_private)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING `+habitColumns, h.UserID, h.Name, h.Category, h.ScheduledTime, h.IsPrivate)
	if err != nil {
		return wrap(err, "store.CreateHabit")
	}
	*h = created
	return nil
}

// SaveHabit writes every mutable column of h.
func (s *Store) SaveHabit(ctx context.Context, h *models.Habit) error {
	saved, err := utils_db.FetchOne[models.Habit](ctx, s.q, `
	UPDATE habits
	SET name = $2, category = $3, scheduled_time = $4, streak = $5,
		completed_today = $6, last_completed_date = $7, is_private = $8
	WHERE id = $1
	RETURNING `+habitColumns,
		h.ID, h.Name, h.Category, h.ScheduledTime, h.Streak, h.CompletedToday, h.LastCompletedDate, h.IsPrivate)
	if err != nil {
		return wrap(err, "store.SaveHabit")
	}
	*h = saved
	return nil
}

func (s *Store) DeleteHabit(ctx context.Context, id uuid.UUID) error {
	_, err := utils_db.Exec(ctx, s.q, "DELETE FROM habits WHERE id = $1", id)
	return wrap(err, "store.DeleteHabit")
}

// CountOwnedHabits counts how many of ids belong to userID.
func (s *Store) CountOwnedHabits(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	n, err := utils_db.GetTotalRecordNo(ctx, s.q,
		"SELECT COUNT(*) FROM habits WHERE user_id = $1 AND id = ANY($2)", userID, models.UUIDList(ids))
	return n, wrap(err, "store.CountOwnedHabits")
}

type habitStats struct {
	Count   int `db:"count"`
	Longest int `db:"longest"`
}

// HabitStats returns the habit count and the longest streak of userID.
func (s *Store) HabitStats(ctx context.Context, userID uuid.UUID) (count int, longest int, err error) {
	row, err := utils_db.FetchOne[habitStats](ctx, s.q,
		"SELECT COUNT(*) AS count, COALESCE(MAX(streak), 0) AS longest FROM habits WHERE user_id = $1", userID)
	if err != nil {
		return 0, 0, wrap(err, "store.HabitStats")
	}
	return row.Count, row.Longest, nil
}

func (s *Store) UpsertActivity(ctx context.Context, a *models.DailyActivity) error {
	saved, err := utils_db.FetchOne[models.DailyActivity](ctx, s.q, `
	INSERT INTO daily_activities (user_id, date, completed_habits, total_habits, completion_rate)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (user_id, date) DO UPDATE SET
		completed_habits = EXCLUDED.completed_habits,
		total_habits = EXCLUDED.total_habits,
		completion_rate = EXCLUDED.completion_rate
	RETURNING id, user_id, date, completed_habits, total_habits, completion_rate
	`, a.UserID, a.Date, a.CompletedHabits, a.TotalHabits, a.CompletionRate)
	if err != nil {
		return wrap(err, "store.UpsertActivity")
	}
	*a = saved
	return nil
}

// RecentActivity returns the latest days records of userID, newest first.
func (s *Store) RecentActivity(ctx context.Context, userID uuid.UUID, days int) ([]models.DailyActivity, error) {
	acts, err := utils_db.FetchAll[models.DailyActivity](ctx, s.q, `
	SELECT id, user_id, date, completed_habits, total_habits, completion_rate
	FROM daily_activities
	WHERE user_id = $1
	ORDER BY date DESC
	LIMIT $2
	`, userID, days)
	return acts, wrap(err, "store.RecentActivity")
}

// ActivityDates returns every date on which userID completed at least one
// habit, newest first.
func (s *Store) ActivityDates(ctx context.Context, userID uuid.UUID) ([]string, error) {
	dates, err := utils_db.FetchAll[string](ctx, s.q, `
	SELECT date FROM daily_activities
	WHERE user_id = $1 AND cardinality(completed_habits) > 0
	ORDER BY date DESC
	`, userID)
	return dates, wrap(err, "store.ActivityDates")
}
