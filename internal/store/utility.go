package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/utils/utils_db"
)

const reminderColumns = `id, user_id, title, note, remind_at, is_done, created_at`

func (s *Store) ListReminders(ctx context.Context, userID uuid.UUID) ([]models.Reminder, error) {
	rs, err := utils_db.FetchAll[models.Reminder](ctx, s.q, `
	SELECT `+reminderColumns+`
	FROM reminders
	WHERE user_id = $1
	ORDER BY is_done ASC, remind_at ASC NULLS LAST, created_at DESC
	`, userID)
	return rs, wrap(err, "store.ListReminders")
}

func (s *Store) GetReminder(ctx context.Context, id uuid.UUID) (*models.Reminder, error) {
	r, err := utils_db.FetchOne[models.Reminder](ctx, s.q,
		"SELECT "+reminderColumns+" FROM reminders WHERE id = $1", id)
	if err != nil {
		return nil, wrap(err, "store.GetReminder")
	}
	return &r, nil
}

func (s *Store) CreateReminder(ctx context.Context, r *models.Reminder) error {
	created, err := utils_db.FetchOne[models.Reminder](ctx, s.q, `
	INSERT INTO reminders (user_id, title, note, remind_at)
	VALUES ($1, $2, $3, $4)
	RETURNING `+reminderColumns, r.UserID, r.Title, r.Note, r.RemindAt)
	if err != nil {
		return wrap(err, "store.CreateReminder")
	}
	*r = created
	return nil
}

func (s *Store) SaveReminder(ctx context.Context, r *models.Reminder) error {
	saved, err := utils_db.FetchOne[models.Reminder](ctx, s.q, `
	UPDATE reminders SET title = $2, note = $3, remind_at = $4, is_done = $5
	WHERE id = $1
	RETURNING `+reminderColumns, r.ID, r.Title, r.Note, r.RemindAt, r.IsDone)
	if err != nil {
		return wrap(err, "store.SaveReminder")
	}
	*r = saved
	return nil
}

func (s *Store) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	_, err := utils_db.Exec(ctx, s.q, "DELETE FROM reminders WHERE id = $1", id)
	return wrap(err, "store.DeleteReminder")
}

func (s *Store) GetPomodoroSettings(ctx context.Context, userID uuid.UUID) (models.PomodoroSettings, error) {
	ps, err := utils_db.FetchOne[models.PomodoroSettings](ctx, s.q,
		"SELECT * FROM pomodoro_settings WHERE user_id = $1", userID)
	if errors.Is(err, utils_db.ErrNotFound) {
		return models.DefaultPomodoroSettings(userID), nil
	}
	return ps, wrap(err, "store.GetPomodoroSettings")
}

func (s *Store) SavePomodoroSettings(ctx context.Context, ps models.PomodoroSettings) error {
	_, err := utils_db.Exec(ctx, s.q, `
	INSERT INTO pomodoro_settings (user_id, focus_minutes, short_break_minutes, long_break_minutes,
		cycles_before_long, auto_start_breaks, auto_start_focus)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (user_id) DO UPDATE SET
		focus_minutes = EXCLUDED.focus_minutes,
		short_break_minutes = EXCLUDED.short_break_minutes,
		long_break_minutes = EXCLUDED.long_break_minutes,
		cycles_before_long = EXCLUDED.cycles_before_long,
		auto_start_breaks = EXCLUDED.auto_start_breaks,
		auto_start_focus = EXCLUDED.auto_start_focus
	`, ps.UserID, ps.FocusMinutes, ps.ShortBreakMinutes, ps.LongBreakMinutes,
		ps.CyclesBeforeLong, ps.AutoStartBreaks, ps.AutoStartFocus)
	return wrap(err, "store.SavePomodoroSettings")
}

func (s *Store) CreatePomodoroSession(ctx context.Context, ps *models.PomodoroSession) error {
	if ps.StartedAt.IsZero() {
		ps.StartedAt = time.Now()
	}
	created, err := utils_db.FetchOne[models.PomodoroSession](ctx, s.q, `
	INSERT INTO pomodoro_sessions (user_id, type, planned_minutes, started_at, ended_at, completed)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, user_id, type, planned_minutes, started_at, ended_at, completed
	`, ps.UserID, ps.Type, ps.PlannedMinutes, ps.StartedAt, ps.EndedAt, ps.Completed)
	if err != nil {
		return wrap(err, "store.CreatePomodoroSession")
	}
	*ps = created
	return nil
}
