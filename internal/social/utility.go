package social

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/store"
)

type ReminderInput struct {
	Title    string     `json:"title" binding:"required"`
	Note     *string    `json:"note"`
	RemindAt *time.Time `json:"remindAt"`
}

type ReminderUpdate struct {
	Title    *string    `json:"title"`
	Note     *string    `json:"note"`
	RemindAt *time.Time `json:"remindAt"`
	IsDone   *bool      `json:"isDone"`
}

type PomodoroUpdate struct {
	FocusMinutes      *int  `json:"focusMinutes"`
	ShortBreakMinutes *int  `json:"shortBreakMinutes"`
	LongBreakMinutes  *int  `json:"longBreakMinutes"`
	CyclesBeforeLong  *int  `json:"cyclesBeforeLong"`
	AutoStartBreaks   *bool `json:"autoStartBreaks"`
	AutoStartFocus    *bool `json:"autoStartFocus"`
}

type SessionInput struct {
	Type           models.SessionType `json:"type" binding:"required"`
	PlannedMinutes int                `json:"plannedMinutes" binding:"required"`
	StartedAt      *time.Time         `json:"startedAt"`
	EndedAt        *time.Time         `json:"endedAt"`
	Completed      bool               `json:"completed"`
}

func (s *Service) ListReminders(ctx context.Context, userID uuid.UUID) ([]models.Reminder, error) {
	rs, err := s.store.ListReminders(ctx, userID)
	return rs, errors.Wrap(err, "social.ListReminders")
}

func (s *Service) CreateReminder(ctx context.Context, userID uuid.UUID, in ReminderInput) (*models.Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, api_error.BadRequest("Title is required")
	}
	r := &models.Reminder{UserID: userID, Title: title, Note: in.Note, RemindAt: in.RemindAt}
	if err := s.store.CreateReminder(ctx, r); err != nil {
		return nil, errors.Wrap(err, "social.CreateReminder")
	}
	return r, nil
}

func (s *Service) ownReminder(ctx context.Context, userID, id uuid.UUID) (*models.Reminder, error) {
	r, err := s.store.GetReminder(ctx, id)
	if err != nil {
		return nil, notFound(err, api_error.ReminderNotFound, "social.ownReminder")
	}
	if err := ensureOwner(r, userID, api_error.ReminderNotFound); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) UpdateReminder(ctx context.Context, userID, id uuid.UUID, in ReminderUpdate) (*models.Reminder, error) {
	r, err := s.ownReminder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, api_error.BadRequest("Title is required")
		}
		r.Title = title
	}
	if in.Note != nil {
		r.Note = in.Note
	}
	if in.RemindAt != nil {
		r.RemindAt = in.RemindAt
	}
	if in.IsDone != nil {
		r.IsDone = *in.IsDone
	}
	if err := s.store.SaveReminder(ctx, r); err != nil {
		return nil, errors.Wrap(err, "social.UpdateReminder")
	}
	return r, nil
}

func (s *Service) DeleteReminder(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.ownReminder(ctx, userID, id); err != nil {
		return err
	}
	return errors.Wrap(s.store.DeleteReminder(ctx, id), "social.DeleteReminder")
}

func (s *Service) PomodoroSettings(ctx context.Context, userID uuid.UUID) (models.PomodoroSettings, error) {
	ps, err := s.store.GetPomodoroSettings(ctx, userID)
	return ps, errors.Wrap(err, "social.PomodoroSettings")
}

// UpdatePomodoroSettings applies a partial update. Durations must be
// positive.
func (s *Service) UpdatePomodoroSettings(ctx context.Context, userID uuid.UUID, in PomodoroUpdate) (models.PomodoroSettings, error) {
	for _, v := range []*int{in.FocusMinutes, in.ShortBreakMinutes, in.LongBreakMinutes, in.CyclesBeforeLong} {
		if v != nil && *v <= 0 {
			return models.PomodoroSettings{}, api_error.BadRequest("Durations must be positive")
		}
	}

	var out models.PomodoroSettings
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		ps, err := tx.GetPomodoroSettings(ctx, userID)
		if err != nil {
			return err
		}
		setInt(&ps.FocusMinutes, in.FocusMinutes)
		setInt(&ps.ShortBreakMinutes, in.ShortBreakMinutes)
		setInt(&ps.LongBreakMinutes, in.LongBreakMinutes)
		setInt(&ps.CyclesBeforeLong, in.CyclesBeforeLong)
		setBool(&ps.AutoStartBreaks, in.AutoStartBreaks)
		setBool(&ps.AutoStartFocus, in.AutoStartFocus)
		out = ps
		return tx.SavePomodoroSettings(ctx, ps)
	})
	return out, errors.Wrap(err, "social.UpdatePomodoroSettings")
}

func (s *Service) RecordSession(ctx context.Context, userID uuid.UUID, in SessionInput) (*models.PomodoroSession, error) {
	if !in.Type.Valid() {
		return nil, api_error.BadRequest("type must be FOCUS, SHORT_BREAK or LONG_BREAK")
	}
	if in.PlannedMinutes <= 0 {
		return nil, api_error.BadRequest("plannedMinutes must be positive")
	}

	ps := &models.PomodoroSession{
		UserID:         userID,
		Type:           in.Type,
		PlannedMinutes: in.PlannedMinutes,
		EndedAt:        in.EndedAt,
		Completed:      in.Completed,
	}
	if in.StartedAt != nil {
		ps.StartedAt = *in.StartedAt
	} else {
		ps.StartedAt = s.now()
	}
	if err := s.store.CreatePomodoroSession(ctx, ps); err != nil {
		return nil, errors.Wrap(err, "social.RecordSession")
	}
	return ps, nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
