package models

import (
	"time"

	"github.com/google/uuid"
)

type Reminder struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"userId"`
	Title     string     `db:"title" json:"title"`
	Note      *string    `db:"note" json:"note"`
	RemindAt  *time.Time `db:"remind_at" json:"remindAt"`
	IsDone    bool       `db:"is_done" json:"isDone"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}

func (r *Reminder) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

type PomodoroSettings struct {
	UserID            uuid.UUID `db:"user_id" json:"-"`
	FocusMinutes      int       `db:"focus_minutes" json:"focusMinutes"`
	ShortBreakMinutes int       `db:"short_break_minutes" json:"shortBreakMinutes"`
	LongBreakMinutes  int       `db:"long_break_minutes" json:"longBreakMinutes"`
	CyclesBeforeLong  int       `db:"cycles_before_long" json:"cyclesBeforeLong"`
	AutoStartBreaks   bool      `db:"auto_start_breaks" json:"autoStartBreaks"`
	AutoStartFocus    bool      `db:"auto_start_focus" json:"autoStartFocus"`
}

func DefaultPomodoroSettings(userID uuid.UUID) PomodoroSettings {
	return PomodoroSettings{
		UserID:            userID,
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		CyclesBeforeLong:  4,
	}
}

type SessionType string

const (
	SessionFocus      SessionType = "FOCUS"
	SessionShortBreak SessionType = "SHORT_BREAK"
	SessionLongBreak  SessionType = "LONG_BREAK"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionFocus, SessionShortBreak, SessionLongBreak:
		return true
	}
	return false
}

type PomodoroSession struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	UserID         uuid.UUID   `db:"user_id" json:"userId"`
	Type           SessionType `db:"type" json:"type"`
	PlannedMinutes int         `db:"planned_minutes" json:"plannedMinutes"`
	StartedAt      time.Time   `db:"started_at" json:"startedAt"`
	EndedAt        *time.Time  `db:"ended_at" json:"endedAt"`
	Completed      bool        `db:"completed" json:"completed"`
}
