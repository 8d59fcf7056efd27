package models

import (
	"time"

	"github.com/google/uuid"
)

type BadgeType string

const (
	BadgeHabitCount BadgeType = "HABIT_COUNT"
	BadgeStreak     BadgeType = "STREAK"
	BadgeSocial     BadgeType = "SOCIAL"
)

type Badge struct {
	ID          uuid.UUID `db:"id" json:"id" yaml:"-"`
	Name        string    `db:"name" json:"name" yaml:"name"`
	Description string    `db:"description" json:"description" yaml:"description"`
	Icon        string    `db:"icon" json:"icon" yaml:"icon"`
	Type        BadgeType `db:"type" json:"type" yaml:"type"`
	Threshold   int       `db:"threshold" json:"threshold" yaml:"threshold"`
}

type UnlockedBadge struct {
	Badge
	UnlockedAt time.Time `db:"unlocked_at" json:"unlockedAt"`
}

// Progress holds the counters badges are measured against.
type Progress struct {
	HabitCount    int
	LongestStreak int
	FriendCount   int
}

func (p Progress) Value(t BadgeType) int {
	switch t {
	case BadgeHabitCount:
		return p.HabitCount
	case BadgeStreak:
		return p.LongestStreak
	case BadgeSocial:
		return p.FriendCount
	}
	return 0
}
