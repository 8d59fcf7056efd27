package models

import (
	"time"

	"github.com/google/uuid"
)

type Habit struct {
	ID                uuid.UUID `db:"id" json:"id"`
	UserID            uuid.UUID `db:"user_id" json:"userId"`
	Name              string    `db:"name" json:"name"`
	Category          string    `db:"category" json:"category"`
	ScheduledTime     *string   `db:"scheduled_time" json:"scheduledTime"`
	Streak            int       `db:"streak" json:"streak"`
	CompletedToday    bool      `db:"completed_today" json:"completedToday"`
	LastCompletedDate *string   `db:"last_completed_date" json:"lastCompletedDate"`
	IsPrivate         bool      `db:"is_private" json:"isPrivate"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

func (h *Habit) IsOwnedBy(userID uuid.UUID) bool {
	return h.UserID == userID
}

type DailyActivity struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"userId"`
	Date            string    `db:"date" json:"date"`
	CompletedHabits UUIDList  `db:"completed_habits" json:"completedHabits"`
	TotalHabits     int       `db:"total_habits" json:"totalHabits"`
	CompletionRate  float64   `db:"completion_rate" json:"completionRate"`
}

type AnalyticsSummary struct {
	TotalHabits    int             `json:"totalHabits"`
	LongestStreak  int             `json:"longestStreak"`
	ActivityStreak int             `json:"activityStreak"`
	RecentActivity []DailyActivity `json:"recentActivity"`
}
