// Package habit holds the day-granular streak rules.
package habit

import (
	"time"

	"habitserver/internal/models"
)

// Today formats now as a calendar date in loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(models.DATE_FORMAT)
}

// ApplyCompletion sets the completed-today flag of h. The first completion of
// a day increments the streak; re-completing the same day and un-completing
// leave it alone.
func ApplyCompletion(h *models.Habit, completed bool, today string) {
	h.CompletedToday = completed
	if !completed {
		return
	}
	if h.LastCompletedDate != nil && *h.LastCompletedDate == today {
		return
	}
	h.Streak++
	h.LastCompletedDate = &today
}

// ResetIfStale clears the completed-today flag when it was set on an earlier
// day.
func ResetIfStale(h *models.Habit, today string) {
	if h.CompletedToday && (h.LastCompletedDate == nil || *h.LastCompletedDate != today) {
		h.CompletedToday = false
	}
}

// CurrentStreak counts consecutive days with activity ending today, or
// yesterday when today has none yet. dates may be in any order and contain
// duplicates; malformed dates are ignored.
func CurrentStreak(dates []string, today string) int {
	day, err := time.Parse(models.DATE_FORMAT, today)
	if err != nil {
		return 0
	}

	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		seen[d] = struct{}{}
	}

	if _, ok := seen[today]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := seen[day.Format(models.DATE_FORMAT)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// CompletionRate is the completed share of total as a percentage.
func CompletionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
