package models

import "github.com/google/uuid"

// Protected is implemented by rows only their owner may change.
type Protected interface {
	IsOwnedBy(userID uuid.UUID) bool
}

var (
	_ Protected = (*User)(nil)
	_ Protected = (*Habit)(nil)
	_ Protected = (*Post)(nil)
	_ Protected = (*Reminder)(nil)
)
