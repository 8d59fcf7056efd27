package models

import (
	"time"

	"github.com/google/uuid"
)

type Challenge struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	Duration     string     `db:"duration" json:"duration"`
	Participants int        `db:"participants" json:"participants"`
	RoomID       *uuid.UUID `db:"room_id" json:"roomId"`
}

type ChallengeParticipant struct {
	UserID      uuid.UUID  `db:"user_id" json:"userId"`
	ChallengeID uuid.UUID  `db:"challenge_id" json:"challengeId"`
	HabitID     *uuid.UUID `db:"habit_id" json:"habitId"`
	JoinedAt    time.Time  `db:"joined_at" json:"joinedAt"`
}

// ChallengeView is a challenge annotated for one viewer.
type ChallengeView struct {
	Challenge
	Joined  bool       `db:"joined" json:"joined"`
	HabitID *uuid.UUID `db:"habit_id" json:"habitId,omitempty"`
}
