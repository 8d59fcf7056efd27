package store

import (
	"context"

	"github.com/google/uuid"

	"habitserver/internal/models"
	"habitserver/internal/utils/utils_db"
)

const challengeColumns = `c.id, c.name, c.description, c.duration, c.participants, c.room_id`

// ListChallenges returns every challenge annotated with viewer's membership.
func (s *Store) ListChallenges(ctx context.Context, viewer uuid.UUID) ([]models.ChallengeView, error) {
	query := `
	SELECT ` + challengeColumns + `, cp.user_id IS NOT NULL AS joined, cp.habit_id
	FROM challenges c
	LEFT JOIN challenge_participants cp ON cp.challenge_id = c.id AND cp.user_id = $1
	ORDER BY c.name
	`
	views, err := utils_db.FetchAll[models.ChallengeView](ctx, s.q, query, viewer)
	return views, wrap(err, "store.ListChallenges")
}

func (s *Store) GetChallenge(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
	c, err := utils_db.FetchOne[models.Challenge](ctx, s.q,
		"SELECT "+challengeColumns+" FROM challenges c WHERE c.id = $1", id)
	if err != nil {
		return nil, wrap(err, "store.GetChallenge")
	}
	return &c, nil
}

func (s *Store) GetChallengeByName(ctx context.Context, name string) (*models.Challenge, error) {
	c, err := utils_db.FetchOne[models.Challenge](ctx, s.q,
		"SELECT "+challengeColumns+" FROM challenges c WHERE c.name = $1", name)
	if err != nil {
		return nil, wrap(err, "store.GetChallengeByName")
	}
	return &c, nil
}

func (s *Store) CreateChallenge(ctx context.Context, c *models.Challenge) error {
	created, err := utils_db.FetchOne[models.Challenge](ctx, s.q, `
	INSERT INTO challenges AS c (name, description, duration, room_id)
	VALUES ($1, $2, $3, $4)
	RETURNING `+challengeColumns, c.Name, c.Description, c.Duration, c.RoomID)
	if err != nil {
		return wrap(err, "store.CreateChallenge")
	}
	*c = created
	return nil
}

// GetParticipant locks and returns the membership row of userID.
func (s *Store) GetParticipant(ctx context.Context, challengeID, userID uuid.UUID) (*models.ChallengeParticipant, error) {
	p, err := utils_db.FetchOne[models.ChallengeParticipant](ctx, s.q, `
	SELECT user_id, challenge_id, habit_id, joined_at
	FROM challenge_participants
	WHERE challenge_id = $1 AND user_id = $2
	FOR UPDATE
	`, challengeID, userID)
	if err != nil {
		return nil, wrap(err, "store.GetParticipant")
	}
	return &p, nil
}

// CreateParticipant fails with ErrConflict when userID already joined.
func (s *Store) CreateParticipant(ctx context.Context, challengeID, userID uuid.UUID, habitID *uuid.UUID) error {
	_, err := utils_db.Exec(ctx, s.q, `
	INSERT INTO challenge_participants (user_id, challenge_id, habit_id)
	VALUES ($1, $2, $3)
	`, userID, challengeID, habitID)
	return wrap(err, "store.CreateParticipant")
}

func (s *Store) DeleteParticipant(ctx context.Context, challengeID, userID uuid.UUID) error {
	_, err := utils_db.Exec(ctx, s.q,
		"DELETE FROM challenge_participants WHERE challenge_id = $1 AND user_id = $2", challengeID, userID)
	return wrap(err, "store.DeleteParticipant")
}

// AdjustParticipants adds delta to the participant counter, never going below
// zero.
func (s *Store) AdjustParticipants(ctx context.Context, challengeID uuid.UUID, delta int) error {
	_, err := utils_db.Exec(ctx, s.q,
		"UPDATE challenges SET participants = GREATEST(participants + $2, 0) WHERE id = $1", challengeID, delta)
	return wrap(err, "store.AdjustParticipants")
}
