package store

import (
	"context"

	"github.com/google/uuid"

	"habitserver/internal/models"
	"habitserver/internal/utils/utils_db"
)

const badgeColumns = `b.id, b.name, b.description, b.icon, b.type, b.threshold`

// UpsertBadge creates or refreshes a badge definition keyed by name.
func (s *Store) UpsertBadge(ctx context.Context, b *models.Badge) error {
	saved, err := utils_db.FetchOne[models.Badge](ctx, s.q, `
	INSERT INTO badges AS b (name, description, icon, type, threshold)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (name) DO UPDATE SET
		description = EXCLUDED.description,
		icon = EXCLUDED.icon,
		type = EXCLUDED.type,
		threshold = EXCLUDED.threshold
	RETURNING `+badgeColumns, b.Name, b.Description, b.Icon, b.Type, b.Threshold)
	if err != nil {
		return wrap(err, "store.UpsertBadge")
	}
	*b = saved
	return nil
}

// LockedBadges returns the badges userID has not unlocked yet.
func (s *Store) LockedBadges(ctx context.Context, userID uuid.UUID) ([]models.Badge, error) {
	badges, err := utils_db.FetchAll[models.Badge](ctx, s.q, `
	SELECT `+badgeColumns+`
	FROM badges b
	WHERE NOT EXISTS (SELECT 1 FROM user_badges ub WHERE ub.badge_id = b.id AND ub.user_id = $1)
	ORDER BY b.threshold, b.name
	`, userID)
	return badges, wrap(err, "store.LockedBadges")
}

// AwardBadge reports whether the badge was newly unlocked.
func (s *Store) AwardBadge(ctx context.Context, userID, badgeID uuid.UUID) (bool, error) {
	n, err := utils_db.Exec(ctx, s.q, `
	INSERT INTO user_badges (user_id, badge_id) VALUES ($1, $2)
	ON CONFLICT (user_id, badge_id) DO NOTHING
	`, userID, badgeID)
	return n > 0, wrap(err, "store.AwardBadge")
}

func (s *Store) UnlockedBadges(ctx context.Context, userID uuid.UUID) ([]models.UnlockedBadge, error) {
	badges, err := utils_db.FetchAll[models.UnlockedBadge](ctx, s.q, `
	SELECT `+badgeColumns+`, ub.unlocked_at
	FROM user_badges ub
	JOIN badges b ON b.id = ub.badge_id
	WHERE ub.user_id = $1
	ORDER BY ub.unlocked_at DESC
	`, userID)
	return badges, wrap(err, "store.UnlockedBadges")
}
