package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/utils/utils_db"
)

const userColumns = `id, email, password_hash, name, username, bio, avatar_url, profile_visibility, signup_date, created_at`

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	query := `
	INSERT INTO users (email, password_hash, name, username, bio, profile_visibility)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + userColumns

	if u.ProfileVisibility == "" {
		u.ProfileVisibility = models.VisibilityPublic
	}
	created, err := utils_db.FetchOne[models.User](ctx, s.q, query,
		u.Email, u.PasswordHash, u.Name, u.Username, u.Bio, u.ProfileVisibility)
	if err != nil {
		return wrap(err, "store.CreateUser")
	}
	*u = created
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := utils_db.FetchOne[models.User](ctx, s.q,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	if err != nil {
		return nil, wrap(err, "store.GetUserByID")
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := utils_db.FetchOne[models.User](ctx, s.q,
		"SELECT "+userColumns+" FROM users WHERE lower(email) = lower($1)", email)
	if err != nil {
		return nil, wrap(err, "store.GetUserByEmail")
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := utils_db.FetchOne[models.User](ctx, s.q,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username)
	if err != nil {
		return nil, wrap(err, "store.GetUserByUsername")
	}
	return &u, nil
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	n, err := utils_db.GetTotalRecordNo(ctx, s.q, "SELECT COUNT(*) FROM users WHERE username = $1", username)
	return n > 0, wrap(err, "store.UsernameExists")
}

// SearchUsers matches username substrings case-insensitively, leaving out the
// viewer and anyone with a block edge to or from the viewer.
func (s *Store) SearchUsers(ctx context.Context, viewer uuid.UUID, term string, limit int) ([]models.SearchResult, error) {
	query := `
	SELECT u.id, u.name, u.username, u.avatar_url, u.profile_visibility
	FROM users u
	WHERE u.username ILIKE '%' || $2 || '%' ESCAPE '\'
	  AND u.id <> $1
	  AND NOT EXISTS (
		SELECT 1 FROM blocked_users b
		WHERE (b.blocker_id = $1 AND b.blocked_id = u.id)
		   OR (b.blocker_id = u.id AND b.blocked_id = $1)
	  )
	ORDER BY u.username
	LIMIT $3
	`
	results, err := utils_db.FetchAll[models.SearchResult](ctx, s.q, query, viewer, escapeLike(term), limit)
	return results, wrap(err, "store.SearchUsers")
}

func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, name, bio *string) (*models.User, error) {
	query := `
	UPDATE users
	SET name = COALESCE($2, name), bio = COALESCE($3, bio)
	WHERE id = $1
	RETURNING ` + userColumns
	u, err := utils_db.FetchOne[models.User](ctx, s.q, query, id, name, bio)
	if err != nil {
		return nil, wrap(err, "store.UpdateProfile")
	}
	return &u, nil
}

func (s *Store) UpdateAccount(ctx context.Context, id uuid.UUID, name, email *string) (*models.User, error) {
	query := `
	UPDATE users
	SET name = COALESCE($2, name), email = COALESCE($3, email)
	WHERE id = $1
	RETURNING ` + userColumns
	u, err := utils_db.FetchOne[models.User](ctx, s.q, query, id, name, email)
	if err != nil {
		return nil, wrap(err, "store.UpdateAccount")
	}
	return &u, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := utils_db.Exec(ctx, s.q, "UPDATE users SET password_hash = $2 WHERE id = $1", id, hash)
	return wrap(err, "store.UpdatePassword")
}

func (s *Store) UpdateVisibility(ctx context.Context, id uuid.UUID, v models.Visibility) error {
	_, err := utils_db.Exec(ctx, s.q, "UPDATE users SET profile_visibility = $2 WHERE id = $1", id, v)
	return wrap(err, "store.UpdateVisibility")
}

// SwapAvatar sets the avatar url and returns the previous one. The row is
// locked so concurrent swaps see each other's result.
func (s *Store) SwapAvatar(ctx context.Context, id uuid.UUID, url *string) (*string, error) {
	var previous *string
	err := s.WithTx(ctx, func(tx *Store) error {
		old, err := utils_db.FetchOne[*string](ctx, tx.q, "SELECT avatar_url FROM users WHERE id = $1 FOR UPDATE", id)
		if err != nil {
			return err
		}
		if _, err := utils_db.Exec(ctx, tx.q, "UPDATE users SET avatar_url = $2 WHERE id = $1", id, url); err != nil {
			return err
		}
		previous = old
		return nil
	})
	return previous, wrap(err, "store.SwapAvatar")
}

// UserSummaries loads the public cards of ids keyed by id.
func (s *Store) UserSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.UserSummary, error) {
	out := make(map[uuid.UUID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := utils_db.FetchAll[models.UserSummary](ctx, s.q,
		"SELECT id, name, username, avatar_url FROM users WHERE id = ANY($1)", models.UUIDList(ids))
	if err != nil {
		return nil, wrap(err, "store.UserSummaries")
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

func (s *Store) GetSettings(ctx context.Context, userID uuid.UUID) (models.UserSettings, error) {
	settings, err := utils_db.FetchOne[models.UserSettings](ctx, s.q,
		"SELECT * FROM user_settings WHERE user_id = $1", userID)
	if errors.Is(err, utils_db.ErrNotFound) {
		return models.DefaultUserSettings(userID), nil
	}
	return settings, wrap(err, "store.GetSettings")
}

func (s *Store) SaveSettings(ctx context.Context, st models.UserSettings) error {
	query := `
	INSERT INTO user_settings (user_id, email_notifications, habit_reminders, weekly_reports, show_streak, show_activity)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id) DO UPDATE SET
		email_notifications = EXCLUDED.email_notifications,
		habit_reminders = EXCLUDED.habit_reminders,
		weekly_reports = EXCLUDED.weekly_reports,
		show_streak = EXCLUDED.show_streak,
		show_activity = EXCLUDED.show_activity
	`
	_, err := utils_db.Exec(ctx, s.q, query,
		st.UserID, st.EmailNotifications, st.HabitReminders, st.WeeklyReports, st.ShowStreak, st.ShowActivity)
	return wrap(err, "store.SaveSettings")
}

func (s *Store) CountPosts(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := utils_db.GetTotalRecordNo(ctx, s.q, "SELECT COUNT(*) FROM posts WHERE user_id = $1", userID)
	return n, wrap(err, "store.CountPosts")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
