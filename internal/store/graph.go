package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/utils/utils_db"
)

const friendshipColumns = `f.id, f.sender_id, f.receiver_id, f.status, f.created_at, f.updated_at`

// FriendshipBetween returns the friendship row for the unordered pair, or nil
// when there is none.
func (s *Store) FriendshipBetween(ctx context.Context, a, b uuid.UUID) (*models.Friendship, error) {
	query := `
	SELECT ` + friendshipColumns + `
	FROM friendships f
	WHERE (f.sender_id = $1 AND f.receiver_id = $2)
	   OR (f.sender_id = $2 AND f.receiver_id = $1)
	`
	f, err := utils_db.FetchOne[models.Friendship](ctx, s.q, query, a, b)
	if errors.Is(err, utils_db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "store.FriendshipBetween")
	}
	return &f, nil
}

func (s *Store) GetFriendship(ctx context.Context, id uuid.UUID) (*models.Friendship, error) {
	f, err := utils_db.FetchOne[models.Friendship](ctx, s.q,
		"SELECT "+friendshipColumns+" FROM friendships f WHERE f.id = $1 FOR UPDATE", id)
	if err != nil {
		return nil, wrap(err, "store.GetFriendship")
	}
	return &f, nil
}

// CreateFriendRequest inserts a PENDING row. A concurrent request for the same
// pair fails on friendships_pair_idx with ErrConflict.
func (s *Store) CreateFriendRequest(ctx context.Context, sender, receiver uuid.UUID) (*models.Friendship, error) {
	query := `
	INSERT INTO friendships AS f (sender_id, receiver_id, status)
	VALUES ($1, $2, 'PENDING')
	RETURNING ` + friendshipColumns
	f, err := utils_db.FetchOne[models.Friendship](ctx, s.q, query, sender, receiver)
	if err != nil {
		return nil, wrap(err, "store.CreateFriendRequest")
	}
	return &f, nil
}

// ReopenFriendRequest turns a REJECTED row back into a PENDING request in the
// given direction.
func (s *Store) ReopenFriendRequest(ctx context.Context, id, sender, receiver uuid.UUID) (*models.Friendship, error) {
	query := `
	UPDATE friendships AS f
	SET sender_id = $2, receiver_id = $3, status = 'PENDING', created_at = now(), updated_at = now()
	WHERE f.id = $1 AND f.status = 'REJECTED'
	RETURNING ` + friendshipColumns
	f, err := utils_db.FetchOne[models.Friendship](ctx, s.q, query, id, sender, receiver)
	if err != nil {
		return nil, wrap(err, "store.ReopenFriendRequest")
	}
	return &f, nil
}

func (s *Store) SetFriendshipStatus(ctx context.Context, id uuid.UUID, status models.FriendshipStatus) (*models.Friendship, error) {
	query := `
	UPDATE friendships AS f
	SET status = $2, updated_at = now()
	WHERE f.id = $1
	RETURNING ` + friendshipColumns
	f, err := utils_db.FetchOne[models.Friendship](ctx, s.q, query, id, status)
	if err != nil {
		return nil, wrap(err, "store.SetFriendshipStatus")
	}
	return &f, nil
}

func (s *Store) IncomingRequests(ctx context.Context, receiver uuid.UUID) ([]models.FriendRequest, error) {
	query := `
	SELECT ` + friendshipColumns + `, ` + utils_db.Columns("u", "sender", summaryCols...) + `
	FROM friendships f
	JOIN users u ON u.id = f.sender_id
	WHERE f.receiver_id = $1 AND f.status = 'PENDING'
	ORDER BY f.created_at DESC
	`
	reqs, err := utils_db.FetchAll[models.FriendRequest](ctx, s.q, query, receiver)
	return reqs, wrap(err, "store.IncomingRequests")
}

// FriendIDs returns the ids of every accepted friend of userID.
func (s *Store) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
	SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END
	FROM friendships
	WHERE (sender_id = $1 OR receiver_id = $1) AND status = 'ACCEPTED'
	`
	ids, err := utils_db.FetchAll[uuid.UUID](ctx, s.q, query, userID)
	return ids, wrap(err, "store.FriendIDs")
}

func (s *Store) CountFriends(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := utils_db.GetTotalRecordNo(ctx, s.q, `
	SELECT COUNT(*) FROM friendships
	WHERE (sender_id = $1 OR receiver_id = $1) AND status = 'ACCEPTED'
	`, userID)
	return n, wrap(err, "store.CountFriends")
}

// ListFriends returns accepted friends, leaving out anyone with a block edge
// to or from userID.
func (s *Store) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error) {
	query := `
	SELECT u.id, u.name, u.username, u.avatar_url
	FROM friendships f
	JOIN users u ON u.id = CASE WHEN f.sender_id = $1 THEN f.receiver_id ELSE f.sender_id END
	WHERE (f.sender_id = $1 OR f.receiver_id = $1)
	  AND f.status = 'ACCEPTED'
	  AND NOT EXISTS (
		SELECT 1 FROM blocked_users b
		WHERE (b.blocker_id = $1 AND b.blocked_id = u.id)
		   OR (b.blocker_id = u.id AND b.blocked_id = $1)
	  )
	ORDER BY u.name
	`
	friends, err := utils_db.FetchAll[models.UserSummary](ctx, s.q, query, userID)
	return friends, wrap(err, "store.ListFriends")
}

// IsBlocked reports whether a block edge exists between a and b in either
// direction.
func (s *Store) IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error) {
	n, err := utils_db.GetTotalRecordNo(ctx, s.q, `
	SELECT COUNT(*) FROM blocked_users
	WHERE (blocker_id = $1 AND blocked_id = $2)
	   OR (blocker_id = $2 AND blocked_id = $1)
	`, a, b)
	return n > 0, wrap(err, "store.IsBlocked")
}

// BlockedIDs returns every user on either side of a block edge with userID.
func (s *Store) BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
	SELECT blocked_id FROM blocked_users WHERE blocker_id = $1
	UNION
	SELECT blocker_id FROM blocked_users WHERE blocked_id = $1
	`
	ids, err := utils_db.FetchAll[uuid.UUID](ctx, s.q, query, userID)
	return ids, wrap(err, "store.BlockedIDs")
}

func (s *Store) Block(ctx context.Context, blocker, blocked uuid.UUID) error {
	_, err := utils_db.Exec(ctx, s.q, `
	INSERT INTO blocked_users (blocker_id, blocked_id)
	VALUES ($1, $2)
	ON CONFLICT (blocker_id, blocked_id) DO NOTHING
	`, blocker, blocked)
	return wrap(err, "store.Block")
}

func (s *Store) Unblock(ctx context.Context, blocker, blocked uuid.UUID) error {
	_, err := utils_db.Exec(ctx, s.q,
		"DELETE FROM blocked_users WHERE blocker_id = $1 AND blocked_id = $2", blocker, blocked)
	return wrap(err, "store.Unblock")
}

// ListBlocked returns the users blocker has blocked.
func (s *Store) ListBlocked(ctx context.Context, blocker uuid.UUID) ([]models.UserSummary, error) {
	query := `
	SELECT u.id, u.name, u.username, u.avatar_url
	FROM blocked_users b
	JOIN users u ON u.id = b.blocked_id
	WHERE b.blocker_id = $1
	ORDER BY b.created_at DESC
	`
	users, err := utils_db.FetchAll[models.UserSummary](ctx, s.q, query, blocker)
	return users, wrap(err, "store.ListBlocked")
}
