package store

import (
	"context"

	"github.com/google/uuid"

	"habitserver/internal/models"
	"habitserver/internal/utils/utils_db"
)

const notificationColumns = `id, user_id, type, sender_id, entity_id, content, is_read, created_at`

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	created, err := utils_db.FetchOne[models.Notification](ctx, s.q, `
	INSERT INTO notifications (user_id, type, sender_id, entity_id, content)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING `+notificationColumns, n.UserID, n.Type, n.SenderID, n.EntityID, n.Content)
	if err != nil {
		return wrap(err, "store.CreateNotification")
	}
	*n = created
	return nil
}

// ListNotifications returns the newest notifications of userID with sender
// cards attached.
func (s *Store) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	ns, err := utils_db.FetchAll[models.Notification](ctx, s.q, `
	SELECT `+notificationColumns+`
	FROM notifications
	WHERE user_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, wrap(err, "store.ListNotifications")
	}

	var senders []uuid.UUID
	for _, n := range ns {
		if n.SenderID != nil {
			senders = append(senders, *n.SenderID)
		}
	}
	summaries, err := s.UserSummaries(ctx, senders)
	if err != nil {
		return nil, err
	}
	for i := range ns {
		if ns[i].SenderID == nil {
			continue
		}
		if u, ok := summaries[*ns[i].SenderID]; ok {
			ns[i].Sender = &u
		}
	}
	return ns, nil
}

// MarkNotificationRead flags one notification of userID as read. A
// notification owned by someone else is ErrNotFound.
func (s *Store) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	n, err := utils_db.Exec(ctx, s.q,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	if err == nil && n == 0 {
		err = ErrNotFound
	}
	return wrap(err, "store.MarkNotificationRead")
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := utils_db.Exec(ctx, s.q,
		"UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read", userID)
	return n, wrap(err, "store.MarkAllNotificationsRead")
}
