package social

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/store"
)

// notify stores a notification for recipient. Notifications a user would
// send to themself are dropped.
func notify(ctx context.Context, st *store.Store, recipient uuid.UUID, typ models.NotificationType,
	sender, entity *uuid.UUID, content string) error {
	if sender != nil && *sender == recipient {
		return nil
	}
	n := &models.Notification{
		UserID:   recipient,
		Type:     typ,
		SenderID: sender,
		EntityID: entity,
		Content:  content,
	}
	return errors.Wrap(st.CreateNotification(ctx, n), "social.notify")
}

func (s *Service) ListNotifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	ns, err := s.store.ListNotifications(ctx, userID, models.NOTIFICATION_LIMIT)
	return ns, errors.Wrap(err, "social.ListNotifications")
}

func (s *Service) MarkNotificationRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.store.MarkNotificationRead(ctx, id, userID); err != nil {
		return notFound(err, api_error.NotificationNotFound, "social.MarkNotificationRead")
	}
	return nil
}

func (s *Service) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.store.MarkAllNotificationsRead(ctx, userID)
	return n, errors.Wrap(err, "social.MarkAllNotificationsRead")
}
