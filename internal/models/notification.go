package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationLike          NotificationType = "LIKE"
	NotificationComment       NotificationType = "COMMENT"
	NotificationFriendRequest NotificationType = "FRIEND_REQUEST"
	NotificationMessage       NotificationType = "MESSAGE"
	NotificationAchievement   NotificationType = "ACHIEVEMENT"
)

type Notification struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	UserID    uuid.UUID        `db:"user_id" json:"userId"`
	Type      NotificationType `db:"type" json:"type"`
	SenderID  *uuid.UUID       `db:"sender_id" json:"senderId"`
	EntityID  *uuid.UUID       `db:"entity_id" json:"entityId"`
	Content   string           `db:"content" json:"content"`
	IsRead    bool             `db:"is_read" json:"isRead"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	Sender    *UserSummary     `db:"-" json:"sender"`
}
