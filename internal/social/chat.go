package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/store"
)

type RoomInput struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

type MessageInput struct {
	Content   string     `json:"content" binding:"required"`
	ReplyToID *uuid.UUID `json:"replyToId"`
}

// GetOrCreateDirectRoom returns the 1:1 room between viewer and other,
// creating it on first use. Creation is serialized per pair so two concurrent
// calls agree on one room.
func (s *Service) GetOrCreateDirectRoom(ctx context.Context, viewer, other uuid.UUID) (*models.ChatRoom, error) {
	if viewer == other {
		return nil, api_error.SelfChat
	}
	if _, err := s.getUser(ctx, other); err != nil {
		return nil, err
	}

	ok, err := s.policy.CanInteractInChat(ctx, viewer, other)
	if err != nil {
		return nil, errors.Wrap(err, "social.GetOrCreateDirectRoom")
	}
	if !ok {
		return nil, api_error.UserBlocked
	}

	var room *models.ChatRoom
	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.LockPair(ctx, "direct-room", viewer, other); err != nil {
			return err
		}
		existing, err := tx.FindDirectRoom(ctx, viewer, other)
		if err == nil {
			room = existing
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		room, err = tx.CreateRoom(ctx, false, nil, viewer, other)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "social.GetOrCreateDirectRoom")
	}

	if err := s.loadRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) loadRoom(ctx context.Context, room *models.ChatRoom) error {
	parts, err := s.store.Participants(ctx, room.ID)
	if err != nil {
		return errors.Wrap(err, "social.loadRoom")
	}
	room.Participants = parts[room.ID]
	return nil
}

// ListRoomsFor returns viewer's rooms, most recent activity first, each with
// its participants and latest message. 1:1 rooms with a blocked counterpart
// are left out.
func (s *Service) ListRoomsFor(ctx context.Context, viewer uuid.UUID) ([]models.ChatRoom, error) {
	rooms, err := s.store.RoomsFor(ctx, viewer)
	if err != nil {
		return nil, errors.Wrap(err, "social.ListRoomsFor")
	}
	ids := make([]uuid.UUID, len(rooms))
	for i := range rooms {
		ids[i] = rooms[i].ID
	}

	parts, err := s.store.Participants(ctx, ids...)
	if err != nil {
		return nil, errors.Wrap(err, "social.ListRoomsFor")
	}
	last, err := s.store.LastMessages(ctx, ids...)
	if err != nil {
		return nil, errors.Wrap(err, "social.ListRoomsFor")
	}
	for i := range rooms {
		rooms[i].Participants = parts[rooms[i].ID]
		rooms[i].Messages = []models.Message{}
		if m, ok := last[rooms[i].ID]; ok {
			rooms[i].Messages = append(rooms[i].Messages, m)
		}
	}

	rooms, err = s.policy.FilterBlockedFromRoomList(ctx, viewer, rooms)
	return rooms, errors.Wrap(err, "social.ListRoomsFor")
}

// chatRoom loads a room viewer may talk in: viewer must participate and, in a
// 1:1 room, no block may separate the pair.
func (s *Service) chatRoom(ctx context.Context, viewer, roomID uuid.UUID) (*models.ChatRoom, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, notFound(err, api_error.RoomNotFound, "social.chatRoom")
	}
	if err := s.loadRoom(ctx, room); err != nil {
		return nil, err
	}
	if !room.HasParticipant(viewer) {
		return nil, api_error.NotParticipant
	}

	ok, err := s.policy.CanChatInRoom(ctx, viewer, room)
	if err != nil {
		return nil, errors.Wrap(err, "social.chatRoom")
	}
	if !ok {
		return nil, api_error.UserBlocked
	}
	return room, nil
}

func (s *Service) ListMessages(ctx context.Context, viewer, roomID uuid.UUID) ([]models.Message, error) {
	if _, err := s.chatRoom(ctx, viewer, roomID); err != nil {
		return nil, err
	}
	msgs, err := s.store.ListMessages(ctx, roomID, models.MESSAGE_LIMIT)
	return msgs, errors.Wrap(err, "social.ListMessages")
}

// SendMessage posts into a room and notifies every other participant.
func (s *Service) SendMessage(ctx context.Context, viewer, roomID uuid.UUID, in MessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, api_error.EmptyContent
	}

	room, err := s.chatRoom(ctx, viewer, roomID)
	if err != nil {
		return nil, err
	}

	if in.ReplyToID != nil {
		parent, err := s.store.GetMessage(ctx, *in.ReplyToID)
		if err != nil {
			return nil, notFound(err, api_error.BadRequest("Reply target not found"), "social.SendMessage")
		}
		if parent.RoomID != room.ID {
			return nil, api_error.BadRequest("Reply target belongs to another room")
		}
	}

	msg, err := s.store.CreateMessage(ctx, room.ID, viewer, content, in.ReplyToID)
	if err != nil {
		return nil, errors.Wrap(err, "social.SendMessage")
	}

	preview := fmt.Sprintf("%s: %s", msg.Sender.Name, truncate(content, 80))
	for _, p := range room.Participants {
		afterCommit("message notification",
			notify(ctx, s.store, p.UserID, models.NotificationMessage, &viewer, &room.ID, preview))
	}
	return msg, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
