package store

import (
	"context"

	"github.com/google/uuid"

	"habitserver/internal/models"
	"habitserver/internal/utils/utils_db"
)

const roomColumns = `r.id, r.is_group, r.name, r.created_at, r.updated_at`

var messageSelect = `
	SELECT m.id, m.room_id, m.sender_id, m.content, m.reply_to_id, m.created_at,
		` + utils_db.Columns("u", "sender", summaryCols...) + `
	FROM messages m
	JOIN users u ON u.id = m.sender_id
`

// FindDirectRoom returns the non-group room whose participants are exactly a
// and b.
func (s *Store) FindDirectRoom(ctx context.Context, a, b uuid.UUID) (*models.ChatRoom, error) {
	query := `
	SELECT ` + roomColumns + `
	FROM chat_rooms r
	WHERE NOT r.is_group
	  AND EXISTS (SELECT 1 FROM chat_participants p WHERE p.room_id = r.id AND p.user_id = $1)
	  AND EXISTS (SELECT 1 FROM chat_participants p WHERE p.room_id = r.id AND p.user_id = $2)
	  AND (SELECT COUNT(*) FROM chat_participants p WHERE p.room_id = r.id) = 2
	ORDER BY r.created_at
	LIMIT 1
	`
	room, err := utils_db.FetchOne[models.ChatRoom](ctx, s.q, query, a, b)
	if err != nil {
		return nil, wrap(err, "store.FindDirectRoom")
	}
	return &room, nil
}

// CreateRoom inserts a room and its initial participants.
func (s *Store) CreateRoom(ctx context.Context, isGroup bool, name *string, members ...uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.WithTx(ctx, func(tx *Store) error {
		var err error
		room, err = utils_db.FetchOne[models.ChatRoom](ctx, tx.q, `
		INSERT INTO chat_rooms AS r (is_group, name) VALUES ($1, $2)
		RETURNING `+roomColumns, isGroup, name)
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := tx.AddParticipant(ctx, room.ID, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err, "store.CreateRoom")
	}
	return &room, nil
}

func (s *Store) GetRoom(ctx context.Context, id uuid.UUID) (*models.ChatRoom, error) {
	room, err := utils_db.FetchOne[models.ChatRoom](ctx, s.q,
		"SELECT "+roomColumns+" FROM chat_rooms r WHERE r.id = $1", id)
	if err != nil {
		return nil, wrap(err, "store.GetRoom")
	}
	return &room, nil
}

func (s *Store) AddParticipant(ctx context.Context, roomID, userID uuid.UUID) error {
	_, err := utils_db.Exec(ctx, s.q, `
	INSERT INTO chat_participants (user_id, room_id) VALUES ($1, $2)
	ON CONFLICT (user_id, room_id) DO NOTHING
	`, userID, roomID)
	return wrap(err, "store.AddParticipant")
}

func (s *Store) RemoveParticipant(ctx context.Context, roomID, userID uuid.UUID) error {
	_, err := utils_db.Exec(ctx, s.q,
		"DELETE FROM chat_participants WHERE user_id = $1 AND room_id = $2", userID, roomID)
	return wrap(err, "store.RemoveParticipant")
}

func (s *Store) IsParticipant(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	n, err := utils_db.GetTotalRecordNo(ctx, s.q,
		"SELECT COUNT(*) FROM chat_participants WHERE user_id = $1 AND room_id = $2", userID, roomID)
	return n > 0, wrap(err, "store.IsParticipant")
}

// Participants loads the participants of every room keyed by room id.
func (s *Store) Participants(ctx context.Context, roomIDs ...uuid.UUID) (map[uuid.UUID][]models.ChatParticipant, error) {
	out := make(map[uuid.UUID][]models.ChatParticipant, len(roomIDs))
	if len(roomIDs) == 0 {
		return out, nil
	}
	query := `
	SELECT p.user_id, p.room_id, p.joined_at, ` + utils_db.Columns("u", "user", summaryCols...) + `
	FROM chat_participants p
	JOIN users u ON u.id = p.user_id
	WHERE p.room_id = ANY($1)
	ORDER BY p.joined_at, p.user_id
	`
	rows, err := utils_db.FetchAll[models.ChatParticipant](ctx, s.q, query, models.UUIDList(roomIDs))
	if err != nil {
		return nil, wrap(err, "store.Participants")
	}
	for _, p := range rows {
		out[p.RoomID] = append(out[p.RoomID], p)
	}
	return out, nil
}

// RoomsFor returns the rooms userID participates in, most recently active
// first.
func (s *Store) RoomsFor(ctx context.Context, userID uuid.UUID) ([]models.ChatRoom, error) {
	query := `
	SELECT ` + roomColumns + `
	FROM chat_rooms r
	JOIN chat_participants p ON p.room_id = r.id
	WHERE p.user_id = $1
	ORDER BY r.updated_at DESC
	`
	rooms, err := utils_db.FetchAll[models.ChatRoom](ctx, s.q, query, userID)
	return rooms, wrap(err, "store.RoomsFor")
}

// LastMessages returns the newest message of each room keyed by room id.
func (s *Store) LastMessages(ctx context.Context, roomIDs ...uuid.UUID) (map[uuid.UUID]models.Message, error) {
	out := make(map[uuid.UUID]models.Message, len(roomIDs))
	if len(roomIDs) == 0 {
		return out, nil
	}
	query := `
	SELECT DISTINCT ON (m.room_id) m.id, m.room_id, m.sender_id, m.content, m.reply_to_id, m.created_at,
		` + utils_db.Columns("u", "sender", summaryCols...) + `
	FROM messages m
	JOIN users u ON u.id = m.sender_id
	WHERE m.room_id = ANY($1)
	ORDER BY m.room_id, m.created_at DESC, m.id DESC
	`
	rows, err := utils_db.FetchAll[models.Message](ctx, s.q, query, models.UUIDList(roomIDs))
	if err != nil {
		return nil, wrap(err, "store.LastMessages")
	}
	for _, m := range rows {
		out[m.RoomID] = m
	}
	return out, nil
}

// ListMessages returns the newest limit messages of a room in chronological
// order, each with its reply preview.
func (s *Store) ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]models.Message, error) {
	query := `
	SELECT * FROM (` + messageSelect + `
		WHERE m.room_id = $1
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2
	) latest
	ORDER BY created_at ASC, id ASC
	`
	msgs, err := utils_db.FetchAll[models.Message](ctx, s.q, query, roomID, limit)
	if err != nil {
		return nil, wrap(err, "store.ListMessages")
	}
	if err := s.attachReplies(ctx, msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *Store) attachReplies(ctx context.Context, msgs []models.Message) error {
	var ids models.UUIDList
	for _, m := range msgs {
		if m.ReplyToID != nil {
			ids = append(ids, *m.ReplyToID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	query := `
	SELECT m.id, m.content, ` + utils_db.Columns("u", "sender", summaryCols...) + `
	FROM messages m
	JOIN users u ON u.id = m.sender_id
	WHERE m.id = ANY($1)
	`
	previews, err := utils_db.FetchAll[models.MessagePreview](ctx, s.q, query, ids)
	if err != nil {
		return wrap(err, "store.attachReplies")
	}
	byID := make(map[uuid.UUID]models.MessagePreview, len(previews))
	for _, p := range previews {
		byID[p.ID] = p
	}
	for i := range msgs {
		if msgs[i].ReplyToID == nil {
			continue
		}
		if p, ok := byID[*msgs[i].ReplyToID]; ok {
			msgs[i].ReplyTo = &p
		}
	}
	return nil
}

func (s *Store) GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	m, err := utils_db.FetchOne[models.Message](ctx, s.q, messageSelect+" WHERE m.id = $1", id)
	if err != nil {
		return nil, wrap(err, "store.GetMessage")
	}
	one := []models.Message{m}
	if err := s.attachReplies(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// CreateMessage inserts a message and bumps the room's updated_at. Both
// writes commit together.
func (s *Store) CreateMessage(ctx context.Context, roomID, senderID uuid.UUID, content string, replyTo *uuid.UUID) (*models.Message, error) {
	var id uuid.UUID
	err := s.WithTx(ctx, func(tx *Store) error {
		var err error
		id, err = utils_db.FetchOne[uuid.UUID](ctx, tx.q, `
		INSERT INTO messages (room_id, sender_id, content, reply_to_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
		`, roomID, senderID, content, replyTo)
		if err != nil {
			return err
		}
		_, err = utils_db.Exec(ctx, tx.q, "UPDATE chat_rooms SET updated_at = now() WHERE id = $1", roomID)
		return err
	})
	if err != nil {
		return nil, wrap(err, "store.CreateMessage")
	}
	return s.GetMessage(ctx, id)
}
