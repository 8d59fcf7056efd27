package store

import (
	"context"

	"github.com/google/uuid"

	"habitserver/internal/models"
	"habitserver/internal/utils/utils_db"
)

var postSelect = `
	SELECT p.id, p.user_id, p.author, p.content, p.liked_by, cardinality(p.liked_by) AS likes, p.created_at,
		` + utils_db.Columns("u", "user", summaryCols...) + `
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

var commentSelect = `
	SELECT c.id, c.post_id, c.user_id, c.author, c.content, c.parent_id, c.created_at,
		` + utils_db.Columns("u", "user", summaryCols...) + `
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

func (s *Store) CreatePost(ctx context.Context, userID uuid.UUID, author, content string) (*models.Post, error) {
	var id uuid.UUID
	err := s.WithTx(ctx, func(tx *Store) error {
		var err error
		id, err = utils_db.FetchOne[uuid.UUID](ctx, tx.q,
			"INSERT INTO posts (user_id, author, content) VALUES ($1, $2, $3) RETURNING id",
			userID, author, content)
		return err
	})
	if err != nil {
		return nil, wrap(err, "store.CreatePost")
	}
	return s.GetPost(ctx, id)
}

func (s *Store) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := utils_db.FetchOne[models.Post](ctx, s.q, postSelect+" WHERE p.id = $1", id)
	if err != nil {
		return nil, wrap(err, "store.GetPost")
	}
	p.Comments = []models.Comment{}
	return &p, nil
}

// LockPost loads a post row for update. It must be called inside WithTx.
func (s *Store) LockPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := utils_db.FetchOne[models.Post](ctx, s.q,
		postSelect+" WHERE p.id = $1 FOR UPDATE OF p", id)
	if err != nil {
		return nil, wrap(err, "store.LockPost")
	}
	return &p, nil
}

func (s *Store) SetLikedBy(ctx context.Context, id uuid.UUID, likedBy models.UUIDList) error {
	_, err := utils_db.Exec(ctx, s.q, "UPDATE posts SET liked_by = $2 WHERE id = $1", id, likedBy)
	return wrap(err, "store.SetLikedBy")
}

func (s *Store) DeletePost(ctx context.Context, id uuid.UUID) error {
	n, err := utils_db.Exec(ctx, s.q, "DELETE FROM posts WHERE id = $1", id)
	if err == nil && n == 0 {
		err = ErrNotFound
	}
	return wrap(err, "store.DeletePost")
}

// FeedPosts returns the newest posts visible to viewer: its own, every PUBLIC
// author's, and FRIENDS authors among friends. Authors in excluded are left
// out.
func (s *Store) FeedPosts(ctx context.Context, viewer uuid.UUID, friends, excluded []uuid.UUID, limit int) ([]models.Post, error) {
	query := postSelect + `
	WHERE (p.user_id = $1
		OR u.profile_visibility = 'PUBLIC'
		OR (u.profile_visibility = 'FRIENDS' AND p.user_id = ANY($2)))
	  AND NOT (p.user_id = ANY($3))
	ORDER BY p.created_at DESC
	LIMIT $4
	`
	posts, err := utils_db.FetchAll[models.Post](ctx, s.q, query,
		viewer, models.UUIDList(friends), models.UUIDList(excluded), limit)
	if err != nil {
		return nil, wrap(err, "store.FeedPosts")
	}
	return posts, nil
}

// AttachComments loads the comments of every post, oldest first.
func (s *Store) AttachComments(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make(models.UUIDList, len(posts))
	index := make(map[uuid.UUID]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
		posts[i].Comments = []models.Comment{}
	}

	comments, err := utils_db.FetchAll[models.Comment](ctx, s.q,
		commentSelect+" WHERE c.post_id = ANY($1) ORDER BY c.created_at ASC, c.id", ids)
	if err != nil {
		return wrap(err, "store.AttachComments")
	}
	for _, c := range comments {
		i := index[c.PostID]
		posts[i].Comments = append(posts[i].Comments, c)
	}
	return nil
}

func (s *Store) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	c, err := utils_db.FetchOne[models.Comment](ctx, s.q, commentSelect+" WHERE c.id = $1", id)
	if err != nil {
		return nil, wrap(err, "store.GetComment")
	}
	return &c, nil
}

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	id, err := utils_db.FetchOne[uuid.UUID](ctx, s.q, `
	INSERT INTO comments (post_id, user_id, author, content, parent_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`, c.PostID, c.UserID, c.Author, c.Content, c.ParentID)
	if err != nil {
		return nil, wrap(err, "store.CreateComment")
	}
	return s.GetComment(ctx, id)
}
