package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	UserID    uuid.UUID   `db:"user_id" json:"userId"`
	Author    string      `db:"author" json:"author"`
	Content   string      `db:"content" json:"content"`
	LikedBy   UUIDList    `db:"liked_by" json:"likedBy"`
	Likes     int         `db:"likes" json:"likes"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	User      UserSummary `db:"user" json:"user"`
	Comments  []Comment   `db:"-" json:"comments"`
}

func (p *Post) IsOwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}

// Comments form a flat list; replies point at their parent.
type Comment struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	PostID    uuid.UUID   `db:"post_id" json:"postId"`
	UserID    uuid.UUID   `db:"user_id" json:"userId"`
	Author    string      `db:"author" json:"author"`
	Content   string      `db:"content" json:"content"`
	ParentID  *uuid.UUID  `db:"parent_id" json:"parentId"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	User      UserSummary `db:"user" json:"user"`
}

type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}
