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

type PostInput struct {
	Content string `json:"content" binding:"required"`
}

type CommentInput struct {
	Content  string     `json:"content" binding:"required"`
	ParentID *uuid.UUID `json:"parentId"`
}

// FeedFor returns the newest posts visible to viewer with their comments.
// Authors with a block edge to or from viewer never appear.
func (s *Service) FeedFor(ctx context.Context, viewer uuid.UUID) ([]models.Post, error) {
	friends, err := s.store.FriendIDs(ctx, viewer)
	if err != nil {
		return nil, errors.Wrap(err, "social.FeedFor")
	}
	blocked, err := s.store.BlockedIDs(ctx, viewer)
	if err != nil {
		return nil, errors.Wrap(err, "social.FeedFor")
	}

	posts, err := s.store.FeedPosts(ctx, viewer, friends, blocked, s.feedLimit)
	if err != nil {
		return nil, errors.Wrap(err, "social.FeedFor")
	}
	if err := s.store.AttachComments(ctx, posts); err != nil {
		return nil, errors.Wrap(err, "social.FeedFor")
	}
	return posts, nil
}

func (s *Service) CreatePost(ctx context.Context, userID uuid.UUID, in PostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, api_error.EmptyContent
	}
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	author := u.Name
	if author == "" {
		author = models.ANONYMOUS_AUTHOR
	}

	p, err := s.store.CreatePost(ctx, userID, author, content)
	return p, errors.Wrap(err, "social.CreatePost")
}

func (s *Service) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	p, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return notFound(err, api_error.PostNotFound, "social.DeletePost")
	}
	if !p.IsOwnedBy(userID) {
		return api_error.Forbidden("You can only delete your own posts")
	}
	if err := s.store.DeletePost(ctx, postID); err != nil {
		return notFound(err, api_error.PostNotFound, "social.DeletePost")
	}
	return nil
}

// visiblePost loads a post the viewer is allowed to see. Invisible posts are
// reported as missing.
func (s *Service) visiblePost(ctx context.Context, st *store.Store, viewer, postID uuid.UUID, lock bool) (*models.Post, error) {
	var (
		p   *models.Post
		err error
	)
	if lock {
		p, err = st.LockPost(ctx, postID)
	} else {
		p, err = st.GetPost(ctx, postID)
	}
	if err != nil {
		return nil, notFound(err, api_error.PostNotFound, "social.visiblePost")
	}

	author, err := st.GetUserByID(ctx, p.UserID)
	if err != nil {
		return nil, notFound(err, api_error.PostNotFound, "social.visiblePost")
	}
	ok, err := s.policy.CanSeePost(ctx, viewer, author)
	if err != nil {
		return nil, errors.Wrap(err, "social.visiblePost")
	}
	if !ok {
		return nil, api_error.PostNotFound
	}
	return p, nil
}

// ToggleLike adds or removes viewer from the post's likes. Only a new like
// notifies the author.
func (s *Service) ToggleLike(ctx context.Context, viewer, postID uuid.UUID) (*models.LikeResult, error) {
	var result models.LikeResult
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		p, err := s.visiblePost(ctx, tx, viewer, postID, true)
		if err != nil {
			return err
		}

		likedBy, liked := p.LikedBy.Toggle(viewer)
		if err := tx.SetLikedBy(ctx, p.ID, likedBy); err != nil {
			return err
		}
		result = models.LikeResult{Likes: len(likedBy), Liked: liked}
		if !liked {
			return nil
		}

		liker, err := tx.GetUserByID(ctx, viewer)
		if err != nil {
			return err
		}
		content := fmt.Sprintf("%s liked your post", liker.Name)
		return notify(ctx, tx, p.UserID, models.NotificationLike, &viewer, &p.ID, content)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AddComment comments on a visible post. Replies may only target top-level
// comments of the same post.
func (s *Service) AddComment(ctx context.Context, viewer, postID uuid.UUID, in CommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, api_error.EmptyContent
	}

	var c *models.Comment
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		p, err := s.visiblePost(ctx, tx, viewer, postID, false)
		if err != nil {
			return err
		}

		if in.ParentID != nil {
			parent, err := tx.GetComment(ctx, *in.ParentID)
			if err != nil {
				return notFound(err, api_error.BadRequest("Parent comment not found"), "social.AddComment")
			}
			if parent.PostID != p.ID {
				return api_error.BadRequest("Parent comment belongs to another post")
			}
			if parent.ParentID != nil {
				return api_error.BadRequest("Replies cannot be nested further")
			}
		}

		u, err := tx.GetUserByID(ctx, viewer)
		if err != nil {
			return err
		}
		author := u.Name
		if author == "" {
			author = models.ANONYMOUS_AUTHOR
		}

		c, err = tx.CreateComment(ctx, &models.Comment{
			PostID:   p.ID,
			UserID:   viewer,
			Author:   author,
			Content:  content,
			ParentID: in.ParentID,
		})
		if err != nil {
			return err
		}

		msg := fmt.Sprintf("%s commented on your post", author)
		return notify(ctx, tx, p.UserID, models.NotificationComment, &viewer, &p.ID, msg)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
