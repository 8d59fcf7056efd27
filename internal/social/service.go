// Package social implements the habit tracker's use cases on top of the store
// and the visibility policy.
package social

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/habit"
	"habitserver/internal/logger"
	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/policy"
	"habitserver/internal/store"
)

type Options struct {
	Location  *time.Location
	FeedLimit int
	UploadDir string
	Now       func() time.Time
}

type Service struct {
	store     *store.Store
	policy    *policy.Policy
	loc       *time.Location
	feedLimit int
	uploadDir string
	now       func() time.Time
}

func New(st *store.Store, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.FeedLimit <= 0 {
		opts.FeedLimit = models.FEED_LIMIT
	}
	if opts.UploadDir == "" {
		opts.UploadDir = "uploads"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:     st,
		policy:    policy.New(st),
		loc:       opts.Location,
		feedLimit: opts.FeedLimit,
		uploadDir: opts.UploadDir,
		now:       opts.Now,
	}
}

func (s *Service) Policy() *policy.Policy {
	return s.policy
}

func (s *Service) today() string {
	return habit.Today(s.now(), s.loc)
}

// notFound turns store.ErrNotFound into apiErr and wraps anything else.
func notFound(err error, apiErr api_error.APIError, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apiErr
	}
	return errors.Wrap(err, op)
}

// ensureOwner hides resources owned by someone else behind the same error as
// a missing one.
func ensureOwner(obj models.Protected, userID uuid.UUID, missing api_error.APIError) error {
	if !obj.IsOwnedBy(userID) {
		return missing
	}
	return nil
}

func (s *Service) getUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, api_error.UserNotFound, "social.getUser")
	}
	return u, nil
}

// afterCommit runs a best-effort follow-up. Failures are logged, not returned,
// since the primary write already succeeded.
func afterCommit(what string, err error) {
	if err != nil {
		logger.Warn("follow-up failed", "step", what, "err", err)
	}
}
