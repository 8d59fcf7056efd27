package social

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/store"
	"habitserver/internal/utils/utils_auth"
)

type SignupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Username string `json:"username"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

var (
	usernameStrip   = regexp.MustCompile(`[^a-z0-9_]`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)
)

func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, api_error.BadRequest("Name is required")
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, api_error.EmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, errors.Wrap(err, "social.Signup")
	}

	username := strings.TrimSpace(in.Username)
	if username != "" {
		if !usernamePattern.MatchString(username) {
			return nil, api_error.BadRequest("Username must be 3-30 letters, digits or underscores")
		}
		taken, err := s.store.UsernameExists(ctx, username)
		if err != nil {
			return nil, errors.Wrap(err, "social.Signup")
		}
		if taken {
			return nil, api_error.Conflict("Username already exists")
		}
	} else {
		var err error
		if username, err = s.generateUsername(ctx, email); err != nil {
			return nil, err
		}
	}

	hash, err := utils_auth.GenerateArgon2Hash(in.Password)
	if err != nil {
		return nil, errors.Wrap(err, "social.Signup")
	}

	u := &models.User{
		Email:             email,
		PasswordHash:      hash,
		Name:              name,
		Username:          username,
		ProfileVisibility: models.VisibilityPublic,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, api_error.EmailTaken
		}
		return nil, errors.Wrap(err, "social.Signup")
	}
	return u, nil
}

// generateUsername derives a username from the email local part, adding a
// numeric suffix until it is free.
func (s *Service) generateUsername(ctx context.Context, email string) (string, error) {
	local := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	base := usernameStrip.ReplaceAllString(local, "")
	if len(base) < 3 {
		base = "user" + base
	}
	if len(base) > 24 {
		base = base[:24]
	}

	candidate := base
	for i := 1; ; i++ {
		taken, err := s.store.UsernameExists(ctx, candidate)
		if err != nil {
			return "", errors.Wrap(err, "social.generateUsername")
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	u, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, notFound(err, api_error.InvalidCreds, "social.Login")
	}
	if !utils_auth.VerifyArgon2Hash(in.Password, u.PasswordHash) {
		return nil, api_error.InvalidCreds
	}
	return u, nil
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.getUser(ctx, userID)
}
