package social

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/policy"
	"habitserver/internal/store"
	"habitserver/internal/utils/utils_auth"
)

const avatarURLPrefix = "/uploads/avatars/"

var avatarTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
}

type ProfileUpdate struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

type AvatarUpload struct {
	Body        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type SettingsView struct {
	User     *models.User        `json:"user"`
	Settings models.UserSettings `json:"settings"`
}

type SettingsUpdate struct {
	EmailNotifications *bool `json:"emailNotifications"`
	HabitReminders     *bool `json:"habitReminders"`
	WeeklyReports      *bool `json:"weeklyReports"`
}

type AccountUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type PrivacyUpdate struct {
	ProfileVisibility *models.Visibility `json:"profileVisibility"`
	ShowStreak        *bool              `json:"showStreak"`
	ShowActivity      *bool              `json:"showActivity"`
}

func (s *Service) buildProfile(ctx context.Context, u *models.User, withStreak bool) (*models.Profile, error) {
	friends, err := s.store.CountFriends(ctx, u.ID)
	if err != nil {
		return nil, errors.Wrap(err, "social.buildProfile")
	}
	posts, err := s.store.CountPosts(ctx, u.ID)
	if err != nil {
		return nil, errors.Wrap(err, "social.buildProfile")
	}

	p := &models.Profile{
		ID:                u.ID,
		Name:              u.Name,
		Username:          u.Username,
		Bio:               u.Bio,
		AvatarURL:         u.AvatarURL,
		ProfileVisibility: u.ProfileVisibility,
		SignupDate:        u.SignupDate,
		FriendCount:       friends,
		PostCount:         posts,
	}
	if withStreak {
		_, longest, err := s.store.HabitStats(ctx, u.ID)
		if err != nil {
			return nil, errors.Wrap(err, "social.buildProfile")
		}
		p.Streak = &longest
	}
	return p, nil
}

func (s *Service) OwnProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.buildProfile(ctx, u, true)
	if err != nil {
		return nil, err
	}
	p.Email = u.Email
	return p, nil
}

// ViewProfile returns a *models.Profile or, for a FRIENDS-only stranger, a
// *models.RestrictedProfile.
func (s *Service) ViewProfile(ctx context.Context, viewer, targetID uuid.UUID) (interface{}, error) {
	if viewer == targetID {
		return s.OwnProfile(ctx, viewer)
	}

	target, err := s.getUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	access, err := s.policy.CanViewProfile(ctx, viewer, target)
	if err != nil {
		return nil, errors.Wrap(err, "social.ViewProfile")
	}

	switch access {
	case policy.Full:
		settings, err := s.store.GetSettings(ctx, target.ID)
		if err != nil {
			return nil, errors.Wrap(err, "social.ViewProfile")
		}
		return s.buildProfile(ctx, target, settings.ShowStreak)
	case policy.Restricted:
		p, err := s.buildProfile(ctx, target, false)
		if err != nil {
			return nil, err
		}
		return &models.RestrictedProfile{
			ID:                p.ID,
			Name:              p.Name,
			Username:          p.Username,
			AvatarURL:         p.AvatarURL,
			ProfileVisibility: p.ProfileVisibility,
			FriendCount:       p.FriendCount,
			PostCount:         p.PostCount,
			IsRestricted:      true,
		}, nil
	}

	blocked, err := s.store.IsBlocked(ctx, viewer, target.ID)
	if err != nil {
		return nil, errors.Wrap(err, "social.ViewProfile")
	}
	if blocked {
		return nil, api_error.UserBlocked
	}
	return nil, api_error.ProfilePrivate
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdate) (*models.User, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			in.Name = nil
		} else {
			in.Name = &name
		}
	}
	u, err := s.store.UpdateProfile(ctx, userID, in.Name, in.Bio)
	if err != nil {
		return nil, notFound(err, api_error.UserNotFound, "social.UpdateProfile")
	}
	return u, nil
}

// SetAvatar stores an uploaded PNG or JPEG under the upload directory and
// points the user at it. The previous file is removed.
func (s *Service) SetAvatar(ctx context.Context, userID uuid.UUID, up AvatarUpload) (*models.User, error) {
	if up.Size > models.MAX_AVATAR_FILESIZE {
		return nil, api_error.BadRequest("File too large (max 5MB)")
	}
	ext, err := avatarExt(up.Filename, up.ContentType)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.uploadDir, "avatars")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "social.SetAvatar")
	}

	name := fmt.Sprintf("avatar-%s%s", uuid.New(), ext)
	path := filepath.Join(dir, name)
	if err := writeLimited(path, up.Body, models.MAX_AVATAR_FILESIZE); err != nil {
		return nil, err
	}

	url := avatarURLPrefix + name
	previous, err := s.store.SwapAvatar(ctx, userID, &url)
	if err != nil {
		_ = os.Remove(path)
		return nil, notFound(err, api_error.UserNotFound, "social.SetAvatar")
	}
	s.removeAvatar(previous)
	return s.getUser(ctx, userID)
}

func (s *Service) DeleteAvatar(ctx context.Context, userID uuid.UUID) error {
	previous, err := s.store.SwapAvatar(ctx, userID, nil)
	if err != nil {
		return notFound(err, api_error.UserNotFound, "social.DeleteAvatar")
	}
	s.removeAvatar(previous)
	return nil
}

func avatarExt(filename, contentType string) (string, error) {
	ext, ok := avatarTypes[strings.ToLower(contentType)]
	if !ok {
		return "", api_error.BadRequest("Only PNG, JPEG and JPG images are allowed")
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg":
	default:
		return "", api_error.BadRequest("Only PNG, JPEG and JPG images are allowed")
	}
	return ext, nil
}

func writeLimited(path string, body io.Reader, limit int64) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "social.writeLimited")
	}
	n, err := io.Copy(f, io.LimitReader(body, limit+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > limit {
		err = api_error.BadRequest("File too large (max 5MB)")
	}
	if err != nil {
		_ = os.Remove(path)
		if _, ok := err.(api_error.APIError); ok {
			return err
		}
		return errors.Wrap(err, "social.writeLimited")
	}
	return nil
}

// removeAvatar deletes a previously stored avatar file. Urls outside the
// avatar directory are ignored.
func (s *Service) removeAvatar(url *string) {
	if url == nil || !strings.HasPrefix(*url, avatarURLPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(*url, avatarURLPrefix))
	err := os.Remove(filepath.Join(s.uploadDir, "avatars", name))
	if err != nil && !os.IsNotExist(err) {
		afterCommit("remove avatar", err)
	}
}

func (s *Service) GetSettings(ctx context.Context, userID uuid.UUID) (*SettingsView, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings, err := s.store.GetSettings(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "social.GetSettings")
	}
	return &SettingsView{User: u, Settings: settings}, nil
}

func (s *Service) UpdateSettings(ctx context.Context, userID uuid.UUID, in SettingsUpdate) (models.UserSettings, error) {
	var out models.UserSettings
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		settings, err := tx.GetSettings(ctx, userID)
		if err != nil {
			return err
		}
		setBool(&settings.EmailNotifications, in.EmailNotifications)
		setBool(&settings.HabitReminders, in.HabitReminders)
		setBool(&settings.WeeklyReports, in.WeeklyReports)
		out = settings
		return tx.SaveSettings(ctx, settings)
	})
	return out, errors.Wrap(err, "social.UpdateSettings")
}

func (s *Service) UpdateAccount(ctx context.Context, userID uuid.UUID, in AccountUpdate) (*models.User, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		in.Name = nil
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		in.Email = &email
		if existing, err := s.store.GetUserByEmail(ctx, email); err == nil && existing.ID != userID {
			return nil, api_error.EmailTaken
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, errors.Wrap(err, "social.UpdateAccount")
		}
	}

	u, err := s.store.UpdateAccount(ctx, userID, in.Name, in.Email)
	switch {
	case errors.Is(err, store.ErrConflict):
		return nil, api_error.EmailTaken
	case err != nil:
		return nil, notFound(err, api_error.UserNotFound, "social.UpdateAccount")
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, in PasswordChange) error {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utils_auth.VerifyArgon2Hash(in.CurrentPassword, u.PasswordHash) {
		return api_error.WrongPassword
	}
	hash, err := utils_auth.GenerateArgon2Hash(in.NewPassword)
	if err != nil {
		return errors.Wrap(err, "social.ChangePassword")
	}
	return errors.Wrap(s.store.UpdatePassword(ctx, userID, hash), "social.ChangePassword")
}

func (s *Service) UpdatePrivacy(ctx context.Context, userID uuid.UUID, in PrivacyUpdate) (*SettingsView, error) {
	if in.ProfileVisibility != nil && !in.ProfileVisibility.Valid() {
		return nil, api_error.BadRequest("profileVisibility must be PUBLIC, FRIENDS or PRIVATE")
	}

	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if in.ProfileVisibility != nil {
			if err := tx.UpdateVisibility(ctx, userID, *in.ProfileVisibility); err != nil {
				return err
			}
		}
		settings, err := tx.GetSettings(ctx, userID)
		if err != nil {
			return err
		}
		setBool(&settings.ShowStreak, in.ShowStreak)
		setBool(&settings.ShowActivity, in.ShowActivity)
		return tx.SaveSettings(ctx, settings)
	})
	if err != nil {
		return nil, errors.Wrap(err, "social.UpdatePrivacy")
	}
	return s.GetSettings(ctx, userID)
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
