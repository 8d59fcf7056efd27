package models

import (
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityFriends Visibility = "FRIENDS"
	VisibilityPrivate Visibility = "PRIVATE"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}
	return false
}

type User struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	Email             string     `db:"email" json:"email"`
	PasswordHash      string     `db:"password_hash" json:"-"`
	Name              string     `db:"name" json:"name"`
	Username          string     `db:"username" json:"username"`
	Bio               string     `db:"bio" json:"bio"`
	AvatarURL         *string    `db:"avatar_url" json:"avatarUrl"`
	ProfileVisibility Visibility `db:"profile_visibility" json:"profileVisibility"`
	SignupDate        time.Time  `db:"signup_date" json:"signupDate"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
}

func (u *User) IsOwnedBy(userID uuid.UUID) bool {
	return u.ID == userID
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Username: u.Username, AvatarURL: u.AvatarURL}
}

// UserSummary is the public card shown next to posts, messages and requests.
type UserSummary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Username  string    `db:"username" json:"username"`
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl"`
}

// SearchResult is a user card plus the visibility hint shown in search.
type SearchResult struct {
	UserSummary
	ProfileVisibility Visibility `db:"profile_visibility" json:"profileVisibility"`
}

type UserSettings struct {
	UserID             uuid.UUID `db:"user_id" json:"-"`
	EmailNotifications bool      `db:"email_notifications" json:"emailNotifications"`
	HabitReminders     bool      `db:"habit_reminders" json:"habitReminders"`
	WeeklyReports      bool      `db:"weekly_reports" json:"weeklyReports"`
	ShowStreak         bool      `db:"show_streak" json:"showStreak"`
	ShowActivity       bool      `db:"show_activity" json:"showActivity"`
}

func DefaultUserSettings(userID uuid.UUID) UserSettings {
	return UserSettings{
		UserID:             userID,
		EmailNotifications: true,
		HabitReminders:     true,
		WeeklyReports:      false,
		ShowStreak:         true,
		ShowActivity:       true,
	}
}

// Profile is the full profile disclosed to the owner, friends and anyone when
// the owner is public.
type Profile struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Username          string     `json:"username"`
	Email             string     `json:"email,omitempty"`
	Bio               string     `json:"bio"`
	AvatarURL         *string    `json:"avatarUrl"`
	ProfileVisibility Visibility `json:"profileVisibility"`
	SignupDate        time.Time  `json:"signupDate"`
	FriendCount       int        `json:"friendCount"`
	PostCount         int        `json:"postCount"`
	Streak            *int       `json:"streak,omitempty"`
	IsRestricted      bool       `json:"isRestricted"`
}

// RestrictedProfile is what a non-friend sees of a FRIENDS-only user.
type RestrictedProfile struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Username          string     `json:"username"`
	AvatarURL         *string    `json:"avatarUrl"`
	ProfileVisibility Visibility `json:"profileVisibility"`
	FriendCount       int        `json:"friendCount"`
	PostCount         int        `json:"postCount"`
	IsRestricted      bool       `json:"isRestricted"`
}
