package api_error

import (
	"errors"
	"net/http"
)

var (
	MissingAuthHeader = NewFromErr(errors.New("Missing Authorization header"), http.StatusUnauthorized)
	InvalidToken      = NewFromErr(errors.New("Invalid or expired token"), http.StatusUnauthorized)
	InvalidCreds      = NewFromErr(errors.New("Invalid credentials"), http.StatusUnauthorized)
	WrongPassword     = NewFromErr(errors.New("Current password is incorrect"), http.StatusUnauthorized)

	UserBlocked    = NewFromErr(errors.New("User is blocked"), http.StatusForbidden)
	ProfilePrivate = NewFromErr(errors.New("Profile is private"), http.StatusForbidden)
	NotParticipant = NewFromErr(errors.New("Not a participant of this room"), http.StatusForbidden)

	InvalidObj      = NewFromErr(errors.New("invalid request body"), http.StatusBadRequest)
	InvalidID       = NewFromErr(errors.New("invalid id"), http.StatusBadRequest)
	SelfRequest     = NewFromErr(errors.New("Cannot add yourself"), http.StatusBadRequest)
	SelfBlock       = NewFromErr(errors.New("Cannot block yourself"), http.StatusBadRequest)
	SelfChat        = NewFromErr(errors.New("Cannot start a chat with yourself"), http.StatusBadRequest)
	EmptyContent    = NewFromErr(errors.New("Content is required"), http.StatusBadRequest)
	NotAParticipant = NewFromErr(errors.New("Not a participant of this challenge"), http.StatusBadRequest)

	UserNotFound         = NewFromErr(errors.New("User not found"), http.StatusNotFound)
	PostNotFound         = NewFromErr(errors.New("Post not found"), http.StatusNotFound)
	RoomNotFound         = NewFromErr(errors.New("Chat room not found"), http.StatusNotFound)
	HabitNotFound        = NewFromErr(errors.New("Habit not found"), http.StatusNotFound)
	RequestNotFound      = NewFromErr(errors.New("Request not found"), http.StatusNotFound)
	ChallengeNotFound    = NewFromErr(errors.New("Challenge not found"), http.StatusNotFound)
	ReminderNotFound     = NewFromErr(errors.New("Reminder not found"), http.StatusNotFound)
	NotificationNotFound = NewFromErr(errors.New("Notification not found"), http.StatusNotFound)

	RequestExists = NewFromErr(errors.New("Request already exists or already friends"), http.StatusConflict)
	AlreadyJoined = NewFromErr(errors.New("Already joined this challenge"), http.StatusConflict)
	EmailTaken    = NewFromErr(errors.New("Email already exists"), http.StatusConflict)
)
