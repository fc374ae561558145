package application

import "errors"

// Sentinel errors returned by the application services. Handlers map these
// to HTTP statuses and user-facing messages; nothing below is retried.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")

	ErrEventNotFound     = errors.New("event not found")
	ErrNotOrganizer      = errors.New("caller is not the event organizer")
	ErrOrganizerNotFound = errors.New("organizer not found")

	ErrOwnEvent          = errors.New("organizer cannot register for own event")
	ErrAlreadyRegistered = errors.New("already registered for event")
)
