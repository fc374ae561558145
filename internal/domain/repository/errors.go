package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken is returned by UserRepository.Create when the
	// username is already in use.
	ErrUsernameTaken = errors.New("username already taken")
)
