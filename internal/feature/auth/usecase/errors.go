// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when attempting to create or rename a user
	// with a username that already exists.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmailTaken is returned when attempting to create a user with an email
	// that already exists.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials is returned for any failed login attempt.
	// Unknown-username and wrong-password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidSessionToken is returned when a session cookie token is invalid or malformed.
	ErrInvalidSessionToken = errors.New("invalid session token")
)
