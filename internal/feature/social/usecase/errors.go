// Package usecase implements the business logic for the social feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when the follow target does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfAction is returned when a user tries to follow or unfollow themselves.
	ErrSelfAction = errors.New("cannot follow or unfollow yourself")

	// ErrAlreadyFollowing is returned by the repository when the edge already
	// exists. Follow treats it as a no-op success.
	ErrAlreadyFollowing = errors.New("already following")

	// ErrNotFollowing is returned by the repository when there is no edge to
	// remove. Unfollow treats it as a no-op success.
	ErrNotFollowing = errors.New("not following")
)
