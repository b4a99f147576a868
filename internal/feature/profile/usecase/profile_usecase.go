// Package usecase implements the business logic for the profile feature.
package usecase

import (
	"context"
	"fmt"
)

// UserRepository abstracts the user persistence operations the profile editor
// needs. The auth feature's GORM user repository satisfies it.
type UserRepository interface {
	// UpdateProfile persists a username/about-me edit atomically.
	UpdateProfile(ctx context.Context, id uint, username, aboutMe string) error
}

// profileUsecase implements profile editing.
type profileUsecase struct {
	users UserRepository
}

// NewProfileUsecase creates a new instance of profileUsecase.
func NewProfileUsecase(users UserRepository) *profileUsecase {
	return &profileUsecase{users: users}
}

// UpdateProfile saves the user's new username and about-me text.
// Uniqueness of a renamed username is pre-checked by the form layer; a
// concurrent rename still fails on the unique index and propagates.
func (u *profileUsecase) UpdateProfile(ctx context.Context, userID uint, username, aboutMe string) error {
	if err := u.users.UpdateProfile(ctx, userID, username, aboutMe); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
