package usecase

import (
	"context"
	"errors"
	"fmt"

	authentity "microblog/internal/feature/auth/domain/entity"
)

// FollowRepository abstracts the persistence layer for follow edges.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type FollowRepository interface {
	// Create inserts the (follower, followed) edge.
	// Returns ErrAlreadyFollowing when the edge exists.
	Create(ctx context.Context, followerID, followedID uint) error

	// Delete removes the (follower, followed) edge.
	// Returns ErrNotFollowing when there is no edge.
	Delete(ctx context.Context, followerID, followedID uint) error

	// IsFollowing reports whether the edge exists.
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
}

// UserFinder resolves follow targets by username.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*authentity.User, error)
}

// followUsecase implements the follow and unfollow operations.
type followUsecase struct {
	follows FollowRepository
	users   UserFinder
}

// NewFollowUsecase creates a new instance of followUsecase.
func NewFollowUsecase(follows FollowRepository, users UserFinder) *followUsecase {
	return &followUsecase{follows: follows, users: users}
}

// Follow makes followerID follow the user named username and returns the
// target. Following someone already followed is a no-op success; the self
// check runs before any mutation.
func (u *followUsecase) Follow(ctx context.Context, followerID uint, username string) (*authentity.User, error) {
	target, err := u.resolveTarget(ctx, followerID, username)
	if err != nil {
		return nil, err
	}
	if err := u.follows.Create(ctx, followerID, target.ID); err != nil && !errors.Is(err, ErrAlreadyFollowing) {
		return nil, fmt.Errorf("failed to create follow edge: %w", err)
	}
	return target, nil
}

// Unfollow removes followerID's edge to the user named username and returns
// the target. Unfollowing someone not followed is a no-op success.
func (u *followUsecase) Unfollow(ctx context.Context, followerID uint, username string) (*authentity.User, error) {
	target, err := u.resolveTarget(ctx, followerID, username)
	if err != nil {
		return nil, err
	}
	if err := u.follows.Delete(ctx, followerID, target.ID); err != nil && !errors.Is(err, ErrNotFollowing) {
		return nil, fmt.Errorf("failed to delete follow edge: %w", err)
	}
	return target, nil
}

// IsFollowing reports whether followerID follows the user with followedID.
func (u *followUsecase) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return u.follows.IsFollowing(ctx, followerID, followedID)
}

// resolveTarget looks up the target user and rejects self-directed actions.
func (u *followUsecase) resolveTarget(ctx context.Context, followerID uint, username string) (*authentity.User, error) {
	target, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if target.ID == followerID {
		return nil, ErrSelfAction
	}
	return target, nil
}
