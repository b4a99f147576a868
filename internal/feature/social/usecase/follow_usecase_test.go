package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "microblog/internal/feature/auth/domain/entity"
)

// mockFollowRepository is a mock implementation of the FollowRepository interface.
type mockFollowRepository struct {
	CreateFunc      func(ctx context.Context, followerID, followedID uint) error
	DeleteFunc      func(ctx context.Context, followerID, followedID uint) error
	IsFollowingFunc func(ctx context.Context, followerID, followedID uint) (bool, error)
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followedID uint) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, followerID, followedID)
	}
	return nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followedID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, followerID, followedID)
	}
	return nil
}

func (m *mockFollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	if m.IsFollowingFunc != nil {
		return m.IsFollowingFunc(ctx, followerID, followedID)
	}
	return false, nil
}

// mockUserFinder is a mock implementation of the UserFinder interface.
type mockUserFinder struct {
	users map[string]*authentity.User
}

func (m *mockUserFinder) FindByUsername(ctx context.Context, username string) (*authentity.User, error) {
	if user, ok := m.users[username]; ok {
		return user, nil
	}
	return nil, errors.New("record not found")
}

func testUsers() *mockUserFinder {
	return &mockUserFinder{users: map[string]*authentity.User{
		"alice": {ID: 1, Username: "alice"},
		"bob":   {ID: 2, Username: "bob"},
	}}
}

func TestFollowUsecase_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an edge to the target", func(t *testing.T) {
		var gotFollower, gotFollowed uint
		follows := &mockFollowRepository{
			CreateFunc: func(ctx context.Context, followerID, followedID uint) error {
				gotFollower, gotFollowed = followerID, followedID
				return nil
			},
		}
		uc := NewFollowUsecase(follows, testUsers())

		target, err := uc.Follow(ctx, 1, "bob")

		require.NoError(t, err)
		assert.Equal(t, "bob", target.Username)
		assert.Equal(t, uint(1), gotFollower)
		assert.Equal(t, uint(2), gotFollowed)
	})

	t.Run("unknown target maps to ErrUserNotFound", func(t *testing.T) {
		uc := NewFollowUsecase(&mockFollowRepository{}, testUsers())

		_, err := uc.Follow(ctx, 1, "nobody")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("following yourself is rejected", func(t *testing.T) {
		follows := &mockFollowRepository{
			CreateFunc: func(ctx context.Context, followerID, followedID uint) error {
				t.Fatal("self follow must not reach the repository")
				return nil
			},
		}
		uc := NewFollowUsecase(follows, testUsers())

		_, err := uc.Follow(ctx, 1, "alice")

		assert.ErrorIs(t, err, ErrSelfAction)
	})

	t.Run("following an already followed user is a no-op success", func(t *testing.T) {
		follows := &mockFollowRepository{
			CreateFunc: func(ctx context.Context, followerID, followedID uint) error {
				return ErrAlreadyFollowing
			},
		}
		uc := NewFollowUsecase(follows, testUsers())

		target, err := uc.Follow(ctx, 1, "bob")

		require.NoError(t, err)
		assert.Equal(t, "bob", target.Username)
	})

	t.Run("storage failures propagate", func(t *testing.T) {
		follows := &mockFollowRepository{
			CreateFunc: func(ctx context.Context, followerID, followedID uint) error {
				return errors.New("connection lost")
			},
		}
		uc := NewFollowUsecase(follows, testUsers())

		_, err := uc.Follow(ctx, 1, "bob")

		assert.Error(t, err)
	})
}

func TestFollowUsecase_Unfollow(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the edge to the target", func(t *testing.T) {
		var gotFollower, gotFollowed uint
		follows := &mockFollowRepository{
			DeleteFunc: func(ctx context.Context, followerID, followedID uint) error {
				gotFollower, gotFollowed = followerID, followedID
				return nil
			},
		}
		uc := NewFollowUsecase(follows, testUsers())

		target, err := uc.Unfollow(ctx, 1, "bob")

		require.NoError(t, err)
		assert.Equal(t, "bob", target.Username)
		assert.Equal(t, uint(1), gotFollower)
		assert.Equal(t, uint(2), gotFollowed)
	})

	t.Run("unknown target maps to ErrUserNotFound", func(t *testing.T) {
		uc := NewFollowUsecase(&mockFollowRepository{}, testUsers())

		_, err := uc.Unfollow(ctx, 1, "nobody")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("unfollowing yourself is rejected", func(t *testing.T) {
		uc := NewFollowUsecase(&mockFollowRepository{}, testUsers())

		_, err := uc.Unfollow(ctx, 1, "alice")

		assert.ErrorIs(t, err, ErrSelfAction)
	})

	t.Run("unfollowing a user not followed is a no-op success", func(t *testing.T) {
		follows := &mockFollowRepository{
			DeleteFunc: func(ctx context.Context, followerID, followedID uint) error {
				return ErrNotFollowing
			},
		}
		uc := NewFollowUsecase(follows, testUsers())

		_, err := uc.Unfollow(ctx, 1, "bob")

		assert.NoError(t, err)
	})
}

func TestFollowUsecase_IsFollowing(t *testing.T) {
	follows := &mockFollowRepository{
		IsFollowingFunc: func(ctx context.Context, followerID, followedID uint) (bool, error) {
			return followerID == 1 && followedID == 2, nil
		},
	}
	uc := NewFollowUsecase(follows, testUsers())

	following, err := uc.IsFollowing(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = uc.IsFollowing(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.False(t, following)
}
