package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/feature/posts/domain/entity"
	"microblog/internal/shared/pagination"
)

// mockPostRepository is a mock implementation of the PostRepository interface.
type mockPostRepository struct {
	CreateFunc        func(ctx context.Context, post *entity.Post) error
	ListFollowedFunc  func(ctx context.Context, userID uint, offset, limit int) ([]entity.Post, error)
	CountFollowedFunc func(ctx context.Context, userID uint) (int64, error)
	ListAllFunc       func(ctx context.Context, offset, limit int) ([]entity.Post, error)
	CountAllFunc      func(ctx context.Context) (int64, error)
	ListByAuthorFunc  func(ctx context.Context, authorID uint, offset, limit int) ([]entity.Post, error)
	CountByAuthorFunc func(ctx context.Context, authorID uint) (int64, error)
}

func (m *mockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) ListFollowed(ctx context.Context, userID uint, offset, limit int) ([]entity.Post, error) {
	if m.ListFollowedFunc != nil {
		return m.ListFollowedFunc(ctx, userID, offset, limit)
	}
	return nil, nil
}

func (m *mockPostRepository) CountFollowed(ctx context.Context, userID uint) (int64, error) {
	if m.CountFollowedFunc != nil {
		return m.CountFollowedFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockPostRepository) ListAll(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, offset, limit)
	}
	return nil, nil
}

func (m *mockPostRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, nil
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID uint, offset, limit int) ([]entity.Post, error) {
	if m.ListByAuthorFunc != nil {
		return m.ListByAuthorFunc(ctx, authorID, offset, limit)
	}
	return nil, nil
}

func (m *mockPostRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	if m.CountByAuthorFunc != nil {
		return m.CountByAuthorFunc(ctx, authorID)
	}
	return 0, nil
}

// fixedFeed builds a repository whose all-posts feed holds total posts and
// serves slices of it honoring offset and limit.
func fixedFeed(total int) *mockPostRepository {
	posts := make([]entity.Post, total)
	for i := range posts {
		posts[i] = entity.Post{ID: uint(total - i), Body: "post"}
	}
	return &mockPostRepository{
		CountAllFunc: func(ctx context.Context) (int64, error) {
			return int64(total), nil
		},
		ListAllFunc: func(ctx context.Context, offset, limit int) ([]entity.Post, error) {
			if offset >= len(posts) {
				return nil, nil
			}
			end := offset + limit
			if end > len(posts) {
				end = len(posts)
			}
			return posts[offset:end], nil
		},
	}
}

func TestPostUsecase_CreatePost(t *testing.T) {
	t.Run("stamps the post with author and UTC time", func(t *testing.T) {
		var created *entity.Post
		repo := &mockPostRepository{
			CreateFunc: func(ctx context.Context, post *entity.Post) error {
				created = post
				return nil
			},
		}
		uc := NewPostUsecase(repo, 10)

		post, err := uc.CreatePost(context.Background(), 7, "hello world")

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "hello world", post.Body)
		assert.Equal(t, uint(7), post.AuthorID)
		assert.Equal(t, time.UTC, post.Timestamp.Location())
		assert.WithinDuration(t, time.Now().UTC(), post.Timestamp, time.Minute)
	})

	t.Run("storage failures propagate", func(t *testing.T) {
		repo := &mockPostRepository{
			CreateFunc: func(ctx context.Context, post *entity.Post) error {
				return errors.New("connection lost")
			},
		}
		uc := NewPostUsecase(repo, 10)

		_, err := uc.CreatePost(context.Background(), 7, "hello")
		assert.Error(t, err)
	})
}

func TestPostUsecase_Explore(t *testing.T) {
	t.Run("pages through the full feed", func(t *testing.T) {
		uc := NewPostUsecase(fixedFeed(25), 10)

		page, err := uc.Explore(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, page.Items, 10)
		assert.True(t, page.HasNext)
		assert.False(t, page.HasPrev)

		page, err = uc.Explore(context.Background(), 3)
		require.NoError(t, err)
		assert.Len(t, page.Items, 5)
		assert.False(t, page.HasNext)
		assert.True(t, page.HasPrev)
	})

	t.Run("page past the end is out of range", func(t *testing.T) {
		uc := NewPostUsecase(fixedFeed(25), 10)

		_, err := uc.Explore(context.Background(), 4)
		assert.ErrorIs(t, err, pagination.ErrPageOutOfRange)
	})

	t.Run("page one of an empty feed is valid", func(t *testing.T) {
		uc := NewPostUsecase(fixedFeed(0), 10)

		page, err := uc.Explore(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasNext)
		assert.False(t, page.HasPrev)
	})

	t.Run("page two of an empty feed is out of range", func(t *testing.T) {
		uc := NewPostUsecase(fixedFeed(0), 10)

		_, err := uc.Explore(context.Background(), 2)
		assert.ErrorIs(t, err, pagination.ErrPageOutOfRange)
	})
}

func TestPostUsecase_HomeFeed(t *testing.T) {
	t.Run("asks the repository for the caller's followed posts", func(t *testing.T) {
		var gotUser uint
		var gotOffset, gotLimit int
		repo := &mockPostRepository{
			CountFollowedFunc: func(ctx context.Context, userID uint) (int64, error) {
				return 12, nil
			},
			ListFollowedFunc: func(ctx context.Context, userID uint, offset, limit int) ([]entity.Post, error) {
				gotUser, gotOffset, gotLimit = userID, offset, limit
				return []entity.Post{{ID: 1}}, nil
			},
		}
		uc := NewPostUsecase(repo, 10)

		page, err := uc.HomeFeed(context.Background(), 7, 2)

		require.NoError(t, err)
		assert.Equal(t, uint(7), gotUser)
		assert.Equal(t, 10, gotOffset)
		assert.Equal(t, 10, gotLimit)
		assert.Equal(t, int64(12), page.Total)
	})

	t.Run("count failure propagates", func(t *testing.T) {
		repo := &mockPostRepository{
			CountFollowedFunc: func(ctx context.Context, userID uint) (int64, error) {
				return 0, errors.New("connection lost")
			},
		}
		uc := NewPostUsecase(repo, 10)

		_, err := uc.HomeFeed(context.Background(), 7, 1)
		assert.Error(t, err)
	})
}

func TestPostUsecase_PostsByUser(t *testing.T) {
	repo := &mockPostRepository{
		CountByAuthorFunc: func(ctx context.Context, authorID uint) (int64, error) {
			return 3, nil
		},
		ListByAuthorFunc: func(ctx context.Context, authorID uint, offset, limit int) ([]entity.Post, error) {
			return []entity.Post{{ID: 3, AuthorID: authorID}, {ID: 2, AuthorID: authorID}, {ID: 1, AuthorID: authorID}}, nil
		},
	}
	uc := NewPostUsecase(repo, 10)

	page, err := uc.PostsByUser(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(3), page.Total)
	assert.False(t, page.HasNext)
	for _, post := range page.Items {
		assert.Equal(t, uint(7), post.AuthorID)
	}
}
