// Package usecase implements the business logic for the posts feature.
package usecase

import (
	"context"
	"fmt"
	"time"

	"microblog/internal/feature/posts/domain/entity"
	"microblog/internal/shared/pagination"
)

// PostRepository abstracts the persistence layer for post entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PostRepository interface {
	// Create persists a new post to the storage.
	Create(ctx context.Context, post *entity.Post) error

	// ListFollowed returns posts authored by users the given user follows,
	// newest first, with authors preloaded.
	ListFollowed(ctx context.Context, userID uint, offset, limit int) ([]entity.Post, error)

	// CountFollowed returns the total number of posts ListFollowed can page over.
	CountFollowed(ctx context.Context, userID uint) (int64, error)

	// ListAll returns all posts, newest first, with authors preloaded.
	ListAll(ctx context.Context, offset, limit int) ([]entity.Post, error)

	// CountAll returns the total number of posts.
	CountAll(ctx context.Context) (int64, error)

	// ListByAuthor returns one user's posts, newest first.
	ListByAuthor(ctx context.Context, authorID uint, offset, limit int) ([]entity.Post, error)

	// CountByAuthor returns the total number of posts by one user.
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// postUsecase implements post creation and the three paginated feeds.
type postUsecase struct {
	posts    PostRepository
	pageSize int
}

// NewPostUsecase creates a new instance of postUsecase.
// pageSize is the process-wide posts-per-page constant.
func NewPostUsecase(posts PostRepository, pageSize int) *postUsecase {
	return &postUsecase{posts: posts, pageSize: pageSize}
}

// CreatePost stores a new post owned by authorID with a UTC timestamp.
// Body bounds are enforced by the form layer before this is called.
func (u *postUsecase) CreatePost(ctx context.Context, authorID uint, body string) (*entity.Post, error) {
	post := &entity.Post{
		Body:      body,
		Timestamp: time.Now().UTC(),
		AuthorID:  authorID,
	}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// HomeFeed returns the page of posts authored by users userID follows.
// An out-of-range page returns pagination.ErrPageOutOfRange.
func (u *postUsecase) HomeFeed(ctx context.Context, userID uint, page int) (pagination.Page[entity.Post], error) {
	return u.paginate(ctx, page,
		func(ctx context.Context) (int64, error) { return u.posts.CountFollowed(ctx, userID) },
		func(ctx context.Context, offset int) ([]entity.Post, error) {
			return u.posts.ListFollowed(ctx, userID, offset, u.pageSize)
		})
}

// Explore returns the page of all posts, newest first.
func (u *postUsecase) Explore(ctx context.Context, page int) (pagination.Page[entity.Post], error) {
	return u.paginate(ctx, page, u.posts.CountAll,
		func(ctx context.Context, offset int) ([]entity.Post, error) {
			return u.posts.ListAll(ctx, offset, u.pageSize)
		})
}

// PostsByUser returns the page of posts authored by authorID.
func (u *postUsecase) PostsByUser(ctx context.Context, authorID uint, page int) (pagination.Page[entity.Post], error) {
	return u.paginate(ctx, page,
		func(ctx context.Context) (int64, error) { return u.posts.CountByAuthor(ctx, authorID) },
		func(ctx context.Context, offset int) ([]entity.Post, error) {
			return u.posts.ListByAuthor(ctx, authorID, offset, u.pageSize)
		})
}

// paginate runs the count-then-list pattern shared by all feeds.
func (u *postUsecase) paginate(ctx context.Context, page int,
	count func(context.Context) (int64, error),
	list func(context.Context, int) ([]entity.Post, error)) (pagination.Page[entity.Post], error) {

	var empty pagination.Page[entity.Post]

	total, err := count(ctx)
	if err != nil {
		return empty, fmt.Errorf("failed to count posts: %w", err)
	}
	offset, err := pagination.Offset(page, u.pageSize, total)
	if err != nil {
		return empty, err
	}
	items, err := list(ctx, offset)
	if err != nil {
		return empty, fmt.Errorf("failed to list posts: %w", err)
	}
	return pagination.New(items, page, u.pageSize, total), nil
}
