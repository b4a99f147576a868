// Package adapters provides repository implementations for the posts feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"microblog/internal/feature/posts/domain/entity"
	"microblog/internal/feature/posts/usecase"
)

// postGorm is a GORM implementation of the PostRepository interface.
type postGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure postGorm implements PostRepository.
var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostGorm creates a new instance of postGorm with the given gorm.DB connection.
func NewPostGorm(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// Create adds a post to the database.
func (r *postGorm) Create(ctx context.Context, p *entity.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// followedAuthors is the subquery selecting the authors userID follows.
func (r *postGorm) followedAuthors(userID uint) *gorm.DB {
	return r.db.Table("follows").
		Select("followed_id").
		Where("follower_id = ?", userID)
}

// ListFollowed returns posts authored by followed users, newest first.
func (r *postGorm) ListFollowed(ctx context.Context, userID uint, offset, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id IN (?)", r.followedAuthors(userID)).
		Order("timestamp DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// CountFollowed returns the number of posts authored by followed users.
func (r *postGorm) CountFollowed(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Where("author_id IN (?)", r.followedAuthors(userID)).
		Count(&count).Error
	return count, err
}

// ListAll returns all posts, newest first.
func (r *postGorm) ListAll(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("timestamp DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// CountAll returns the total number of posts.
func (r *postGorm) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Post{}).Count(&count).Error
	return count, err
}

// ListByAuthor returns one user's posts, newest first.
func (r *postGorm) ListByAuthor(ctx context.Context, authorID uint, offset, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("timestamp DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// CountByAuthor returns the number of posts by one user.
func (r *postGorm) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
