package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"microblog/internal/feature/social/usecase"
)

// followGorm is a GORM implementation of the FollowRepository interface.
type followGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure followGorm implements FollowRepository.
var _ usecase.FollowRepository = (*followGorm)(nil)

// NewFollowGorm creates a new instance of followGorm with the given gorm.DB connection.
func NewFollowGorm(db *gorm.DB) *followGorm {
	return &followGorm{db: db}
}

// Create inserts a follow edge. The unique (follower_id, followed_id) index
// makes duplicates impossible; a conflict maps to ErrAlreadyFollowing.
func (r *followGorm) Create(ctx context.Context, followerID, followedID uint) error {
	edge := &FollowModel{FollowerID: followerID, FollowedID: followedID}
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Delete removes a follow edge.
func (r *followGorm) Delete(ctx context.Context, followerID, followedID uint) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&FollowModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrNotFollowing
	}
	return nil
}

// IsFollowing reports whether followerID follows followedID.
func (r *followGorm) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&FollowModel{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
