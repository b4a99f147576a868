// Package adapters provides repository implementations for the social feature.
package adapters

import "time"

// FollowModel is the GORM model for the follows table: one directed edge
// meaning follower receives followed's posts in their home feed.
// The (follower_id, followed_id) pair is unique so an edge cannot duplicate.
type FollowModel struct {
	ID         uint      `gorm:"primaryKey"`
	FollowerID uint      `gorm:"index;uniqueIndex:idx_follower_followed;not null"`
	FollowedID uint      `gorm:"uniqueIndex:idx_follower_followed;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (FollowModel) TableName() string {
	return "follows"
}
