// Package entity defines the domain entities for the posts feature.
package entity

import (
	"time"

	authentity "microblog/internal/feature/auth/domain/entity"
)

// Post represents one short text update. Posts are immutable once created.
type Post struct {
	// ID is the unique identifier for the post.
	ID uint `gorm:"primaryKey"`

	// Body is the post text, 1-140 characters.
	Body string `gorm:"size:140;not null"`

	// Timestamp is the creation time (UTC). Feeds sort on it descending.
	Timestamp time.Time `gorm:"index;not null"`

	// AuthorID references the owning user.
	AuthorID uint `gorm:"index;not null"`

	// Author is the owning user, preloaded for display.
	Author authentity.User `gorm:"foreignKey:AuthorID"`
}
