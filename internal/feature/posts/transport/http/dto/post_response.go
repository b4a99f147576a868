// Package dto defines data transfer objects for the posts feature's HTTP transport layer.
package dto

import (
	"time"

	authentity "microblog/internal/feature/auth/domain/entity"
	"microblog/internal/feature/posts/domain/entity"
)

// PostResponse is one post as rendered in a feed.
type PostResponse struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
}

// UserResponse is the profile header on the /user/<username> page.
type UserResponse struct {
	Username string    `json:"username"`
	AboutMe  string    `json:"about_me"`
	LastSeen time.Time `json:"last_seen"`
}

// FromPost converts a post entity to its response shape.
func FromPost(p entity.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Body:      p.Body,
		Timestamp: p.Timestamp,
		Author:    p.Author.Username,
	}
}

// FromPosts converts a slice of post entities.
func FromPosts(posts []entity.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i, p := range posts {
		out[i] = FromPost(p)
	}
	return out
}

// FromUser converts a user entity to the profile header shape.
func FromUser(u *authentity.User) UserResponse {
	return UserResponse{
		Username: u.Username,
		AboutMe:  u.AboutMe,
		LastSeen: u.LastSeen,
	}
}
