package usecase

import (
	"context"

	"microblog/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke marks a session as revoked by setting RevokedAt.
	Revoke(ctx context.Context, id string) error

	// DeleteExpired removes all expired sessions from storage.
	// Returns the number of deleted sessions.
	DeleteExpired(ctx context.Context) (int64, error)

	// PushFlash appends a flash message to the session's transient queue.
	PushFlash(ctx context.Context, sessionID, message string) error

	// DrainFlashes returns the session's queued flash messages and empties
	// the queue. A drained message is never returned twice.
	DrainFlashes(ctx context.Context, sessionID string) ([]string, error)
}
