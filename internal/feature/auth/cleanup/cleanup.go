// Package cleanup removes expired sessions in the background.
package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredDeleter is the slice of the session repository cleanup needs.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Start runs an hourly sweep of expired sessions until ctx is cancelled.
// The Redis store expires keys on its own; this matters for the database
// fallback, where expired rows would otherwise accumulate.
func Start(ctx context.Context, sessions ExpiredDeleter) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := sessions.DeleteExpired(ctx)
			if err != nil {
				slog.Error("session cleanup failed", "error", err)
				continue
			}
			if deleted > 0 {
				slog.Info("session cleanup removed expired sessions", "count", deleted)
			}
		}
	}
}
