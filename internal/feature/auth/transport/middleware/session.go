// Package middleware provides the session-aware gin middleware.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"microblog/internal/feature/auth/domain/entity"
)

const (
	// SessionCookie is the name of the session cookie.
	SessionCookie = "microblog_session"

	// ContextUserKey holds the authenticated user in the gin context.
	ContextUserKey = "currentUser"

	// ContextSessionKey holds the active session in the gin context.
	ContextSessionKey = "currentSession"
)

// SessionResolver maps a session cookie to its user and records activity.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (usecase).
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.User, *entity.Session, error)
	TouchLastSeen(ctx context.Context, userID uint) error
}

// CurrentUser resolves the session cookie on every request and, when a user
// is authenticated, stores the user and session in the gin context and
// updates the user's last-seen timestamp before the route handler runs.
// Anonymous requests pass through untouched.
func CurrentUser(auth SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil && token != "" {
			user, session, err := auth.Resolve(c.Request.Context(), token)
			if err == nil {
				c.Set(ContextUserKey, user)
				c.Set(ContextSessionKey, session)
				if err := auth.TouchLastSeen(c.Request.Context(), user.ID); err != nil {
					slog.Warn("failed to update last seen", "error", err, "user_id", user.ID)
				}
			}
		}
		c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page, preserving
// the originally requested URL in the next parameter.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextUserKey); !ok {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user stored by CurrentUser, if any.
func UserFrom(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}

// SessionFrom returns the active session stored by CurrentUser, if any.
func SessionFrom(c *gin.Context) (*entity.Session, bool) {
	v, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*entity.Session)
	return session, ok
}
