// Package handler provides the HTTP handlers for the social feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authentity "microblog/internal/feature/auth/domain/entity"
	"microblog/internal/feature/auth/transport/middleware"
	"microblog/internal/feature/social/usecase"
)

// FollowUsecase defines the follow operations the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type FollowUsecase interface {
	Follow(ctx context.Context, followerID uint, username string) (*authentity.User, error)
	Unfollow(ctx context.Context, followerID uint, username string) (*authentity.User, error)
}

// FlashQueue pushes per-session flash messages.
type FlashQueue interface {
	PushFlash(ctx context.Context, sessionID, message string) error
}

// FollowHandler handles the follow and unfollow endpoints.
type FollowHandler struct {
	follows FollowUsecase
	flash   FlashQueue
}

// NewFollowHandler creates a new instance of FollowHandler.
func NewFollowHandler(follows FollowUsecase, flash FlashQueue) *FollowHandler {
	return &FollowHandler{follows: follows, flash: flash}
}

// Follow makes the current user follow the named user.
// Every outcome flashes feedback; only a real store failure is an error.
func (h *FollowHandler) Follow(c *gin.Context) {
	h.edgeAction(c, "follow")
}

// Unfollow removes the current user's follow of the named user.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	h.edgeAction(c, "unfollow")
}

func (h *FollowHandler) edgeAction(c *gin.Context, action string) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	username := c.Param("username")

	var (
		target *authentity.User
		err    error
	)
	if action == "follow" {
		target, err = h.follows.Follow(c.Request.Context(), user.ID, username)
	} else {
		target, err = h.follows.Unfollow(c.Request.Context(), user.ID, username)
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		h.pushFlash(c, fmt.Sprintf("User %s can not be found.", username))
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, usecase.ErrSelfAction):
		h.pushFlash(c, fmt.Sprintf("You can not %s yourself!", action))
		c.Redirect(http.StatusFound, "/")
	case err != nil:
		slog.Error("follow action failed", "error", err, "action", action, "username", username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		if action == "follow" {
			h.pushFlash(c, fmt.Sprintf("You are now following %s", target.Username))
		} else {
			h.pushFlash(c, fmt.Sprintf("You are no longer following %s", target.Username))
		}
		c.Redirect(http.StatusFound, "/user/"+target.Username)
	}
}

func (h *FollowHandler) pushFlash(c *gin.Context, message string) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return
	}
	if err := h.flash.PushFlash(c.Request.Context(), session.ID, message); err != nil {
		slog.Warn("failed to push flash", "error", err, "session_id", session.ID)
	}
}
