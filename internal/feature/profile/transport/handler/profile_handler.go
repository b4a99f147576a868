// Package handler provides the HTTP handlers for the profile feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/feature/auth/transport/middleware"
	"microblog/internal/forms"
)

// ProfileUsecase defines the profile operations the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, userID uint, username, aboutMe string) error
}

// FlashQueue pushes per-session flash messages.
type FlashQueue interface {
	PushFlash(ctx context.Context, sessionID, message string) error
	DrainFlashes(ctx context.Context, sessionID string) ([]string, error)
}

// ProfileHandler handles the profile edit page.
type ProfileHandler struct {
	profile    ProfileUsecase
	uniqueness forms.UniquenessChecker
	flash      FlashQueue
}

// NewProfileHandler creates a new instance of ProfileHandler.
func NewProfileHandler(profile ProfileUsecase, uniqueness forms.UniquenessChecker, flash FlashQueue) *ProfileHandler {
	return &ProfileHandler{profile: profile, uniqueness: uniqueness, flash: flash}
}

// EditPage renders the edit form pre-filled with the current profile.
func (h *ProfileHandler) EditPage(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": "Edit Profile",
		"form": gin.H{
			"username": user.Username,
			"about_me": user.AboutMe,
		},
		"flashes": h.drainFlashes(c),
	})
}

// Edit handles the profile edit submission.
// Keeping the current username is always allowed; renaming onto another
// user's name is a field error.
func (h *ProfileHandler) Edit(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form forms.EditProfileForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	form.OriginalUsername = user.Username

	fieldErrs, err := form.Validate(c.Request.Context(), h.uniqueness)
	if err != nil {
		slog.Error("profile uniqueness check failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !fieldErrs.Valid() {
		c.JSON(http.StatusOK, gin.H{"title": "Edit Profile", "errors": fieldErrs})
		return
	}

	if err := h.profile.UpdateProfile(c.Request.Context(), user.ID, form.Username, form.AboutMe); err != nil {
		slog.Error("failed to update profile", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.pushFlash(c, "Your changes have been saved.")
	c.Redirect(http.StatusFound, "/edit_profile")
}

func (h *ProfileHandler) drainFlashes(c *gin.Context) []string {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return []string{}
	}
	msgs, err := h.flash.DrainFlashes(c.Request.Context(), session.ID)
	if err != nil {
		slog.Warn("failed to drain flashes", "error", err, "session_id", session.ID)
		return []string{}
	}
	if msgs == nil {
		msgs = []string{}
	}
	return msgs
}

func (h *ProfileHandler) pushFlash(c *gin.Context, message string) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return
	}
	if err := h.flash.PushFlash(c.Request.Context(), session.ID, message); err != nil {
		slog.Warn("failed to push flash", "error", err, "session_id", session.ID)
	}
}
