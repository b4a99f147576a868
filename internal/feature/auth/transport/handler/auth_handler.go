// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"microblog/internal/feature/auth/domain/entity"
	"microblog/internal/feature/auth/transport/middleware"
	"microblog/internal/forms"
)

// flashCookie carries a flash message for anonymous visitors, who have no
// session to queue it in. It is read and cleared on the next login page render.
const flashCookie = "microblog_flash"

// AuthUsecase defines the auth operations the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, username, email, password string) (*entity.User, error)
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
	StartSession(ctx context.Context, user *entity.User, remember bool, userAgent, ip string) (string, *entity.Session, error)
	EndSession(ctx context.Context, token string) error
}

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	auth        AuthUsecase
	uniqueness  forms.UniquenessChecker
	rememberTTL time.Duration
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase, uniqueness forms.UniquenessChecker, rememberTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		uniqueness:  uniqueness,
		rememberTTL: rememberTTL,
	}
}

// RegisterPage renders the empty registration form.
// Authenticated users are sent back to the feed.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if _, ok := middleware.UserFrom(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "Register"})
}

// Register handles the registration submission.
// Invalid input re-renders the form with field errors and no user is created.
func (h *AuthHandler) Register(c *gin.Context) {
	if _, ok := middleware.UserFrom(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form forms.RegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	fieldErrs, err := form.Validate(c.Request.Context(), h.uniqueness)
	if err != nil {
		slog.Error("registration uniqueness check failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !fieldErrs.Valid() {
		c.JSON(http.StatusOK, gin.H{"title": "Register", "errors": fieldErrs})
		return
	}

	if _, err := h.auth.Register(c.Request.Context(), form.Username, form.Email, form.Password); err != nil {
		// Lost a race against a concurrent registration; the pre-check
		// already passed, so surface it as a server error.
		slog.Error("registration failed", "error", err, "username", form.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	slog.Info("user registered", "username", form.Username)
	c.Redirect(http.StatusFound, "/")
}

// LoginPage renders the login form, including any pending flash message from
// a previous failed attempt.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := middleware.UserFrom(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	flashes := []string{}
	if msg, err := c.Cookie(flashCookie); err == nil && msg != "" {
		flashes = append(flashes, msg)
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	c.JSON(http.StatusOK, gin.H{"title": "Sign In", "flashes": flashes})
}

// Login handles the login submission.
// Unknown-username and wrong-password produce the same flash and redirect so
// accounts cannot be enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	if _, ok := middleware.UserFrom(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if fieldErrs := form.Validate(); !fieldErrs.Valid() {
		c.JSON(http.StatusOK, gin.H{"title": "Sign In", "errors": fieldErrs})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		slog.Warn("login failed", "username", form.Username, "remote_addr", c.ClientIP())
		c.SetCookie(flashCookie, "Invalid username or password", 300, "/", "", false, true)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	token, session, err := h.auth.StartSession(c.Request.Context(), user, form.RememberMe,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		slog.Error("failed to start session", "error", err, "username", form.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// A plain login gets a browser-session cookie; remember-me persists it
	// for the extended session lifetime.
	maxAge := 0
	if form.RememberMe {
		maxAge = int(h.rememberTTL.Seconds())
	}
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)

	slog.Info("user login successful", "username", form.Username, "session_id", session.ID)
	c.Redirect(http.StatusFound, SafeNext(c.Query("next")))
}

// Logout ends the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.auth.EndSession(c.Request.Context(), token); err != nil {
			slog.Warn("failed to end session", "error", err)
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// SafeNext validates a post-login redirect target. Only same-origin relative
// paths are allowed; anything carrying a scheme or host falls back to the
// feed, closing the open-redirect hole.
func SafeNext(next string) string {
	if next == "" {
		return "/"
	}
	// Browsers normalize backslashes to slashes in Location headers, so
	// "/\host" becomes the protocol-relative "//host". Reject them outright.
	if strings.ContainsRune(next, '\\') {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return next
}
