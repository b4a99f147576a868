// Package handler provides the HTTP handlers for the posts feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authentity "microblog/internal/feature/auth/domain/entity"
	"microblog/internal/feature/auth/transport/middleware"
	"microblog/internal/feature/posts/domain/entity"
	"microblog/internal/feature/posts/transport/http/dto"
	"microblog/internal/forms"
	"microblog/internal/shared/pagination"
)

// PostUsecase defines the post operations the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PostUsecase interface {
	CreatePost(ctx context.Context, authorID uint, body string) (*entity.Post, error)
	HomeFeed(ctx context.Context, userID uint, page int) (pagination.Page[entity.Post], error)
	Explore(ctx context.Context, page int) (pagination.Page[entity.Post], error)
	PostsByUser(ctx context.Context, authorID uint, page int) (pagination.Page[entity.Post], error)
}

// UserFinder resolves profile pages by username.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*authentity.User, error)
}

// FlashQueue pushes and drains per-session flash messages.
type FlashQueue interface {
	PushFlash(ctx context.Context, sessionID, message string) error
	DrainFlashes(ctx context.Context, sessionID string) ([]string, error)
}

// FollowChecker reports whether one user follows another, for the
// follow/unfollow affordance on profile pages.
type FollowChecker interface {
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
}

// PostHandler handles the feed pages and post creation.
type PostHandler struct {
	posts   PostUsecase
	users   UserFinder
	flash   FlashQueue
	follows FollowChecker
}

// NewPostHandler creates a new instance of PostHandler.
func NewPostHandler(posts PostUsecase, users UserFinder, flash FlashQueue, follows FollowChecker) *PostHandler {
	return &PostHandler{posts: posts, users: users, flash: flash, follows: follows}
}

// Index renders the home feed: posts by users the current user follows.
func (h *PostHandler) Index(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	page := pageParam(c)
	feed, err := h.posts.HomeFeed(c.Request.Context(), user.ID, page)
	if err != nil {
		h.feedError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.feedContext("Home", "/", feed, h.drainFlashes(c)))
}

// CreatePost handles the new-post submission on the home page.
func (h *PostHandler) CreatePost(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form forms.UserPostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if fieldErrs := form.Validate(); !fieldErrs.Valid() {
		c.JSON(http.StatusOK, gin.H{"title": "Home", "errors": fieldErrs})
		return
	}

	if _, err := h.posts.CreatePost(c.Request.Context(), user.ID, form.Body); err != nil {
		slog.Error("failed to create post", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.pushFlash(c, "Your post has been published.")
	c.Redirect(http.StatusFound, "/")
}

// Explore renders the public feed of all posts.
func (h *PostHandler) Explore(c *gin.Context) {
	page := pageParam(c)
	feed, err := h.posts.Explore(c.Request.Context(), page)
	if err != nil {
		h.feedError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.feedContext("Explore", "/explore", feed, h.drainFlashes(c)))
}

// UserPage renders one user's profile and their posts.
// An unknown username is a 404.
func (h *PostHandler) UserPage(c *gin.Context) {
	username := c.Param("username")
	user, err := h.users.FindByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	page := pageParam(c)
	feed, err := h.posts.PostsByUser(c.Request.Context(), user.ID, page)
	if err != nil {
		h.feedError(c, err)
		return
	}

	context := h.feedContext(user.Username, "/user/"+user.Username, feed, h.drainFlashes(c))
	context["user"] = dto.FromUser(user)

	if viewer, ok := middleware.UserFrom(c); ok {
		context["is_self"] = viewer.ID == user.ID
		if viewer.ID != user.ID {
			following, err := h.follows.IsFollowing(c.Request.Context(), viewer.ID, user.ID)
			if err != nil {
				slog.Warn("failed to check follow state", "error", err)
			}
			context["is_following"] = following
		}
	}
	c.JSON(http.StatusOK, context)
}

// About renders the static about page with a randomly-seeded avatar image.
func (h *PostHandler) About(c *gin.Context) {
	const avatarSize = 128
	avatar := fmt.Sprintf("https://source.unsplash.com/random/%dx%d?sig=%d",
		avatarSize, avatarSize, rand.Intn(100000))
	c.JSON(http.StatusOK, gin.H{"title": "About Us", "avatar": avatar})
}

// feedContext assembles the page context shared by all feeds.
func (h *PostHandler) feedContext(title, basePath string, feed pagination.Page[entity.Post], flashes []string) gin.H {
	var nextURL, prevURL string
	if feed.HasNext {
		nextURL = fmt.Sprintf("%s?page=%d", basePath, feed.NextNumber())
	}
	if feed.HasPrev {
		prevURL = fmt.Sprintf("%s?page=%d", basePath, feed.PrevNumber())
	}
	return gin.H{
		"title":    title,
		"posts":    dto.FromPosts(feed.Items),
		"page":     feed.Number,
		"has_next": feed.HasNext,
		"has_prev": feed.HasPrev,
		"next_url": nextURL,
		"prev_url": prevURL,
		"flashes":  flashes,
	}
}

// feedError maps feed failures: out-of-range pages are 404s, the rest 500s.
func (h *PostHandler) feedError(c *gin.Context, err error) {
	if errors.Is(err, pagination.ErrPageOutOfRange) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	slog.Error("failed to load feed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// drainFlashes pops the session's queued messages, if a session is active.
func (h *PostHandler) drainFlashes(c *gin.Context) []string {
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

// pushFlash queues a message on the current session, if any.
func (h *PostHandler) pushFlash(c *gin.Context, message string) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return
	}
	if err := h.flash.PushFlash(c.Request.Context(), session.ID, message); err != nil {
		slog.Warn("failed to push flash", "error", err, "session_id", session.ID)
	}
}

// pageParam reads the 1-based page query parameter, defaulting to 1.
// Non-numeric values fall back to the default; out-of-range numbers are
// rejected later by the pagination layer.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}
