package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "microblog/internal/feature/auth/transport/handler"
	"microblog/internal/feature/auth/transport/middleware"
	posthandler "microblog/internal/feature/posts/transport/handler"
	profilehandler "microblog/internal/feature/profile/transport/handler"
	socialhandler "microblog/internal/feature/social/transport/handler"
	"microblog/internal/platform/http/handler"
	"microblog/internal/platform/metrics"
)

// NewRouter builds the gin engine with the full route table.
// CurrentUser runs on every request so the last-seen timestamp of an
// authenticated user is updated before any handler.
func NewRouter(resolver middleware.SessionResolver, auth *authhandler.AuthHandler,
	posts *posthandler.PostHandler, profile *profilehandler.ProfileHandler,
	social *socialhandler.FollowHandler) *gin.Engine {
	r := gin.Default()
	r.Use(metrics.Middleware())
	r.Use(middleware.CurrentUser(resolver))

	// Public routes
	r.GET("/healthz", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/register", auth.RegisterPage)
	r.POST("/register", auth.Register)
	r.GET("/login", auth.LoginPage)
	r.POST("/login", auth.Login)
	r.GET("/logout", auth.Logout)
	r.GET("/explore", posts.Explore)
	r.GET("/about", posts.About)

	// Routes requiring a logged-in user
	authed := r.Group("/")
	authed.Use(middleware.LoginRequired())
	{
		authed.GET("/", posts.Index)
		authed.POST("/", posts.CreatePost)
		authed.GET("/index", posts.Index)
		authed.POST("/index", posts.CreatePost)
		authed.GET("/user/:username", posts.UserPage)
		authed.GET("/edit_profile", profile.EditPage)
		authed.POST("/edit_profile", profile.Edit)
		authed.GET("/follow/:username", social.Follow)
		authed.GET("/unfollow/:username", social.Unfollow)
	}

	return r
}
