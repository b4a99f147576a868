package main

import (
	"context"
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"microblog/internal/app/di"
	"microblog/internal/app/router"
	"microblog/internal/config"
	authadapters "microblog/internal/feature/auth/adapters"
	"microblog/internal/feature/auth/cleanup"
	authhandler "microblog/internal/feature/auth/transport/handler"
	authusecase "microblog/internal/feature/auth/usecase"
	postadapters "microblog/internal/feature/posts/adapters"
	posthandler "microblog/internal/feature/posts/transport/handler"
	postusecase "microblog/internal/feature/posts/usecase"
	profilehandler "microblog/internal/feature/profile/transport/handler"
	profileusecase "microblog/internal/feature/profile/usecase"
	socialadapters "microblog/internal/feature/social/adapters"
	socialhandler "microblog/internal/feature/social/transport/handler"
	socialusecase "microblog/internal/feature/social/usecase"
	infradb "microblog/internal/platform/db"
	"microblog/internal/platform/logger"
	infraredis "microblog/internal/platform/redis"
	"microblog/internal/platform/sessiontoken"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if _, err := logger.Setup(cfg.LogDir); err != nil {
		log.Fatal(err)
	}

	// db
	db := infradb.OpenDB(cfg.DatabaseDSN)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
		slog.Warn("Redis unavailable, sessions fall back to the database")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	postRepo := postadapters.NewPostGorm(db)
	followRepo := socialadapters.NewFollowGorm(db)

	// Usecase
	tokens := sessiontoken.NewCodec(cfg.SessionSecret)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokens, cfg.SessionTTL, cfg.RememberTTL)
	postUC := postusecase.NewPostUsecase(postRepo, cfg.PostsPerPage)
	followUC := socialusecase.NewFollowUsecase(followRepo, userRepo)
	profileUC := profileusecase.NewProfileUsecase(userRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, userRepo, cfg.RememberTTL)
	postH := posthandler.NewPostHandler(postUC, userRepo, sessionRepo, followUC)
	profileH := profilehandler.NewProfileHandler(profileUC, userRepo, sessionRepo)
	socialH := socialhandler.NewFollowHandler(followUC, sessionRepo)

	// Background session housekeeping
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleanup.Start(ctx, sessionRepo)

	r := router.NewRouter(authUC, authH, postH, profileH, socialH)

	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
