package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gamereviews/internal/config"
	"gamereviews/internal/microservices/http-api/handler"
	"gamereviews/internal/microservices/http-api/middleware"
	"gamereviews/internal/microservices/http-api/repository"
	"gamereviews/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// pinger is satisfied by *database.DB.
type pinger interface {
	Ping(ctx context.Context) error
}

// newRouter wires repositories, services and handlers on top of an open store.
// cache may be nil.
func newRouter(cfg *config.Config, gdb *gorm.DB, store pinger, cache service.StatsCache, logger *slog.Logger) *gin.Engine {
	// Repositories
	userRepo := repository.NewUserRepository(gdb)
	gameRepo := repository.NewGameRepo(gdb)
	reviewRepo := repository.NewReviewRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)

	// Services
	authService := service.NewAuthService(userRepo, cfg, logger)
	userService := service.NewUserService(userRepo, reviewRepo, cache, logger)
	gameService := service.NewGameService(gameRepo, cache, logger)
	reviewService := service.NewReviewService(reviewRepo, gameRepo, cache, logger)
	commentService := service.NewCommentService(commentRepo, reviewRepo)
	statsService := service.NewStatsService(reviewRepo, cache, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Game reviews API is running"})
	})
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.AuthMiddleware(authService)
	limiter := middleware.RateLimit(middleware.NewIPRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst))
	timeout := cfg.RequestTimeout

	api := r.Group("/api")
	handler.NewAuthHandler(authService, timeout).RegisterRoutes(api.Group("/auth"), limiter)
	handler.NewUserHandler(userService, timeout).RegisterRoutes(api.Group("/users"), requireAuth)
	handler.NewGameHandler(gameService, reviewService, statsService, timeout).RegisterRoutes(api.Group("/games"), requireAuth)
	handler.NewReviewHandler(reviewService, commentService, timeout).RegisterRoutes(api.Group("/reviews"), requireAuth)
	handler.NewCommentHandler(commentService, timeout).RegisterRoutes(api.Group("/comments"), requireAuth)

	return r
}
