package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamereviews/database"
	"gamereviews/internal/config"
	"gamereviews/internal/logging"
	"gamereviews/internal/microservices/http-api/repository"
	"gamereviews/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Setup structured logging
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the database
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.ConnectDB(startCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("database_unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Optional stats cache
	var cache service.StatsCache
	if cfg.StatsCacheEnabled() {
		sc, err := repository.NewStatsCache(cfg.RedisURL, cfg.RedisPassword, cfg.StatsCacheTTL)
		if err != nil {
			logger.Warn("stats_cache_disabled", "error", err)
		} else {
			defer sc.Close()
			cache = sc
			logger.Info("stats_cache_enabled", "ttl", cfg.StatsCacheTTL)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           newRouter(cfg, db.Gorm, db, cache, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err)
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
		return
	}
	logger.Info("server_stopped_gracefully")
}
