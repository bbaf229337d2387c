package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/repository"
)

// StatsCache is the optional read-through cache in front of the aggregation.
type StatsCache interface {
	Get(ctx context.Context, gameID int64) (*repository.GameStats, error)
	Version(ctx context.Context, gameID int64) (int64, error)
	Set(ctx context.Context, gameID, version int64, stats repository.GameStats) error
	Invalidate(ctx context.Context, gameID int64) error
}

type StatsService interface {
	GameStats(ctx context.Context, gameID int64) (*dto.GameStatsResponse, error)
}

type statsService struct {
	reviewRepo repository.ReviewRepository
	cache      StatsCache
	logger     *slog.Logger
}

// NewStatsService accepts a nil cache.
func NewStatsService(reviewRepo repository.ReviewRepository, cache StatsCache, logger *slog.Logger) StatsService {
	return &statsService{
		reviewRepo: reviewRepo,
		cache:      cache,
		logger:     logger,
	}
}

// GameStats returns the average rating and review count of a game. A game
// without reviews (or an unknown id) yields {0, 0}.
func (s *statsService) GameStats(ctx context.Context, gameID int64) (*dto.GameStatsResponse, error) {
	// the version is read before the ratings, so a review write landing in
	// between makes the cache reject this result
	var version int64
	cacheable := false
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, gameID)
		if err != nil {
			s.logger.Warn("stats cache read failed", slog.Int64("game_id", gameID), slog.Any("error", err))
		} else if cached != nil {
			return &dto.GameStatsResponse{AverageRating: cached.AverageRating, TotalReviews: cached.TotalReviews}, nil
		}

		if version, err = s.cache.Version(ctx, gameID); err != nil {
			s.logger.Warn("stats cache version read failed", slog.Int64("game_id", gameID), slog.Any("error", err))
		} else {
			cacheable = true
		}
	}

	ratings, err := s.reviewRepo.RatingsByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	stats := ComputeStats(ratings)

	if cacheable {
		if err := s.cache.Set(ctx, gameID, version, stats); err != nil {
			s.logger.Warn("stats cache write failed", slog.Int64("game_id", gameID), slog.Any("error", err))
		}
	}

	return &dto.GameStatsResponse{AverageRating: stats.AverageRating, TotalReviews: stats.TotalReviews}, nil
}

// ComputeStats averages ratings rounded to two decimals.
func ComputeStats(ratings []int) repository.GameStats {
	if len(ratings) == 0 {
		return repository.GameStats{}
	}

	total := 0
	for _, r := range ratings {
		total += r
	}
	avg := float64(total) / float64(len(ratings))

	return repository.GameStats{
		AverageRating: math.Round(avg*100) / 100,
		TotalReviews:  int64(len(ratings)),
	}
}

// invalidateStats drops cached stats after a review write; the store stays the
// source of truth so failures are only logged.
func invalidateStats(ctx context.Context, cache StatsCache, logger *slog.Logger, gameIDs ...int64) {
	if cache == nil {
		return
	}
	for _, id := range gameIDs {
		if err := cache.Invalidate(ctx, id); err != nil {
			logger.Warn("stats cache invalidation failed", slog.Int64("game_id", id), slog.Any("error", err))
		}
	}
}
