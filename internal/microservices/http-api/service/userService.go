package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/models"
	"gamereviews/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	// Delete removes the account of the calling user along with their content.
	Delete(ctx context.Context, actor *models.User) error
}

type userService struct {
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	cache      StatsCache
	logger     *slog.Logger
}

func NewUserService(userRepo repository.UserRepository, reviewRepo repository.ReviewRepository, cache StatsCache, logger *slog.Logger) UserService {
	return &userService{
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		cache:      cache,
		logger:     logger,
	}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	q := dto.ListQuery{Skip: skip, Limit: limit}.Normalize()
	return s.userRepo.List(ctx, q.Skip, q.Limit)
}

func (s *userService) Delete(ctx context.Context, actor *models.User) error {
	if actor == nil {
		return ErrUnauthorized
	}

	// collected before the cascade removes the reviews
	gameIDs, err := s.reviewRepo.GameIDsReviewedBy(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("list reviewed games: %w", err)
	}

	if err := s.userRepo.Delete(ctx, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("User")
		}
		return fmt.Errorf("delete user: %w", err)
	}

	invalidateStats(ctx, s.cache, s.logger, gameIDs...)
	s.logger.Info("user deleted", slog.Int64("user_id", actor.ID), slog.Int("reviewed_games", len(gameIDs)))
	return nil
}
