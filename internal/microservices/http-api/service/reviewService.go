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

type ReviewService interface {
	CreateReview(ctx context.Context, actor *models.User, in dto.CreateReviewDTO) (*models.Review, error)
	GetReviewByID(ctx context.Context, reviewID int64) (*models.Review, error)
	ListReviews(ctx context.Context, filter repository.ReviewFilter, skip, limit int) ([]models.Review, error)
	UpdateReview(ctx context.Context, reviewID int64, actor *models.User, patch dto.UpdateReviewDTO) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID int64, actor *models.User) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	gameRepo   repository.GameRepository
	cache      StatsCache
	logger     *slog.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, gameRepo repository.GameRepository, cache StatsCache, logger *slog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		gameRepo:   gameRepo,
		cache:      cache,
		logger:     logger,
	}
}

// CreateReview creates a review authored by actor for an existing game
func (s *reviewService) CreateReview(ctx context.Context, actor *models.User, in dto.CreateReviewDTO) (*models.Review, error) {
	if err := firstError(validateReviewContent(in.Content), validateRating(in.Rating)); err != nil {
		return nil, err
	}

	// Check if game exists
	if _, err := s.gameRepo.GetByID(ctx, in.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Game")
		}
		return nil, fmt.Errorf("get game: %w", err)
	}

	review := &models.Review{
		GameID:  in.GameID,
		UserID:  actor.ID,
		Content: in.Content,
		Rating:  in.Rating,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	review.Author = *actor

	invalidateStats(ctx, s.cache, s.logger, review.GameID)
	return review, nil
}

// GetReviewByID retrieves a review with its author
func (s *reviewService) GetReviewByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Review")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, filter repository.ReviewFilter, skip, limit int) ([]models.Review, error) {
	q := dto.ListQuery{Skip: skip, Limit: limit}.Normalize()
	return s.reviewRepo.List(ctx, filter, q.Skip, q.Limit)
}

// UpdateReview applies a partial update. Only the author may update; anyone
// else gets the same not-found error as for a missing review.
func (s *reviewService) UpdateReview(ctx context.Context, reviewID int64, actor *models.User, patch dto.UpdateReviewDTO) (*models.Review, error) {
	review, err := s.ownedReview(ctx, reviewID, actor)
	if err != nil {
		return nil, err
	}

	if patch.Content != nil {
		if err := validateReviewContent(*patch.Content); err != nil {
			return nil, err
		}
	}
	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return nil, err
		}
	}

	patch.ApplyTo(review)
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	if patch.Rating != nil {
		invalidateStats(ctx, s.cache, s.logger, review.GameID)
	}
	return review, nil
}

// DeleteReview deletes a review and its comments, same ownership rule as UpdateReview
func (s *reviewService) DeleteReview(ctx context.Context, reviewID int64, actor *models.User) error {
	review, err := s.ownedReview(ctx, reviewID, actor)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Review")
		}
		return fmt.Errorf("delete review: %w", err)
	}

	invalidateStats(ctx, s.cache, s.logger, review.GameID)
	return nil
}

func (s *reviewService) ownedReview(ctx context.Context, reviewID int64, actor *models.User) (*models.Review, error) {
	review, err := s.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if actor == nil || review.UserID != actor.ID {
		return nil, notFound("Review")
	}
	return review, nil
}
