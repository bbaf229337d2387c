package repository

import (
	"context"

	"gamereviews/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewFilter narrows a review listing, nil fields are ignored.
type ReviewFilter struct {
	GameID *int64
	UserID *int64
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Save(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, reviewID int64) error
	GetByID(ctx context.Context, reviewID int64) (*models.Review, error)
	List(ctx context.Context, filter ReviewFilter, skip, limit int) ([]models.Review, error)
	RatingsByGame(ctx context.Context, gameID int64) ([]int, error)
	GameIDsReviewedBy(ctx context.Context, userID int64) ([]int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
}

// Save writes every column of an existing review
func (r *reviewRepository) Save(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(review).Error
}

// Delete a review and the comments left under it
func (r *reviewRepository) Delete(ctx context.Context, reviewID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Review{}, reviewID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetByID retrieves a review with its author
func (r *reviewRepository) GetByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&review, reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// List retrieves reviews in primary key order
func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter, skip, limit int) ([]models.Review, error) {
	var reviews []models.Review

	db := r.db.WithContext(ctx)
	if filter.GameID != nil {
		db = db.Where("game_id = ?", *filter.GameID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}

	err := db.Preload("Author").
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// RatingsByGame loads every rating given to a game
func (r *reviewRepository) RatingsByGame(ctx context.Context, gameID int64) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("game_id = ?", gameID).
		Order("id ASC").
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// GameIDsReviewedBy lists the distinct games a user has reviewed
func (r *reviewRepository) GameIDsReviewedBy(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("game_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
