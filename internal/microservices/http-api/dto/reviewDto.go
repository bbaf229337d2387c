package dto

import (
	"time"

	"gamereviews/internal/microservices/http-api/models"
)

// CreateReviewDTO for creating a review
type CreateReviewDTO struct {
	GameID  int64  `json:"game_id" binding:"required,min=1"`
	Content string `json:"content" binding:"required,min=10"`
	Rating  int    `json:"rating" binding:"required,min=1,max=10"`
}

// UpdateReviewDTO for updating a review, absent fields are left untouched
type UpdateReviewDTO struct {
	Content *string `json:"content,omitempty" binding:"omitempty,min=10"`
	Rating  *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=10"`
}

// ReviewResponse for returning review information with its author
type ReviewResponse struct {
	ID        int64        `json:"id"`
	GameID    int64        `json:"game_id"`
	UserID    int64        `json:"user_id"`
	Content   string       `json:"content"`
	Rating    int          `json:"rating"`
	Author    UserResponse `json:"author"`
	CreatedAt time.Time    `json:"created_at"`
}

// ApplyTo overwrites only the fields present in the payload.
func (d UpdateReviewDTO) ApplyTo(r *models.Review) {
	if d.Content != nil {
		r.Content = *d.Content
	}
	if d.Rating != nil {
		r.Rating = *d.Rating
	}
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		GameID:    review.GameID,
		UserID:    review.UserID,
		Content:   review.Content,
		Rating:    review.Rating,
		Author:    FromModelToUserResponse(&review.Author),
		CreatedAt: review.CreatedAt,
	}
}

func FromModelsToReviewResponses(reviews []models.Review) []ReviewResponse {
	resp := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, *FromModelToReviewResponse(&reviews[i]))
	}
	return resp
}
