package dto

import (
	"time"

	"gamereviews/internal/microservices/http-api/models"
)

// CreateCommentDTO for creating a comment, the review comes from the path
type CreateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID        int64        `json:"id"`
	ReviewID  int64        `json:"review_id"`
	UserID    int64        `json:"user_id"`
	Content   string       `json:"content"`
	Author    UserResponse `json:"author"`
	CreatedAt time.Time    `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		ReviewID:  comment.ReviewID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		Author:    FromModelToUserResponse(&comment.Author),
		CreatedAt: comment.CreatedAt,
	}
}

func FromModelsToCommentResponses(comments []models.Comment) []CommentResponse {
	resp := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, *FromModelToCommentResponse(&comments[i]))
	}
	return resp
}
