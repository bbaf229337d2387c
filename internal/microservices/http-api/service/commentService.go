package service

import (
	"context"
	"errors"
	"fmt"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/models"
	"gamereviews/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, actor *models.User, reviewID int64, content string) (*models.Comment, error)
	UpdateComment(ctx context.Context, commentID int64, actor *models.User, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64, actor *models.User) error
	GetCommentByID(ctx context.Context, commentID int64) (*models.Comment, error)
	GetReviewComments(ctx context.Context, reviewID int64, skip, limit int) ([]models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// CreateComment creates a new comment under an existing review
func (s *commentService) CreateComment(ctx context.Context, actor *models.User, reviewID int64, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	// Check if review exists
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Review")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		UserID:   actor.ID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = *actor

	return comment, nil
}

// UpdateComment replaces the content of a comment owned by actor
func (s *commentService) UpdateComment(ctx context.Context, commentID int64, actor *models.User, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment, err := s.ownedComment(ctx, commentID, actor)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment deletes a comment owned by actor
func (s *commentService) DeleteComment(ctx context.Context, commentID int64, actor *models.User) error {
	if _, err := s.ownedComment(ctx, commentID, actor); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Comment")
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// GetCommentByID retrieves a comment by ID
func (s *commentService) GetCommentByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Comment")
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

// GetReviewComments lists the comments of a review; an unknown review yields an empty list
func (s *commentService) GetReviewComments(ctx context.Context, reviewID int64, skip, limit int) ([]models.Comment, error) {
	q := dto.ListQuery{Skip: skip, Limit: limit}.Normalize()
	return s.commentRepo.ListByReview(ctx, reviewID, q.Skip, q.Limit)
}

// non-authors see the comment as missing
func (s *commentService) ownedComment(ctx context.Context, commentID int64, actor *models.User) (*models.Comment, error) {
	comment, err := s.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if actor == nil || comment.UserID != actor.ID {
		return nil, notFound("Comment")
	}
	return comment, nil
}
