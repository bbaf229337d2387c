package handler_test

import (
	"context"
	"time"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/models"
	"gamereviews/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) IssueToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) TokenTTL() time.Duration {
	return 30 * time.Minute
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, actor *models.User) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) List(ctx context.Context, skip, limit int, search string) ([]models.Game, error) {
	args := m.Called(ctx, skip, limit, search)
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockGameService) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) Create(ctx context.Context, g *models.Game) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGameService) Update(ctx context.Context, id int64, patch dto.UpdateGameDTO) (*models.Game, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, actor *models.User, in dto.CreateReviewDTO) (*models.Review, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) GetReviewByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) ListReviews(ctx context.Context, filter repository.ReviewFilter, skip, limit int) ([]models.Review, error) {
	args := m.Called(ctx, filter, skip, limit)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, reviewID int64, actor *models.User, patch dto.UpdateReviewDTO) (*models.Review, error) {
	args := m.Called(ctx, reviewID, actor, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, reviewID int64, actor *models.User) error {
	args := m.Called(ctx, reviewID, actor)
	return args.Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, actor *models.User, reviewID int64, content string) (*models.Comment, error) {
	args := m.Called(ctx, actor, reviewID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) UpdateComment(ctx context.Context, commentID int64, actor *models.User, content string) (*models.Comment, error) {
	args := m.Called(ctx, commentID, actor, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID int64, actor *models.User) error {
	args := m.Called(ctx, commentID, actor)
	return args.Error(0)
}

func (m *MockCommentService) GetCommentByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) GetReviewComments(ctx context.Context, reviewID int64, skip, limit int) ([]models.Comment, error) {
	args := m.Called(ctx, reviewID, skip, limit)
	return args.Get(0).([]models.Comment), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GameStats(ctx context.Context, gameID int64) (*dto.GameStatsResponse, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GameStatsResponse), args.Error(1)
}
