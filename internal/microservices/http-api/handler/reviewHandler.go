package handler

import (
	"net/http"
	"time"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/middleware"
	"gamereviews/internal/microservices/http-api/repository"
	"gamereviews/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews  service.ReviewService
	comments service.CommentService
	timeout  time.Duration
}

func NewReviewHandler(reviews service.ReviewService, comments service.CommentService, timeout time.Duration) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, comments: comments, timeout: timeout}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/comments", h.Comments)

	rg.POST("", requireAuth, h.Create)
	rg.PUT("/:id", requireAuth, h.Update)
	rg.DELETE("/:id", requireAuth, h.Delete)
	rg.POST("/:id/comments", requireAuth, h.CreateComment)
}

// List: GET /api/reviews?game_id=1&user_id=2&skip=0&limit=100
func (h *ReviewHandler) List(c *gin.Context) {
	var q dto.ReviewListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	q.ListQuery = q.ListQuery.Normalize()

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	filter := repository.ReviewFilter{GameID: q.GameID, UserID: q.UserID}
	reviews, err := h.reviews.ListReviews(ctx, filter, q.Skip, q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToReviewResponses(reviews))
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	review, err := h.reviews.GetReviewByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortUnauthorized(c)
		return
	}

	var in dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	review, err := h.reviews.CreateReview(ctx, user, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortUnauthorized(c)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in dto.UpdateReviewDTO
	if !bindPatch(c, &in) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	review, err := h.reviews.UpdateReview(ctx, id, user, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortUnauthorized(c)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.reviews.DeleteReview(ctx, id, user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

func (h *ReviewHandler) Comments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	q = q.Normalize()

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	comments, err := h.comments.GetReviewComments(ctx, id, q.Skip, q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToCommentResponses(comments))
}

func (h *ReviewHandler) CreateComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortUnauthorized(c)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	comment, err := h.comments.CreateComment(ctx, user, id, in.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment))
}
