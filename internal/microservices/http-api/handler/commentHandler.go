package handler

import (
	"net/http"
	"time"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/middleware"
	"gamereviews/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves /api/comments; creating and listing live under the review routes.
type CommentHandler struct {
	svc     service.CommentService
	timeout time.Duration
}

func NewCommentHandler(svc service.CommentService, timeout time.Duration) *CommentHandler {
	return &CommentHandler{svc: svc, timeout: timeout}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.PUT("/:id", requireAuth, h.Update)
	rg.DELETE("/:id", requireAuth, h.Delete)
}

func (h *CommentHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortUnauthorized(c)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	comment, err := h.svc.UpdateComment(ctx, id, user, in.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
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

	if err := h.svc.DeleteComment(ctx, id, user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
