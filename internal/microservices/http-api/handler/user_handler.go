package handler

import (
	"net/http"
	"time"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/middleware"
	"gamereviews/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc     service.UserService
	timeout time.Duration
}

func NewUserHandler(svc service.UserService, timeout time.Duration) *UserHandler {
	return &UserHandler{svc: svc, timeout: timeout}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/me", requireAuth, h.Me)
	rg.DELETE("/me", requireAuth, h.DeleteMe)
	rg.GET("/:id", h.Get)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortUnauthorized(c)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

func (h *UserHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	q = q.Normalize()

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	users, err := h.svc.List(ctx, q.Skip, q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToUserResponses(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, err := h.svc.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// DeleteMe removes the caller's account with everything they wrote.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortUnauthorized(c)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.svc.Delete(ctx, user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
