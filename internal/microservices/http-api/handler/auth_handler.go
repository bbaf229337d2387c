package handler

import (
	"net/http"
	"time"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	timeout     time.Duration
}

func NewAuthHandler(authService service.AuthService, timeout time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, timeout: timeout}
}

// RegisterRoutes mounts /register and /login behind the given limiter.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, limiter gin.HandlerFunc) {
	rg.POST("/register", limiter, h.Register)
	rg.POST("/login", limiter, h.Login)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, err := h.authService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// Login accepts the OAuth2 password form (username carries the email) or the same fields as JSON.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	accessToken, _, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.authService.TokenTTL().Seconds()),
	})
}
