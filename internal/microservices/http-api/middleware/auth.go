package middleware

import (
	"errors"
	"net/http"
	"strings"

	"gamereviews/internal/microservices/http-api/models"
	"gamereviews/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// AuthMiddleware resolves the bearer token of the request to a user and stores
// it in the gin context. Any failure aborts with 401.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token (format: "Bearer <token>")
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortUnauthorized(c)
			return
		}

		user, err := authService.CurrentUser(c.Request.Context(), tokenString)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthorized) {
				// store failure, not a bad token
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
				return
			}
			AbortUnauthorized(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// AbortUnauthorized writes the 401 challenge shared by every auth failure.
func AbortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
