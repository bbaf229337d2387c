package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"gamereviews/internal/microservices/http-api/handler"
	"gamereviews/internal/microservices/http-api/middleware"
	"gamereviews/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validToken = "valid-token"

var alice = &models.User{ID: 1, Username: "alice", Email: "alice@example.com", IsActive: true}

type testAPI struct {
	router   *gin.Engine
	auth     *MockAuthService
	users    *MockUserService
	games    *MockGameService
	reviews  *MockReviewService
	comments *MockCommentService
	stats    *MockStatsService
}

// --- SETUP ---

func setupAPI() *testAPI {
	gin.SetMode(gin.TestMode)

	api := &testAPI{
		router:   gin.New(),
		auth:     new(MockAuthService),
		users:    new(MockUserService),
		games:    new(MockGameService),
		reviews:  new(MockReviewService),
		comments: new(MockCommentService),
		stats:    new(MockStatsService),
	}
	api.auth.On("CurrentUser", mock.Anything, validToken).Return(alice, nil).Maybe()

	timeout := time.Second
	requireAuth := middleware.AuthMiddleware(api.auth)
	limiter := middleware.RateLimit(middleware.NewIPRateLimiter(1000, 1000))

	r := api.router.Group("/api")
	handler.NewAuthHandler(api.auth, timeout).RegisterRoutes(r.Group("/auth"), limiter)
	handler.NewUserHandler(api.users, timeout).RegisterRoutes(r.Group("/users"), requireAuth)
	handler.NewGameHandler(api.games, api.reviews, api.stats, timeout).RegisterRoutes(r.Group("/games"), requireAuth)
	handler.NewReviewHandler(api.reviews, api.comments, timeout).RegisterRoutes(r.Group("/reviews"), requireAuth)
	handler.NewCommentHandler(api.comments, timeout).RegisterRoutes(r.Group("/comments"), requireAuth)

	return api
}

func (api *testAPI) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			reader = bytes.NewBufferString(s)
		} else {
			b, _ := json.Marshal(body)
			reader = bytes.NewBuffer(b)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}

	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

type fieldErrors struct {
	Detail []handler.FieldError `json:"detail"`
}

func decodeFieldErrors(t *testing.T, w *httptest.ResponseRecorder) []handler.FieldError {
	t.Helper()
	var body fieldErrors
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }

func assertStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
