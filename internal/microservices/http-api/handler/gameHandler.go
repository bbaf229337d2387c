package handler

import (
	"net/http"
	"time"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/repository"
	"gamereviews/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	games   service.GameService
	reviews service.ReviewService
	stats   service.StatsService
	timeout time.Duration
}

func NewGameHandler(games service.GameService, reviews service.ReviewService, stats service.StatsService, timeout time.Duration) *GameHandler {
	return &GameHandler{games: games, reviews: reviews, stats: stats, timeout: timeout}
}

func (h *GameHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	// Public routes
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/reviews", h.Reviews)
	rg.GET("/:id/stats", h.Stats)

	// Any authenticated user
	rg.POST("", requireAuth, h.Create)
	rg.PUT("/:id", requireAuth, h.Update)
	rg.DELETE("/:id", requireAuth, h.Delete)
}

// List: GET /api/games?skip=0&limit=100&search=rpg
func (h *GameHandler) List(c *gin.Context) {
	var q dto.GameListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	q.ListQuery = q.ListQuery.Normalize()

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	list, err := h.games.List(ctx, q.Skip, q.Limit, q.Search)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToGameResponses(list))
}

func (h *GameHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	g, err := h.games.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToGameResponse(*g))
}

func (h *GameHandler) Create(c *gin.Context) {
	var in dto.CreateGameDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	model := in.ToModel()

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.games.Create(ctx, &model); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToGameResponse(model))
}

// Update merges the supplied fields, an empty body returns the game unchanged.
func (h *GameHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in dto.UpdateGameDTO
	if !bindPatch(c, &in) {
		return
	}

	if in.IsEmpty() {
		h.Get(c)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	updated, err := h.games.Update(ctx, id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToGameResponse(*updated))
}

func (h *GameHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.games.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
}

// Reviews lists the reviews of one game; an unknown game yields an empty list.
func (h *GameHandler) Reviews(c *gin.Context) {
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

	reviews, err := h.reviews.ListReviews(ctx, repository.ReviewFilter{GameID: &id}, q.Skip, q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToReviewResponses(reviews))
}

func (h *GameHandler) Stats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	stats, err := h.stats.GameStats(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
