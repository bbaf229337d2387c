package dto

import (
	"gamereviews/internal/microservices/http-api/models"
	"time"
)

// CreateGameDTO used for POST /api/games
type CreateGameDTO struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Genre       *string `json:"genre,omitempty" binding:"omitempty,max=100"`
	ReleaseYear *int    `json:"release_year,omitempty"`
	Developer   *string `json:"developer,omitempty" binding:"omitempty,max=100"`
}

// UpdateGameDTO used for PUT /api/games/:id (partial updates allowed)
type UpdateGameDTO struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Genre       *string `json:"genre,omitempty" binding:"omitempty,max=100"`
	ReleaseYear *int    `json:"release_year,omitempty"`
	Developer   *string `json:"developer,omitempty" binding:"omitempty,max=100"`
}

// GameResponse DTO for responses
type GameResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Genre       *string   `json:"genre"`
	ReleaseYear *int      `json:"release_year"`
	Developer   *string   `json:"developer"`
	CreatedAt   time.Time `json:"created_at"`
}

// GameStatsResponse for GET /api/games/:id/stats
type GameStatsResponse struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// Converters
func (d CreateGameDTO) ToModel() models.Game {
	return models.Game{
		Title:       d.Title,
		Description: d.Description,
		Genre:       d.Genre,
		ReleaseYear: d.ReleaseYear,
		Developer:   d.Developer,
	}
}

// ApplyTo overwrites only the fields present in the payload.
func (d UpdateGameDTO) ApplyTo(g *models.Game) {
	if d.Title != nil {
		g.Title = *d.Title
	}
	if d.Description != nil {
		g.Description = d.Description
	}
	if d.Genre != nil {
		g.Genre = d.Genre
	}
	if d.ReleaseYear != nil {
		g.ReleaseYear = d.ReleaseYear
	}
	if d.Developer != nil {
		g.Developer = d.Developer
	}
}

// IsEmpty reports whether the payload carries no field at all.
func (d UpdateGameDTO) IsEmpty() bool {
	return d.Title == nil && d.Description == nil && d.Genre == nil && d.ReleaseYear == nil && d.Developer == nil
}

func FromModelToGameResponse(g models.Game) GameResponse {
	return GameResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Genre:       g.Genre,
		ReleaseYear: g.ReleaseYear,
		Developer:   g.Developer,
		CreatedAt:   g.CreatedAt,
	}
}

func FromModelsToGameResponses(games []models.Game) []GameResponse {
	resp := make([]GameResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, FromModelToGameResponse(g))
	}
	return resp
}
