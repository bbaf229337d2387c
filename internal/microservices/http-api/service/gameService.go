package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/models"
	"gamereviews/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type GameService interface {
	List(ctx context.Context, skip, limit int, search string) ([]models.Game, error)
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	Create(ctx context.Context, g *models.Game) error
	Update(ctx context.Context, id int64, patch dto.UpdateGameDTO) (*models.Game, error)
	Delete(ctx context.Context, id int64) error
}

type gameService struct {
	repo   repository.GameRepository
	cache  StatsCache
	logger *slog.Logger
}

func NewGameService(repo repository.GameRepository, cache StatsCache, logger *slog.Logger) GameService {
	return &gameService{repo: repo, cache: cache, logger: logger}
}

// List returns a window of games, optionally filtered by a search term.
func (s *gameService) List(ctx context.Context, skip, limit int, search string) ([]models.Game, error) {
	q := dto.ListQuery{Skip: skip, Limit: limit}.Normalize()
	return s.repo.List(ctx, q.Skip, q.Limit, search)
}

func (s *gameService) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Game")
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	return g, nil
}

func (s *gameService) Create(ctx context.Context, g *models.Game) error {
	g.Title = strings.TrimSpace(g.Title)
	if err := validateGame(g); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return err
	}
	s.logger.Info("game created", slog.Int64("game_id", g.ID))
	return nil
}

// Update merges the fields present in patch into the stored game. Any
// authenticated user may edit any game.
func (s *gameService) Update(ctx context.Context, id int64, patch dto.UpdateGameDTO) (*models.Game, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}
	patch.ApplyTo(existing)
	if err := validateGame(existing); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the game along with its reviews and their comments.
func (s *gameService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Game")
		}
		return err
	}

	invalidateStats(ctx, s.cache, s.logger, id)
	s.logger.Info("game deleted", slog.Int64("game_id", id))
	return nil
}

func validateGame(g *models.Game) error {
	return firstError(
		validateTitle(g.Title),
		validateReleaseYear(g.ReleaseYear),
		validateOptionalLength("genre", g.Genre, 100),
		validateOptionalLength("developer", g.Developer, 100),
	)
}
