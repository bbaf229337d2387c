package repository

import (
	"context"
	"fmt"
	"strings"

	"gamereviews/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// GameRepository is the game side of the persistence gateway.
type GameRepository interface {
	List(ctx context.Context, skip, limit int, search string) ([]models.Game, error)
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	Create(ctx context.Context, g *models.Game) error
	Save(ctx context.Context, g *models.Game) error
	Delete(ctx context.Context, id int64) error
}

type GameRepo struct {
	db *gorm.DB
}

func NewGameRepo(db *gorm.DB) *GameRepo {
	return &GameRepo{db: db}
}

// List returns games in primary key order. A non-empty search term is matched
// case-insensitively as a substring of title, genre or developer.
// Example: "rpg" -> WHERE LOWER(title) LIKE '%rpg%' OR LOWER(genre) LIKE '%rpg%' OR LOWER(developer) LIKE '%rpg%'
func (r *GameRepo) List(ctx context.Context, skip, limit int, search string) ([]models.Game, error) {
	var list []models.Game
	db := r.db.WithContext(ctx)

	if term := strings.TrimSpace(search); term != "" {
		p := "%" + escapeLike(strings.ToLower(term)) + "%"
		// COALESCE keeps NULL genre/developer from dropping the whole OR
		db = db.Where(
			"LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(genre,'')) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(developer,'')) LIKE ? ESCAPE '\\'",
			p, p, p,
		)
	}

	if err := db.Order("id ASC").Offset(skip).Limit(limit).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return list, nil
}

func (r *GameRepo) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	var g models.Game
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GameRepo) Create(ctx context.Context, g *models.Game) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	// GORM will populate g.ID and g.CreatedAt
	return nil
}

func (r *GameRepo) Save(ctx context.Context, g *models.Game) error {
	if err := r.db.WithContext(ctx).Save(g).Error; err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	return nil
}

// Delete removes the game, its reviews and their comments in one transaction.
func (r *GameRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := tx.Model(&models.Review{}).Select("id").Where("game_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviews).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete game comments: %w", err)
		}
		if err := tx.Where("game_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete game reviews: %w", err)
		}

		result := tx.Delete(&models.Game{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete game: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
