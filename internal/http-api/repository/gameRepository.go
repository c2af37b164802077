package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gameshelf/internal/http-api/models"

	"gorm.io/gorm"
)

type GameRepo struct {
	db *gorm.DB
}

func NewGameRepo(db *gorm.DB) *GameRepo {
	return &GameRepo{db: db}
}

func (r *GameRepo) GetAll(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	var list []models.Game
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Game{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).
		Preload("Mechanics").
		Preload("Publisher").
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *GameRepo) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	var g models.Game
	if err := r.db.WithContext(ctx).Preload("Mechanics").Preload("Publisher").First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// FindBySourceURL looks a game up by its external source URL, the import
// pipeline's upsert key. Returns (nil, nil) when absent.
func (r *GameRepo) FindBySourceURL(ctx context.Context, sourceURL string) (*models.Game, error) {
	var g models.Game
	err := r.db.WithContext(ctx).Where("source_url = ?", sourceURL).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find game by source url: %w", err)
	}
	return &g, nil
}

func (r *GameRepo) Create(ctx context.Context, g *models.Game) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

func (r *GameRepo) Save(ctx context.Context, g *models.Game) error {
	if err := r.db.WithContext(ctx).Omit("Mechanics", "Publisher").Save(g).Error; err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	return nil
}

func (r *GameRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Game{}, id).Error; err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// SearchByTitle performs case-insensitive partial match on title and slug.
// Splits query into tokens and requires each token to appear in at least one
// of the fields.
func (r *GameRepo) SearchByTitle(ctx context.Context, title string) ([]models.Game, error) {
	var list []models.Game
	tokens := strings.Fields(title)
	db := r.db.WithContext(ctx)

	if len(tokens) == 0 {
		return list, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*2)
	for _, t := range tokens {
		p := "%" + t + "%"
		clauses = append(clauses, "(title ILIKE ? OR COALESCE(slug,'') ILIKE ?)")
		args = append(args, p, p)
	}

	where := strings.Join(clauses, " AND ")
	if err := db.Where(where, args...).
		Preload("Mechanics").
		Preload("Publisher").
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search games by title: %w", err)
	}
	return list, nil
}

// ReplaceMechanics swaps the game's mechanic links for the given set,
// removing any prior linkage.
func (r *GameRepo) ReplaceMechanics(ctx context.Context, gameID int64, mechanicIDs []int64) error {
	tx := r.db.WithContext(ctx).Begin()
	var g models.Game
	if err := tx.First(&g, gameID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("game not found: %w", err)
	}
	mechanics := make([]models.Mechanic, 0, len(mechanicIDs))
	for _, id := range mechanicIDs {
		mechanics = append(mechanics, models.Mechanic{ID: id})
	}
	if err := tx.Model(&g).Association("Mechanics").Replace(&mechanics); err != nil {
		tx.Rollback()
		return fmt.Errorf("replace mechanics: %w", err)
	}
	return tx.Commit().Error
}

func (r *GameRepo) GetMechanicsByGame(ctx context.Context, gameID int64) ([]models.Mechanic, error) {
	var g models.Game
	if err := r.db.WithContext(ctx).Preload("Mechanics").First(&g, gameID).Error; err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	return g.Mechanics, nil
}
