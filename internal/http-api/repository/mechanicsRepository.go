package repository

import (
	"context"
	"errors"
	"fmt"

	"gameshelf/internal/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MechanicRepo struct {
	db *gorm.DB
}

func NewMechanicRepo(db *gorm.DB) *MechanicRepo {
	return &MechanicRepo{db: db}
}

func (r *MechanicRepo) GetAll(ctx context.Context) ([]models.Mechanic, error) {
	var list []models.Mechanic
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get mechanics: %w", err)
	}
	return list, nil
}

func (r *MechanicRepo) Create(ctx context.Context, m *models.Mechanic) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create mechanic: %w", err)
	}
	return nil
}

// FindOrCreate resolves a mechanic by name, creating it when absent. The
// lookup is case-insensitive so "Worker placement" reuses "Worker Placement".
// The create goes through ON CONFLICT DO NOTHING against the unique name
// index, so two concurrent imports resolving the same new name converge on
// one row instead of racing check-then-act.
func (r *MechanicRepo) FindOrCreate(ctx context.Context, name string) (*models.Mechanic, error) {
	var existing models.Mechanic
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find mechanic: %w", err)
	}

	m := models.Mechanic{Name: name}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&m).Error
	if err != nil && !isUniqueViolation(err) {
		return nil, fmt.Errorf("create mechanic: %w", err)
	}
	if m.ID != 0 {
		return &m, nil
	}

	// conflict path: another import created the row first, read it back
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("reread mechanic after conflict: %w", err)
	}
	return &existing, nil
}

// GetGamesByMechanic returns games linked to the given mechanic id.
func (r *MechanicRepo) GetGamesByMechanic(ctx context.Context, mechanicID int64) ([]models.Game, error) {
	var list []models.Game
	if err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Joins("JOIN game_mechanics gm ON gm.game_id = games.id").
		Where("gm.mechanic_id = ?", mechanicID).
		Preload("Mechanics").
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get games by mechanic: %w", err)
	}
	return list, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
