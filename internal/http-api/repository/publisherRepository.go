package repository

import (
	"context"
	"errors"
	"fmt"

	"gameshelf/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PublisherRepo struct {
	db *gorm.DB
}

func NewPublisherRepo(db *gorm.DB) *PublisherRepo {
	return &PublisherRepo{db: db}
}

func (r *PublisherRepo) GetAll(ctx context.Context) ([]models.Publisher, error) {
	var list []models.Publisher
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get publishers: %w", err)
	}
	return list, nil
}

func (r *PublisherRepo) Create(ctx context.Context, p *models.Publisher) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return nil
}

// FindOrCreate resolves a publisher by name, creating it when absent. Same
// on-conflict discipline as MechanicRepo.FindOrCreate.
func (r *PublisherRepo) FindOrCreate(ctx context.Context, name string) (*models.Publisher, error) {
	var existing models.Publisher
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find publisher: %w", err)
	}

	p := models.Publisher{Name: name}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&p).Error
	if err != nil && !isUniqueViolation(err) {
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	if p.ID != 0 {
		return &p, nil
	}

	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("reread publisher after conflict: %w", err)
	}
	return &existing, nil
}
