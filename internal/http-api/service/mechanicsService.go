package service

import (
	"context"
	"errors"
	"strings"

	"gameshelf/internal/http-api/models"
	"gameshelf/internal/http-api/repository"
)

type MechanicService interface {
	GetAll(ctx context.Context) ([]models.Mechanic, error)
	Create(ctx context.Context, m *models.Mechanic) error
	GetGamesByMechanic(ctx context.Context, mechanicID int64) ([]models.Game, error)
}

type mechanicService struct {
	repo *repository.MechanicRepo
}

func NewMechanicService(r *repository.MechanicRepo) MechanicService {
	return &mechanicService{repo: r}
}

func (s *mechanicService) GetAll(ctx context.Context) ([]models.Mechanic, error) {
	return s.repo.GetAll(ctx)
}

func (s *mechanicService) Create(ctx context.Context, m *models.Mechanic) error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("mechanic name required")
	}
	m.Name = strings.TrimSpace(m.Name)
	return s.repo.Create(ctx, m)
}

func (s *mechanicService) GetGamesByMechanic(ctx context.Context, mechanicID int64) ([]models.Game, error) {
	return s.repo.GetGamesByMechanic(ctx, mechanicID)
}
