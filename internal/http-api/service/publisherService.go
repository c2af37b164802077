package service

import (
	"context"
	"errors"
	"strings"

	"gameshelf/internal/http-api/models"
	"gameshelf/internal/http-api/repository"
)

type PublisherService interface {
	GetAll(ctx context.Context) ([]models.Publisher, error)
	Create(ctx context.Context, p *models.Publisher) error
}

type publisherService struct {
	repo *repository.PublisherRepo
}

func NewPublisherService(r *repository.PublisherRepo) PublisherService {
	return &publisherService{repo: r}
}

func (s *publisherService) GetAll(ctx context.Context) ([]models.Publisher, error) {
	return s.repo.GetAll(ctx)
}

func (s *publisherService) Create(ctx context.Context, p *models.Publisher) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("publisher name required")
	}
	p.Name = strings.TrimSpace(p.Name)
	return s.repo.Create(ctx, p)
}
