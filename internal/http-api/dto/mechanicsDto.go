package dto

import "gameshelf/internal/http-api/models"

// CreateMechanicDTO for POST /api/mechanics
type CreateMechanicDTO struct {
	Name string `json:"name" binding:"required"`
}

type MechanicResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func MechanicFromModel(m models.Mechanic) MechanicResponse {
	return MechanicResponse{
		ID:   m.ID,
		Name: m.Name,
	}
}

// CreatePublisherDTO for POST /api/publishers
type CreatePublisherDTO struct {
	Name string `json:"name" binding:"required"`
}

type PublisherResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func PublisherFromModel(p models.Publisher) PublisherResponse {
	return PublisherResponse{
		ID:   p.ID,
		Name: p.Name,
	}
}
