package repository

import (
	"context"

	"gameshelf/internal/http-api/models"

	"gorm.io/gorm"
)

// ImportStore bundles the game, mechanic and publisher repositories behind
// the persistence surface the import pipeline writes through.
type ImportStore struct {
	games      *GameRepo
	mechanics  *MechanicRepo
	publishers *PublisherRepo
}

func NewImportStore(db *gorm.DB) *ImportStore {
	return &ImportStore{
		games:      NewGameRepo(db),
		mechanics:  NewMechanicRepo(db),
		publishers: NewPublisherRepo(db),
	}
}

func (s *ImportStore) FindGameBySourceURL(ctx context.Context, sourceURL string) (*models.Game, error) {
	return s.games.FindBySourceURL(ctx, sourceURL)
}

func (s *ImportStore) CreateGame(ctx context.Context, g *models.Game) error {
	return s.games.Create(ctx, g)
}

func (s *ImportStore) SaveGame(ctx context.Context, g *models.Game) error {
	return s.games.Save(ctx, g)
}

func (s *ImportStore) ReplaceMechanics(ctx context.Context, gameID int64, mechanicIDs []int64) error {
	return s.games.ReplaceMechanics(ctx, gameID, mechanicIDs)
}

func (s *ImportStore) FindOrCreateMechanic(ctx context.Context, name string) (*models.Mechanic, error) {
	return s.mechanics.FindOrCreate(ctx, name)
}

func (s *ImportStore) FindOrCreatePublisher(ctx context.Context, name string) (*models.Publisher, error) {
	return s.publishers.FindOrCreate(ctx, name)
}

func (s *ImportStore) GetGame(ctx context.Context, id int64) (*models.Game, error) {
	return s.games.GetByID(ctx, id)
}
