package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"gameshelf/internal/cache"
	"gameshelf/internal/http-api/models"
	"gameshelf/internal/http-api/repository"

	"github.com/google/uuid"
)

// GameCachePrefix scopes every cached game listing; invalidated as a whole
// after any write, including imports.
const GameCachePrefix = "games:"

type GameService interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Game, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	Create(ctx context.Context, g *models.Game, mechanicIDs []int64) error
	Update(ctx context.Context, id int64, apply func(*models.Game), mechanicIDs []int64) (*models.Game, error)
	Delete(ctx context.Context, id int64) error

	SearchByTitle(ctx context.Context, title string) ([]models.Game, error)
	GetMechanicsByGame(ctx context.Context, gameID int64) ([]models.Mechanic, error)
}

type gameService struct {
	repo   *repository.GameRepo
	cache  *cache.Cache
	logger *slog.Logger
}

func NewGameService(r *repository.GameRepo, c *cache.Cache, logger *slog.Logger) GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &gameService{repo: r, cache: c, logger: logger}
}

type cachedGamePage struct {
	Games []models.Game `json:"games"`
	Total int64         `json:"total"`
}

func (s *gameService) GetAll(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	key := fmt.Sprintf("%slist:%d:%d", GameCachePrefix, page, pageSize)

	var cached cachedGamePage
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached.Games, cached.Total, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("cache read failed", "key", key, "error", err)
	}

	list, total, err := s.repo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	if err := s.cache.Set(ctx, key, cachedGamePage{Games: list, Total: total}); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return list, total, nil
}

func (s *gameService) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *gameService) Create(ctx context.Context, g *models.Game, mechanicIDs []int64) error {
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("title is required")
	}
	g.Title = strings.TrimSpace(g.Title)

	// ensure slug exists, generate from title if missing
	if g.Slug == nil || strings.TrimSpace(*g.Slug) == "" {
		slug := fmt.Sprintf("%s-%s", generateSlug(g.Title), uuid.New().String()[:8])
		g.Slug = &slug
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return err
	}
	if len(mechanicIDs) > 0 {
		if err := s.repo.ReplaceMechanics(ctx, g.ID, mechanicIDs); err != nil {
			return err
		}
	}
	s.invalidate(ctx)
	return nil
}

// Update loads the game, lets the caller mutate it through apply, and persists
// the result. mechanicIDs of nil leaves links untouched; an empty non-nil
// slice clears them.
func (s *gameService) Update(ctx context.Context, id int64, apply func(*models.Game), mechanicIDs []int64) (*models.Game, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(existing)
	if strings.TrimSpace(existing.Title) == "" {
		return nil, errors.New("title is required")
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, err
	}
	if mechanicIDs != nil {
		if err := s.repo.ReplaceMechanics(ctx, id, mechanicIDs); err != nil {
			return nil, err
		}
	}
	s.invalidate(ctx)
	return s.repo.GetByID(ctx, id)
}

func (s *gameService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// SearchByTitle returns games that match title (case-insensitive, partial)
func (s *gameService) SearchByTitle(ctx context.Context, title string) ([]models.Game, error) {
	return s.repo.SearchByTitle(ctx, title)
}

func (s *gameService) GetMechanicsByGame(ctx context.Context, gameID int64) ([]models.Mechanic, error) {
	return s.repo.GetMechanicsByGame(ctx, gameID)
}

func (s *gameService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidatePrefix(ctx, GameCachePrefix); err != nil {
		s.logger.Warn("cache invalidation failed", "error", err)
	}
}

/* helper: generate slug-like string from title */
var nonAlnum = regexp.MustCompile(`[^a-z0-9\-]+`)

func generateSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonAlnum.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "--", "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "game"
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}
