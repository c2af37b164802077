package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gameshelf/internal/extract"
	"gameshelf/internal/http-api/models"
	"gameshelf/internal/scrape"

	"github.com/google/uuid"
)

// Request is an accepted import trigger. Immutable once accepted.
type Request struct {
	URL           string
	IsComingSoon  bool
	IsForSale     bool
	SalePrice     *float64
	SaleCondition *string
	IsExpansion   bool
	ParentGameID  *int64
	LocationRoom  *string
	LocationShelf *string
}

// Scraper fetches a page rendering from the external scrape service.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*scrape.Result, error)
}

// Extractor turns page markdown plus ranked image candidates into a typed
// candidate record. The concrete prompt/schema live behind this interface so
// the pipeline can be tested with a fake returning canned records.
type Extractor interface {
	Extract(ctx context.Context, markdown string, imageCandidates []string) (*extract.GameDetails, error)
}

// Store is the persistence surface the pipeline writes through. All mutation
// goes through find-or-create or upsert-by-key, never blind inserts.
type Store interface {
	// FindGameBySourceURL returns (nil, nil) when no record exists.
	FindGameBySourceURL(ctx context.Context, sourceURL string) (*models.Game, error)
	CreateGame(ctx context.Context, g *models.Game) error
	SaveGame(ctx context.Context, g *models.Game) error
	ReplaceMechanics(ctx context.Context, gameID int64, mechanicIDs []int64) error
	FindOrCreateMechanic(ctx context.Context, name string) (*models.Mechanic, error)
	FindOrCreatePublisher(ctx context.Context, name string) (*models.Publisher, error)
	GetGame(ctx context.Context, id int64) (*models.Game, error)
}

// Pipeline chains the import stages: guardrail validation, scrape, image
// candidate extraction, content-match guardrail, structured extraction,
// entity resolution, image sanitization, upsert. Control flows strictly
// forward; any stage failure short-circuits with a typed error.
type Pipeline struct {
	scraper   Scraper
	extractor Extractor
	store     Store
	logger    *slog.Logger
}

func NewPipeline(scraper Scraper, extractor Extractor, store Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{scraper: scraper, extractor: extractor, store: store, logger: logger}
}

// Run executes one import to completion. Re-running with the same source URL
// updates the existing record instead of creating a duplicate.
func (p *Pipeline) Run(ctx context.Context, req Request) (*models.Game, error) {
	if err := ValidateSourceURL(req.URL); err != nil {
		return nil, err
	}

	page, err := p.scraper.Scrape(ctx, req.URL)
	if err != nil {
		return nil, Wrap(ErrScrapeUnavailable, "scrape", req.URL, err)
	}
	if page == nil || strings.TrimSpace(page.Markdown) == "" {
		return nil, Wrap(ErrNoContent, "scrape", "empty body for "+req.URL, nil)
	}

	candidates := ExtractImageCandidates(page.RawHTML)

	if err := VerifyContentMatch(req.URL, page.Markdown); err != nil {
		return nil, err
	}

	candidateURLs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		candidateURLs = append(candidateURLs, c.URL)
	}
	details, err := p.extractor.Extract(ctx, page.Markdown, candidateURLs)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrBusy):
			return nil, Wrap(ErrUpstreamBusy, "extract", "", err)
		case errors.Is(err, extract.ErrNoTitle):
			return nil, Wrap(ErrNoTitleFound, "extract", "", err)
		default:
			return nil, Wrap(ErrExtractionFailed, "extract", "", err)
		}
	}
	details.Normalize()
	if details.Title == "" {
		return nil, Wrap(ErrNoTitleFound, "extract", "", nil)
	}

	mechanicIDs, err := p.resolveMechanics(ctx, details.Mechanics)
	if err != nil {
		return nil, Wrap(ErrPersistence, "resolve mechanics", "", err)
	}
	var publisherID *int64
	if details.Publisher != "" {
		pub, err := p.store.FindOrCreatePublisher(ctx, details.Publisher)
		if err != nil {
			return nil, Wrap(ErrPersistence, "resolve publisher", details.Publisher, err)
		}
		publisherID = &pub.ID
	}

	mainImage := SanitizeImageURL(details.MainImage)
	gallery := FilterGalleryImages(details.GameplayImages, mainImage)
	if mainImage == "" {
		mainImage, gallery = FallbackImages(candidates)
	}

	sourceURL := req.URL
	if details.BGGURL != "" && ValidateSourceURL(details.BGGURL) == nil {
		sourceURL = details.BGGURL
	}

	game, err := p.upsert(ctx, req, details, sourceURL, mainImage, gallery, publisherID)
	if err != nil {
		return nil, err
	}

	// record landed; linking is best-effort, partial failure is logged for
	// operator follow-up rather than rolled back
	if err := p.store.ReplaceMechanics(ctx, game.ID, mechanicIDs); err != nil {
		p.logger.Warn("mechanic linkage incomplete after import",
			"game_id", game.ID,
			"source_url", sourceURL,
			"error", err,
		)
	}

	full, err := p.store.GetGame(ctx, game.ID)
	if err != nil {
		p.logger.Warn("reload after import failed", "game_id", game.ID, "error", err)
		return game, nil
	}
	return full, nil
}

// resolveMechanics find-or-creates every mechanic, deduplicating names
// case-insensitively within the request before touching the store.
func (p *Pipeline) resolveMechanics(ctx context.Context, names []string) ([]int64, error) {
	seen := make(map[string]struct{}, len(names))
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		mechanic, err := p.store.FindOrCreateMechanic(ctx, strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("find or create mechanic %q: %w", name, err)
		}
		ids = append(ids, mechanic.ID)
	}
	return ids, nil
}

func (p *Pipeline) upsert(ctx context.Context, req Request, details *extract.GameDetails, sourceURL, mainImage string, gallery []string, publisherID *int64) (*models.Game, error) {
	existing, err := p.store.FindGameBySourceURL(ctx, sourceURL)
	if err != nil {
		return nil, Wrap(ErrPersistence, "upsert", "lookup by source url", err)
	}

	game := existing
	if game == nil {
		slug := makeSlug(details.Title)
		game = &models.Game{Slug: &slug}
	}

	game.Title = details.Title
	game.SourceURL = &sourceURL
	setOptional(&game.Description, details.Description)
	setOptional(&game.Difficulty, details.Difficulty)
	setOptional(&game.PlayTime, details.PlayTime)
	setOptional(&game.GameType, details.GameType)
	game.MinPlayers = &details.MinPlayers
	game.MaxPlayers = &details.MaxPlayers
	setOptional(&game.SuggestedAge, details.SuggestedAge)
	setOptional(&game.MainImage, mainImage)
	game.GameplayImage1 = nil
	game.GameplayImage2 = nil
	if len(gallery) > 0 {
		game.GameplayImage1 = &gallery[0]
	}
	if len(gallery) > 1 {
		game.GameplayImage2 = &gallery[1]
	}
	game.PublisherID = publisherID

	game.IsComingSoon = req.IsComingSoon
	game.IsForSale = req.IsForSale
	game.SalePrice = req.SalePrice
	game.SaleCondition = req.SaleCondition
	game.IsExpansion = req.IsExpansion
	game.ParentGameID = req.ParentGameID
	game.LocationRoom = req.LocationRoom
	game.LocationShelf = req.LocationShelf

	if existing == nil {
		if err := p.store.CreateGame(ctx, game); err != nil {
			return nil, Wrap(ErrPersistence, "upsert", "create game", err)
		}
		p.logger.Info("imported new game", "game_id", game.ID, "title", game.Title, "source_url", sourceURL)
		return game, nil
	}

	if err := p.store.SaveGame(ctx, game); err != nil {
		return nil, Wrap(ErrPersistence, "upsert", "update game", err)
	}
	p.logger.Info("updated game from re-import", "game_id", game.ID, "title", game.Title, "source_url", sourceURL)
	return game, nil
}

func setOptional(dst **string, value string) {
	if value == "" {
		*dst = nil
		return
	}
	*dst = &value
}

var slugStrip = []string{"'", "\"", ":", ",", ".", "!", "?", "&"}

func makeSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	for _, ch := range slugStrip {
		s = strings.ReplaceAll(s, ch, "")
	}
	s = strings.Join(strings.Fields(s), "-")
	if len(s) > 50 {
		s = s[:50]
	}
	if s == "" {
		s = "game"
	}
	// short uuid suffix to avoid collisions between editions sharing a title
	return s + "-" + uuid.New().String()[:8]
}
