package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gameshelf/internal/http-api/dto"
	"gameshelf/internal/http-api/middleware"
	"gameshelf/internal/http-api/service"
	"gameshelf/internal/importer"

	"github.com/gin-gonic/gin"
)

// importTimeout bounds one full scrape + extract + persist round trip.
const importTimeout = 2 * time.Minute

// CatalogCache is the slice of the cache the import path needs: a successful
// import writes through the repository layer, so cached game listings must be
// dropped here. *cache.Cache satisfies it.
type CatalogCache interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}

type ImportHandler struct {
	pipeline *importer.Pipeline
	cache    CatalogCache
	logger   *slog.Logger
}

func NewImportHandler(pipeline *importer.Pipeline, cache CatalogCache, logger *slog.Logger) *ImportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportHandler{pipeline: pipeline, cache: cache, logger: logger}
}

func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/import", middleware.RequireAdmin(), h.Import)
}

// Import handles POST /api/games/import: scrape the given catalog URL,
// extract structured details, and upsert the game by source URL.
func (h *ImportHandler) Import(c *gin.Context) {
	var in dto.ImportGameDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.ImportErrorDTO{Success: false, Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), importTimeout)
	defer cancel()

	game, err := h.pipeline.Run(ctx, in.ToRequest())
	if err != nil {
		status := importer.HTTPStatus(err)
		h.logger.Warn("import failed",
			"url", in.URL,
			"status", status,
			"error", err,
		)
		c.JSON(status, dto.ImportErrorDTO{Success: false, Error: err.Error()})
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidatePrefix(ctx, service.GameCachePrefix); err != nil {
			h.logger.Warn("cache invalidation failed after import", "error", err)
		}
	}

	c.JSON(http.StatusOK, dto.ImportResultDTO{
		Success: true,
		Game:    dto.FromModelToResponse(*game),
	})
}
