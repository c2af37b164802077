package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gameshelf/internal/http-api/dto"
	"gameshelf/internal/http-api/middleware"
	"gameshelf/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	svc service.GameService
}

func NewGameHandler(svc service.GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

func (h *GameHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public routes (any authenticated user)
	rg.GET("/", h.List)
	rg.GET("/search", h.SearchByTitle)
	rg.GET("/:game_id", h.Get)
	rg.GET("/:game_id/mechanics", h.GetMechanics)

	// Admin-only routes
	rg.POST("/", middleware.RequireAdmin(), h.Create)
	rg.PUT("/:game_id", middleware.RequireAdmin(), h.Update)
	rg.DELETE("/:game_id", middleware.RequireAdmin(), h.Delete)
}

func (h *GameHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Parse pagination parameters
	page := 1
	pageSize := 20

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}

	list, total, err := h.svc.GetAll(ctx, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Use basic response with only essential fields
	resp := make([]dto.GameBasicResponse, 0, len(list))
	for _, g := range list {
		resp = append(resp, dto.FromModelToBasicResponse(g))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

func (h *GameHandler) Get(c *gin.Context) {
	idStr := c.Param("game_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	g, err := h.svc.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToResponse(*g))
}

func (h *GameHandler) GetMechanics(c *gin.Context) {
	idStr := c.Param("game_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	mechanics, err := h.svc.GetMechanicsByGame(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	resp := make([]dto.MechanicResponse, 0, len(mechanics))
	for _, m := range mechanics {
		resp = append(resp, dto.MechanicFromModel(m))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *GameHandler) Create(c *gin.Context) {
	var in dto.CreateGameDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	model := in.ToModel()
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Create(ctx, &model, in.MechanicIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Fetch the game with links to return complete data
	created, err := h.svc.GetByID(ctx, model.ID)
	if err != nil {
		c.JSON(http.StatusCreated, dto.FromModelToResponse(model))
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToResponse(*created))
}

func (h *GameHandler) Update(c *gin.Context) {
	idStr := c.Param("game_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateGameDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.svc.Update(ctx, id, in.ApplyTo, in.MechanicIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToResponse(*updated))
}

func (h *GameHandler) Delete(c *gin.Context) {
	idStr := c.Param("game_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) SearchByTitle(c *gin.Context) {
	// accept either ?q=... or ?title=... for compatibility
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		q = strings.TrimSpace(c.Query("title"))
	}
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q or title query parameter is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.SearchByTitle(ctx, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.GameBasicResponse, 0, len(list))
	for _, g := range list {
		resp = append(resp, dto.FromModelToBasicResponse(g))
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  resp,
		"total": len(resp),
	})
}
