package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"gameshelf/internal/http-api/dto"
	"gameshelf/internal/http-api/middleware"
	"gameshelf/internal/http-api/models"
	"gameshelf/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type MechanicHandler struct {
	svc service.MechanicService
}

func NewMechanicHandler(svc service.MechanicService) *MechanicHandler {
	return &MechanicHandler{svc: svc}
}

func (h *MechanicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/:mechanic_id/games", h.GetGames)
	rg.POST("/", middleware.RequireAdmin(), h.Create)
}

func (h *MechanicHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.MechanicResponse, 0, len(list))
	for _, m := range list {
		resp = append(resp, dto.MechanicFromModel(m))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *MechanicHandler) Create(c *gin.Context) {
	var in dto.CreateMechanicDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	m := models.Mechanic{Name: in.Name}
	if err := h.svc.Create(ctx, &m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.MechanicFromModel(m))
}

func (h *MechanicHandler) GetGames(c *gin.Context) {
	idStr := c.Param("mechanic_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	games, err := h.svc.GetGamesByMechanic(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.GameBasicResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, dto.FromModelToBasicResponse(g))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
