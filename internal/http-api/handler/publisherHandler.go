package handler

import (
	"context"
	"net/http"
	"time"

	"gameshelf/internal/http-api/dto"
	"gameshelf/internal/http-api/middleware"
	"gameshelf/internal/http-api/models"
	"gameshelf/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type PublisherHandler struct {
	svc service.PublisherService
}

func NewPublisherHandler(svc service.PublisherService) *PublisherHandler {
	return &PublisherHandler{svc: svc}
}

func (h *PublisherHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.POST("/", middleware.RequireAdmin(), h.Create)
}

func (h *PublisherHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.PublisherResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, dto.PublisherFromModel(p))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *PublisherHandler) Create(c *gin.Context) {
	var in dto.CreatePublisherDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	p := models.Publisher{Name: in.Name}
	if err := h.svc.Create(ctx, &p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.PublisherFromModel(p))
}
