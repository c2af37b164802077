package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gameshelf/internal/http-api/dto"
	"gameshelf/internal/http-api/handler"
	"gameshelf/internal/http-api/middleware"
	"gameshelf/internal/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- HELPER FUNCTIONS FOR POINTERS ---
func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }

// --- MOCK SERVICE ---

type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) GetAll(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameService) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) Create(ctx context.Context, g *models.Game, mechanicIDs []int64) error {
	args := m.Called(ctx, g, mechanicIDs)
	return args.Error(0)
}

func (m *MockGameService) Update(ctx context.Context, id int64, apply func(*models.Game), mechanicIDs []int64) (*models.Game, error) {
	args := m.Called(ctx, id, apply, mechanicIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameService) SearchByTitle(ctx context.Context, title string) ([]models.Game, error) {
	args := m.Called(ctx, title)
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockGameService) GetMechanicsByGame(ctx context.Context, gameID int64) ([]models.Mechanic, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).([]models.Mechanic), args.Error(1)
}

// --- SETUP ---

func mockAuthMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("username", "testuser")
		c.Set("role", role)
		c.Next()
	}
}

func setupRouterWithAuth(mockService *MockGameService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewGameHandler(mockService)

	rg := r.Group("/api/games")
	if role != "" {
		rg.Use(mockAuthMiddleware(role))
	}
	{
		rg.GET("", h.List)
		rg.GET("/search", h.SearchByTitle)
		rg.GET("/:game_id", h.Get)
		rg.GET("/:game_id/mechanics", h.GetMechanics)
		rg.POST("", middleware.RequireAdmin(), h.Create)
		rg.PUT("/:game_id", middleware.RequireAdmin(), h.Update)
		rg.DELETE("/:game_id", middleware.RequireAdmin(), h.Delete)
	}
	return r
}

func setupRouter(mockService *MockGameService) *gin.Engine {
	return setupRouterWithAuth(mockService, "user")
}

// --- TESTS ---

func TestGameHandler_List(t *testing.T) {
	mockService := new(MockGameService)
	r := setupRouter(mockService)

	expectedGames := []models.Game{
		{ID: 1, Title: "Wingspan", GameType: stringPtr("Strategy"), MinPlayers: intPtr(1), MaxPlayers: intPtr(5)},
		{ID: 2, Title: "Codenames", GameType: stringPtr("Party"), IsForSale: true},
	}
	expectedTotal := int64(42)

	t.Run("Success", func(t *testing.T) {
		mockService.On("GetAll", mock.Anything, 1, 20).Return(expectedGames, expectedTotal, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/games", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)

		data := response["data"].([]interface{})
		assert.Len(t, data, 2)

		item1 := data[0].(map[string]interface{})
		assert.Equal(t, "Wingspan", item1["title"])
		assert.Equal(t, "Strategy", item1["game_type"])

		pagination := response["pagination"].(map[string]interface{})
		assert.Equal(t, float64(42), pagination["total"])
		assert.Equal(t, float64(3), pagination["total_pages"])
	})

	t.Run("CustomPagination", func(t *testing.T) {
		mockService.On("GetAll", mock.Anything, 2, 10).Return([]models.Game{}, int64(0), nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/games?page=2&page_size=10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestGameHandler_Get(t *testing.T) {
	mockService := new(MockGameService)
	r := setupRouter(mockService)

	expectedGame := &models.Game{
		ID:         101,
		Title:      "Wingspan",
		Slug:       stringPtr("wingspan-a1b2c3d4"),
		Difficulty: stringPtr("2 - Medium Light"),
		SourceURL:  stringPtr("https://boardgamegeek.com/boardgame/266192/wingspan"),
		Mechanics:  []models.Mechanic{{ID: 1, Name: "Engine Building"}, {ID: 2, Name: "Card Drafting"}},
		Publisher:  &models.Publisher{ID: 1, Name: "Stonemaier Games"},
	}

	t.Run("Success", func(t *testing.T) {
		mockService.On("GetByID", mock.Anything, int64(101)).Return(expectedGame, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/games/101", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.GameResponse
		json.Unmarshal(w.Body.Bytes(), &response)

		assert.Equal(t, int64(101), response.ID)
		assert.Equal(t, "Wingspan", response.Title)
		assert.Equal(t, "wingspan-a1b2c3d4", *response.Slug)
		assert.Len(t, response.Mechanics, 2)
		assert.Equal(t, "Engine Building", response.Mechanics[0].Name)
		assert.Equal(t, "Stonemaier Games", response.Publisher.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.On("GetByID", mock.Anything, int64(999)).Return(nil, errors.New("not found")).Once()
		req, _ := http.NewRequest(http.MethodGet, "/api/games/999", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/games/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGameHandler_Create(t *testing.T) {
	mockService := new(MockGameService)
	r := setupRouterWithAuth(mockService, "admin")

	createDTO := dto.CreateGameDTO{
		Title:       "New Game",
		GameType:    stringPtr("Party"),
		MechanicIDs: []int64{1, 2},
	}

	t.Run("Success", func(t *testing.T) {
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(g *models.Game) bool {
			return g.Title == "New Game" && *g.GameType == "Party"
		}), []int64{1, 2}).Return(nil).Once()

		createdGame := &models.Game{ID: 1, Title: "New Game", GameType: stringPtr("Party")}
		mockService.On("GetByID", mock.Anything, mock.Anything).Return(createdGame, nil).Once()

		body, _ := json.Marshal(createDTO)
		req, _ := http.NewRequest(http.MethodPost, "/api/games", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		invalidDTO := dto.CreateGameDTO{GameType: stringPtr("Party")} // missing title
		body, _ := json.Marshal(invalidDTO)
		req, _ := http.NewRequest(http.MethodPost, "/api/games", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		userRouter := setupRouterWithAuth(new(MockGameService), "user")
		body, _ := json.Marshal(createDTO)
		req, _ := http.NewRequest(http.MethodPost, "/api/games", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		userRouter.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestGameHandler_Update(t *testing.T) {
	mockService := new(MockGameService)
	r := setupRouterWithAuth(mockService, "admin")

	updateDTO := dto.UpdateGameDTO{
		Title:     stringPtr("Updated Title"),
		IsForSale: func() *bool { b := true; return &b }(),
	}

	t.Run("Success", func(t *testing.T) {
		updated := &models.Game{ID: 10, Title: "Updated Title", IsForSale: true}
		mockService.On("Update", mock.Anything, int64(10), mock.Anything, []int64(nil)).Return(updated, nil).Once()

		body, _ := json.Marshal(updateDTO)
		req, _ := http.NewRequest(http.MethodPut, "/api/games/10", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.GameResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "Updated Title", response.Title)
		assert.True(t, response.IsForSale)
		mockService.AssertExpectations(t)
	})
}

func TestGameHandler_Delete(t *testing.T) {
	mockService := new(MockGameService)
	r := setupRouterWithAuth(mockService, "admin")

	t.Run("Success", func(t *testing.T) {
		mockService.On("Delete", mock.Anything, int64(55)).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/games/55", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestGameHandler_SearchByTitle(t *testing.T) {
	mockService := new(MockGameService)
	r := setupRouter(mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.On("SearchByTitle", mock.Anything, "wingspan").Return([]models.Game{{ID: 1, Title: "Wingspan"}}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/games/search?q=wingspan", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, float64(1), response["total"])
	})

	t.Run("MissingQuery", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/games/search", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
