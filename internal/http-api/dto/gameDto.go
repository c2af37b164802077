package dto

import (
	"gameshelf/internal/http-api/models"
	"time"
)

// CreateGameDTO used for POST /api/games
type CreateGameDTO struct {
	Slug          *string  `json:"slug,omitempty"` // optional client slug
	Title         string   `json:"title" binding:"required"`
	Description   *string  `json:"description,omitempty"`
	Difficulty    *string  `json:"difficulty,omitempty"`
	PlayTime      *string  `json:"play_time,omitempty"`
	GameType      *string  `json:"game_type,omitempty"`
	MinPlayers    *int     `json:"min_players,omitempty"`
	MaxPlayers    *int     `json:"max_players,omitempty"`
	SuggestedAge  *string  `json:"suggested_age,omitempty"`
	MainImage     *string  `json:"main_image,omitempty"`
	SourceURL     *string  `json:"source_url,omitempty"`
	PublisherID   *int64   `json:"publisher_id,omitempty"`
	IsComingSoon  *bool    `json:"is_coming_soon,omitempty"`
	IsForSale     *bool    `json:"is_for_sale,omitempty"`
	SalePrice     *float64 `json:"sale_price,omitempty"`
	SaleCondition *string  `json:"sale_condition,omitempty"`
	IsExpansion   *bool    `json:"is_expansion,omitempty"`
	ParentGameID  *int64   `json:"parent_game_id,omitempty"`
	LocationRoom  *string  `json:"location_room,omitempty"`
	LocationShelf *string  `json:"location_shelf,omitempty"`
	MechanicIDs   []int64  `json:"mechanic_ids,omitempty"`
}

// UpdateGameDTO used for PUT /api/games/:id. Partial updates: every field is
// optional and only non-nil fields are applied, never a dynamically-keyed map.
type UpdateGameDTO struct {
	Slug           *string  `json:"slug,omitempty"`
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Difficulty     *string  `json:"difficulty,omitempty"`
	PlayTime       *string  `json:"play_time,omitempty"`
	GameType       *string  `json:"game_type,omitempty"`
	MinPlayers     *int     `json:"min_players,omitempty"`
	MaxPlayers     *int     `json:"max_players,omitempty"`
	SuggestedAge   *string  `json:"suggested_age,omitempty"`
	MainImage      *string  `json:"main_image,omitempty"`
	GameplayImage1 *string  `json:"gameplay_image_1,omitempty"`
	GameplayImage2 *string  `json:"gameplay_image_2,omitempty"`
	PublisherID    *int64   `json:"publisher_id,omitempty"`
	IsComingSoon   *bool    `json:"is_coming_soon,omitempty"`
	IsForSale      *bool    `json:"is_for_sale,omitempty"`
	SalePrice      *float64 `json:"sale_price,omitempty"`
	SaleCondition  *string  `json:"sale_condition,omitempty"`
	IsExpansion    *bool    `json:"is_expansion,omitempty"`
	ParentGameID   *int64   `json:"parent_game_id,omitempty"`
	LocationRoom   *string  `json:"location_room,omitempty"`
	LocationShelf  *string  `json:"location_shelf,omitempty"`
	MechanicIDs    []int64  `json:"mechanic_ids,omitempty"`
}

// GameResponse DTO for full game responses
type GameResponse struct {
	ID             int64              `json:"id"`
	Slug           *string            `json:"slug,omitempty"`
	Title          string             `json:"title"`
	Description    *string            `json:"description,omitempty"`
	Difficulty     *string            `json:"difficulty,omitempty"`
	PlayTime       *string            `json:"play_time,omitempty"`
	GameType       *string            `json:"game_type,omitempty"`
	MinPlayers     *int               `json:"min_players,omitempty"`
	MaxPlayers     *int               `json:"max_players,omitempty"`
	SuggestedAge   *string            `json:"suggested_age,omitempty"`
	MainImage      *string            `json:"main_image,omitempty"`
	GameplayImage1 *string            `json:"gameplay_image_1,omitempty"`
	GameplayImage2 *string            `json:"gameplay_image_2,omitempty"`
	SourceURL      *string            `json:"source_url,omitempty"`
	Publisher      *PublisherResponse `json:"publisher,omitempty"`
	Mechanics      []MechanicResponse `json:"mechanics"`
	IsComingSoon   bool               `json:"is_coming_soon"`
	IsForSale      bool               `json:"is_for_sale"`
	SalePrice      *float64           `json:"sale_price,omitempty"`
	SaleCondition  *string            `json:"sale_condition,omitempty"`
	IsExpansion    bool               `json:"is_expansion"`
	ParentGameID   *int64             `json:"parent_game_id,omitempty"`
	LocationRoom   *string            `json:"location_room,omitempty"`
	LocationShelf  *string            `json:"location_shelf,omitempty"`
	CreatedAt      *time.Time         `json:"created_at,omitempty"`
	UpdatedAt      *time.Time         `json:"updated_at,omitempty"`
}

// GameBasicResponse trims the payload for list endpoints
type GameBasicResponse struct {
	ID         int64   `json:"id"`
	Slug       *string `json:"slug,omitempty"`
	Title      string  `json:"title"`
	GameType   *string `json:"game_type,omitempty"`
	Difficulty *string `json:"difficulty,omitempty"`
	MinPlayers *int    `json:"min_players,omitempty"`
	MaxPlayers *int    `json:"max_players,omitempty"`
	MainImage  *string `json:"main_image,omitempty"`
	IsForSale  bool    `json:"is_for_sale"`
}

// Converters
func (d CreateGameDTO) ToModel() models.Game {
	g := models.Game{
		Slug:          d.Slug,
		Title:         d.Title,
		Description:   d.Description,
		Difficulty:    d.Difficulty,
		PlayTime:      d.PlayTime,
		GameType:      d.GameType,
		MinPlayers:    d.MinPlayers,
		MaxPlayers:    d.MaxPlayers,
		SuggestedAge:  d.SuggestedAge,
		MainImage:     d.MainImage,
		SourceURL:     d.SourceURL,
		PublisherID:   d.PublisherID,
		SalePrice:     d.SalePrice,
		SaleCondition: d.SaleCondition,
		ParentGameID:  d.ParentGameID,
		LocationRoom:  d.LocationRoom,
		LocationShelf: d.LocationShelf,
	}
	if d.IsComingSoon != nil {
		g.IsComingSoon = *d.IsComingSoon
	}
	if d.IsForSale != nil {
		g.IsForSale = *d.IsForSale
	}
	if d.IsExpansion != nil {
		g.IsExpansion = *d.IsExpansion
	}
	return g
}

func (d UpdateGameDTO) ApplyTo(g *models.Game) {
	if d.Slug != nil {
		g.Slug = d.Slug
	}
	if d.Title != nil {
		g.Title = *d.Title
	}
	if d.Description != nil {
		g.Description = d.Description
	}
	if d.Difficulty != nil {
		g.Difficulty = d.Difficulty
	}
	if d.PlayTime != nil {
		g.PlayTime = d.PlayTime
	}
	if d.GameType != nil {
		g.GameType = d.GameType
	}
	if d.MinPlayers != nil {
		g.MinPlayers = d.MinPlayers
	}
	if d.MaxPlayers != nil {
		g.MaxPlayers = d.MaxPlayers
	}
	if d.SuggestedAge != nil {
		g.SuggestedAge = d.SuggestedAge
	}
	if d.MainImage != nil {
		g.MainImage = d.MainImage
	}
	if d.GameplayImage1 != nil {
		g.GameplayImage1 = d.GameplayImage1
	}
	if d.GameplayImage2 != nil {
		g.GameplayImage2 = d.GameplayImage2
	}
	if d.PublisherID != nil {
		g.PublisherID = d.PublisherID
	}
	if d.IsComingSoon != nil {
		g.IsComingSoon = *d.IsComingSoon
	}
	if d.IsForSale != nil {
		g.IsForSale = *d.IsForSale
	}
	if d.SalePrice != nil {
		g.SalePrice = d.SalePrice
	}
	if d.SaleCondition != nil {
		g.SaleCondition = d.SaleCondition
	}
	if d.IsExpansion != nil {
		g.IsExpansion = *d.IsExpansion
	}
	if d.ParentGameID != nil {
		g.ParentGameID = d.ParentGameID
	}
	if d.LocationRoom != nil {
		g.LocationRoom = d.LocationRoom
	}
	if d.LocationShelf != nil {
		g.LocationShelf = d.LocationShelf
	}
}

func FromModelToResponse(g models.Game) GameResponse {
	resp := GameResponse{
		ID:             g.ID,
		Slug:           g.Slug,
		Title:          g.Title,
		Description:    g.Description,
		Difficulty:     g.Difficulty,
		PlayTime:       g.PlayTime,
		GameType:       g.GameType,
		MinPlayers:     g.MinPlayers,
		MaxPlayers:     g.MaxPlayers,
		SuggestedAge:   g.SuggestedAge,
		MainImage:      g.MainImage,
		GameplayImage1: g.GameplayImage1,
		GameplayImage2: g.GameplayImage2,
		SourceURL:      g.SourceURL,
		Mechanics:      make([]MechanicResponse, 0, len(g.Mechanics)),
		IsComingSoon:   g.IsComingSoon,
		IsForSale:      g.IsForSale,
		SalePrice:      g.SalePrice,
		SaleCondition:  g.SaleCondition,
		IsExpansion:    g.IsExpansion,
		ParentGameID:   g.ParentGameID,
		LocationRoom:   g.LocationRoom,
		LocationShelf:  g.LocationShelf,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
	for _, m := range g.Mechanics {
		resp.Mechanics = append(resp.Mechanics, MechanicFromModel(m))
	}
	if g.Publisher != nil {
		p := PublisherFromModel(*g.Publisher)
		resp.Publisher = &p
	}
	return resp
}

func FromModelToBasicResponse(g models.Game) GameBasicResponse {
	return GameBasicResponse{
		ID:         g.ID,
		Slug:       g.Slug,
		Title:      g.Title,
		GameType:   g.GameType,
		Difficulty: g.Difficulty,
		MinPlayers: g.MinPlayers,
		MaxPlayers: g.MaxPlayers,
		MainImage:  g.MainImage,
		IsForSale:  g.IsForSale,
	}
}
