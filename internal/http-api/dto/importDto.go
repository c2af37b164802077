package dto

import "gameshelf/internal/importer"

// ImportGameDTO is the admin trigger payload for POST /api/games/import.
type ImportGameDTO struct {
	URL           string   `json:"url" binding:"required"`
	IsComingSoon  bool     `json:"is_coming_soon"`
	IsForSale     bool     `json:"is_for_sale"`
	SalePrice     *float64 `json:"sale_price,omitempty"`
	SaleCondition *string  `json:"sale_condition,omitempty" binding:"omitempty,oneof=new like_new good fair worn"`
	IsExpansion   bool     `json:"is_expansion"`
	ParentGameID  *int64   `json:"parent_game_id,omitempty"`
	LocationRoom  *string  `json:"location_room,omitempty"`
	LocationShelf *string  `json:"location_shelf,omitempty"`
}

func (d ImportGameDTO) ToRequest() importer.Request {
	return importer.Request{
		URL:           d.URL,
		IsComingSoon:  d.IsComingSoon,
		IsForSale:     d.IsForSale,
		SalePrice:     d.SalePrice,
		SaleCondition: d.SaleCondition,
		IsExpansion:   d.IsExpansion,
		ParentGameID:  d.ParentGameID,
		LocationRoom:  d.LocationRoom,
		LocationShelf: d.LocationShelf,
	}
}

// ImportResultDTO is the success envelope of the import trigger.
type ImportResultDTO struct {
	Success bool         `json:"success"`
	Game    GameResponse `json:"game"`
}

// ImportErrorDTO is the failure envelope of the import trigger.
type ImportErrorDTO struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
