package models

import "time"

type Game struct {
	ID             int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug           *string `json:"slug,omitempty" gorm:"uniqueIndex;size:200"`
	Title          string  `json:"title" gorm:"not null"`
	Description    *string `json:"description,omitempty"`
	Difficulty     *string `json:"difficulty,omitempty"`
	PlayTime       *string `json:"play_time,omitempty"`
	GameType       *string `json:"game_type,omitempty"`
	MinPlayers     *int    `json:"min_players,omitempty"`
	MaxPlayers     *int    `json:"max_players,omitempty"`
	SuggestedAge   *string `json:"suggested_age,omitempty"`
	MainImage      *string `json:"main_image,omitempty"`
	GameplayImage1 *string `json:"gameplay_image_1,omitempty"`
	GameplayImage2 *string `json:"gameplay_image_2,omitempty"`

	// external identifier the import pipeline upserts on
	SourceURL *string `json:"source_url,omitempty" gorm:"uniqueIndex;size:500"`

	PublisherID *int64     `json:"publisher_id,omitempty" gorm:"index"`
	Publisher   *Publisher `json:"publisher,omitempty"`

	// placement flags set by the admin at import time
	IsComingSoon  bool     `json:"is_coming_soon" gorm:"default:false"`
	IsForSale     bool     `json:"is_for_sale" gorm:"default:false"`
	SalePrice     *float64 `json:"sale_price,omitempty" gorm:"type:decimal(10,2)"`
	SaleCondition *string  `json:"sale_condition,omitempty"`
	IsExpansion   bool     `json:"is_expansion" gorm:"default:false"`
	ParentGameID  *int64   `json:"parent_game_id,omitempty" gorm:"index"`
	LocationRoom  *string  `json:"location_room,omitempty"`
	LocationShelf *string  `json:"location_shelf,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime"`

	// association
	Mechanics []Mechanic `json:"mechanics,omitempty" gorm:"many2many:game_mechanics;constraint:OnDelete:CASCADE;"`
}

func (Game) TableName() string {
	return "games"
}
