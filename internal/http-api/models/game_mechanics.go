package models

// explicit join model so the link table has its own id
type GameMechanic struct {
	ID         int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	GameID     int64 `json:"game_id" gorm:"index;not null"`
	MechanicID int64 `json:"mechanic_id" gorm:"index;not null"`
}

func (GameMechanic) TableName() string {
	return "game_mechanics"
}
