package models

type Publisher struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
}

func (Publisher) TableName() string {
	return "publishers"
}
