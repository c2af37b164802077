package models

type Mechanic struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
}

func (Mechanic) TableName() string {
	return "mechanics"
}
