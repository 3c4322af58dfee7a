package models

import (
	"time"
)

// Exercise is a movement catalog entry. A nil GymID marks a global entry
// visible to every gym; tenant rows extend the shared catalog.
type Exercise struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	GymID       *uint  `gorm:"column:gym_id;index" json:"gym_id"`
	Name        string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	MuscleGroup string `gorm:"column:muscle_group;type:varchar(128)" json:"muscle_group"`
	Equipment   string `gorm:"column:equipment;type:varchar(128)" json:"equipment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Exercise) TableName() string {
	return "exercises"
}
