package models

import (
	"time"
)

// Commission is a trainer's earning entry for a month, optionally tied to a
// specific member engagement.
type Commission struct {
	ID        uint    `gorm:"column:id;primaryKey" json:"id"`
	GymID     uint    `gorm:"column:gym_id;not null;index" json:"gym_id"`
	TrainerID uint    `gorm:"column:trainer_id;not null;index" json:"trainer_id"`
	MemberID  *uint   `gorm:"column:member_id" json:"member_id"`
	Amount    float64 `gorm:"column:amount;not null" json:"amount"`
	Month     string  `gorm:"column:month;type:varchar(7);not null" json:"month"`
	Status    string  `gorm:"column:status;type:varchar(32);not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Commission) TableName() string {
	return "commissions"
}
