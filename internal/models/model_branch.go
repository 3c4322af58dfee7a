package models

import (
	"time"
)

// Branch is a gym location. CurrentMembers and MonthlyRevenue are
// denormalized counters refreshed by the branch service, not kept
// transactionally consistent with member/payment writes.
type Branch struct {
	ID      uint   `gorm:"column:id;primaryKey" json:"id"`
	GymID   uint   `gorm:"column:gym_id;not null;index" json:"gym_id"`
	Name    string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Address string `gorm:"column:address;type:varchar(512)" json:"address"`

	CurrentMembers int     `gorm:"column:current_members;default:0" json:"current_members"`
	MonthlyRevenue float64 `gorm:"column:monthly_revenue;default:0" json:"monthly_revenue"`

	Trainers []Trainer `gorm:"many2many:branch_trainers" json:"trainers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Branch) TableName() string {
	return "branches"
}
