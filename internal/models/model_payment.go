package models

import (
	"time"
)

// Payment records money received from a member. Reference is a generated
// receipt number, unique per row.
type Payment struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	GymID     uint      `gorm:"column:gym_id;not null;index" json:"gym_id"`
	MemberID  uint      `gorm:"column:member_id;not null;index" json:"member_id"`
	BranchID  *uint     `gorm:"column:branch_id" json:"branch_id"`
	Amount    float64   `gorm:"column:amount;not null" json:"amount"`
	Method    string    `gorm:"column:method;type:varchar(64);not null;default:'cash'" json:"method"`
	Reference string    `gorm:"column:reference;type:varchar(64);not null;uniqueIndex" json:"reference"`
	PaidAt    time.Time `gorm:"column:paid_at;not null" json:"paid_at"`
	Notes     string    `gorm:"column:notes;type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
