package models

import (
	"time"
)

// Attendance is one gym visit. CheckOutAt is nil while the visit is open;
// a member has at most one open visit per gym at a time. CoinSpent marks
// visits that consumed a coin from a coin-plan member's balance.
type Attendance struct {
	ID         uint       `gorm:"column:id;primaryKey" json:"id"`
	GymID      uint       `gorm:"column:gym_id;not null;index" json:"gym_id"`
	MemberID   uint       `gorm:"column:member_id;not null;index" json:"member_id"`
	BranchID   *uint      `gorm:"column:branch_id" json:"branch_id"`
	CheckInAt  time.Time  `gorm:"column:check_in_at;not null" json:"check_in_at"`
	CheckOutAt *time.Time `gorm:"column:check_out_at" json:"check_out_at"`
	CoinSpent  bool       `gorm:"column:coin_spent;not null;default:false" json:"coin_spent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
