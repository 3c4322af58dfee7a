package models

import (
	"time"

	"github.com/gymstack/gymhub/pkg/types"
)

// Member is a customer principal. It belongs to exactly one gym and carries
// its plan state inline. CoinBalance never goes below zero; the check-in path
// decrements it with a conditional update, one coin per completed check-in.
type Member struct {
	ID           uint   `gorm:"column:id;primaryKey" json:"id"`
	GymID        uint   `gorm:"column:gym_id;not null;index" json:"gym_id"`
	BranchID     *uint  `gorm:"column:branch_id;index" json:"branch_id"`
	TrainerID    *uint  `gorm:"column:trainer_id;index" json:"trainer_id"`
	GymPlanID    *uint  `gorm:"column:gym_plan_id" json:"gym_plan_id"`
	Name         string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email        string `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone        string `gorm:"column:phone;type:varchar(64)" json:"phone"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`

	PlanType     types.PlanType     `gorm:"column:plan_type;type:varchar(32);not null;default:'monthly'" json:"plan_type"`
	PlanTier     string             `gorm:"column:plan_tier;type:varchar(64)" json:"plan_tier"`
	BundleMonths int                `gorm:"column:bundle_months;default:0" json:"bundle_months"`
	CoinBalance  int                `gorm:"column:coin_balance;not null;default:0" json:"coin_balance"`
	CoinPackage  string             `gorm:"column:coin_package;type:varchar(64)" json:"coin_package"`
	StartDate    *time.Time         `gorm:"column:start_date" json:"start_date"`
	ExpiresAt    *time.Time         `gorm:"column:expires_at" json:"expires_at"`
	Status       types.MemberStatus `gorm:"column:status;type:varchar(32);not null;default:'Active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// CanCheckIn reports whether the member's status admits a check-in at all.
// The coin balance is checked separately, atomically, at decrement time.
func (m *Member) CanCheckIn() bool {
	return m.Status == types.MemberStatusActive || m.Status == types.MemberStatusExpiring
}
