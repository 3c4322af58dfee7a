package models

import (
	"time"

	"github.com/gymstack/gymhub/pkg/types"
)

// SubscriptionPlan is the platform-level plan catalog gyms subscribe to.
type SubscriptionPlan struct {
	ID              uint    `gorm:"column:id;primaryKey" json:"id"`
	Name            string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug            string  `gorm:"column:slug;type:varchar(255);not null;uniqueIndex" json:"slug"`
	Price           float64 `gorm:"column:price;not null;default:0" json:"price"`
	BillingInterval string  `gorm:"column:billing_interval;type:varchar(32);not null;default:'monthly'" json:"billing_interval"`
	MaxMembers      int     `gorm:"column:max_members;default:0" json:"max_members"`
	MaxBranches     int     `gorm:"column:max_branches;default:0" json:"max_branches"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// Subscription is one row of a gym's billing history. A gym accumulates rows
// over renewals and upgrades; the row with the greatest id among those in
// trial/active status is the gym's active subscription. Ordering is by id,
// not by date: StartsAt/EndsAt may be null or out of order on
// manually-entered rows.
type Subscription struct {
	ID                 uint                     `gorm:"column:id;primaryKey" json:"id"`
	GymID              uint                     `gorm:"column:gym_id;not null;index" json:"gym_id"`
	SubscriptionPlanID uint                     `gorm:"column:subscription_plan_id;not null" json:"subscription_plan_id"`
	Status             types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null;default:'trial'" json:"status"`
	StartsAt           *time.Time               `gorm:"column:starts_at" json:"starts_at"`
	EndsAt             *time.Time               `gorm:"column:ends_at" json:"ends_at"`

	Plan *SubscriptionPlan `gorm:"foreignKey:SubscriptionPlanID" json:"plan,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
