package models

import (
	"time"

	"github.com/gymstack/gymhub/pkg/types"
)

// GymPlan is a tenant-defined membership product referenced by members.
// Distinct from SubscriptionPlan, the platform catalog gyms subscribe to.
type GymPlan struct {
	ID             uint           `gorm:"column:id;primaryKey" json:"id"`
	GymID          uint           `gorm:"column:gym_id;not null;index" json:"gym_id"`
	Name           string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Type           types.PlanType `gorm:"column:type;type:varchar(32);not null" json:"type"`
	Tier           string         `gorm:"column:tier;type:varchar(64)" json:"tier"`
	Price          float64        `gorm:"column:price;not null;default:0" json:"price"`
	CoinCount      int            `gorm:"column:coin_count;default:0" json:"coin_count"`
	DurationMonths int            `gorm:"column:duration_months;default:1" json:"duration_months"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GymPlan) TableName() string {
	return "gym_plans"
}
