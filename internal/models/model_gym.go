package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/gymstack/gymhub/pkg/types"
)

// Gym is the tenant root. Every tenant-scoped row carries this gym's id;
// nothing below a gym is shared with another gym.
type Gym struct {
	ID       uint              `gorm:"column:id;primaryKey" json:"id"`
	Name     string            `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug     string            `gorm:"column:slug;type:varchar(255);not null;uniqueIndex" json:"slug"`
	Email    string            `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Phone    string            `gorm:"column:phone;type:varchar(64)" json:"phone"`
	Address  string            `gorm:"column:address;type:varchar(512)" json:"address"`
	Status   types.GymStatus   `gorm:"column:status;type:varchar(32);not null;default:'trial'" json:"status"`
	Settings datatypes.JSONMap `gorm:"column:settings;type:jsonb;default:'{}'" json:"settings"`

	// ActiveSubscription is the most recently created trial/active
	// subscription row, populated by the subscription service, not GORM.
	ActiveSubscription *Subscription `gorm:"-" json:"active_subscription,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Gym) TableName() string {
	return "gyms"
}
