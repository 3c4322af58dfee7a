package models

import (
	"time"

	"github.com/gymstack/gymhub/pkg/types"
)

// User is a staff principal. GymID is nil only for platform-level accounts:
// a super_admin always has a nil GymID, a gym_admin/gym_staff normally has
// one set.
type User struct {
	ID           uint            `gorm:"column:id;primaryKey" json:"id"`
	GymID        *uint           `gorm:"column:gym_id;index" json:"gym_id"`
	Name         string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email        string          `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string          `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         types.StaffRole `gorm:"column:role;type:varchar(32);not null;default:'gym_staff'" json:"role"`
	// RoleID references a custom per-gym role. A gym_admin with a nil
	// RoleID is the gym owner and implicitly holds every permission.
	RoleID *uint `gorm:"column:role_id" json:"role_id"`

	CustomRole *Role `gorm:"foreignKey:RoleID" json:"custom_role,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == types.StaffRoleSuperAdmin
}

// GymContext returns the user's own tenant scope; platform for nil GymID.
func (u *User) GymContext() types.GymID {
	return types.FromPtr(u.GymID)
}
