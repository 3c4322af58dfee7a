package models

import (
	"time"
)

// Role is a tenant-defined composition of catalog permissions. Slugs repeat
// across gyms; uniqueness is only per tenant.
type Role struct {
	ID    uint   `gorm:"column:id;primaryKey" json:"id"`
	GymID uint   `gorm:"column:gym_id;not null;index:idx_roles_gym_slug,unique" json:"gym_id"`
	Name  string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug  string `gorm:"column:slug;type:varchar(255);not null;index:idx_roles_gym_slug,unique" json:"slug"`

	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}

// HasPermission reports whether the role composition includes the slug.
// Permissions must be preloaded.
func (r *Role) HasPermission(slug string) bool {
	for _, p := range r.Permissions {
		if p.Slug == slug {
			return true
		}
	}
	return false
}

// Permission is a global catalog entry, seeded at startup and never
// tenant-scoped.
type Permission struct {
	ID    uint   `gorm:"column:id;primaryKey" json:"id"`
	Slug  string `gorm:"column:slug;type:varchar(128);not null;uniqueIndex" json:"slug"`
	Name  string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Group string `gorm:"column:group_name;type:varchar(128)" json:"group"`
}

func (Permission) TableName() string {
	return "permissions"
}

// PermissionCatalog is the fixed set of grantable permissions. Custom roles
// pick from this list; gyms cannot define their own entries.
var PermissionCatalog = []Permission{
	{Slug: "members.view", Name: "View members", Group: "members"},
	{Slug: "members.manage", Name: "Manage members", Group: "members"},
	{Slug: "trainers.view", Name: "View trainers", Group: "trainers"},
	{Slug: "trainers.manage", Name: "Manage trainers", Group: "trainers"},
	{Slug: "branches.view", Name: "View branches", Group: "branches"},
	{Slug: "branches.manage", Name: "Manage branches", Group: "branches"},
	{Slug: "payments.view", Name: "View payments", Group: "finance"},
	{Slug: "payments.manage", Name: "Record payments", Group: "finance"},
	{Slug: "expenses.view", Name: "View expenses", Group: "finance"},
	{Slug: "expenses.manage", Name: "Manage expenses", Group: "finance"},
	{Slug: "commissions.view", Name: "View commissions", Group: "finance"},
	{Slug: "commissions.manage", Name: "Manage commissions", Group: "finance"},
	{Slug: "attendance.view", Name: "View attendance", Group: "attendance"},
	{Slug: "attendance.manage", Name: "Check members in and out", Group: "attendance"},
	{Slug: "plans.view", Name: "View gym plans", Group: "plans"},
	{Slug: "plans.manage", Name: "Manage gym plans", Group: "plans"},
	{Slug: "workouts.view", Name: "View workout plans", Group: "workouts"},
	{Slug: "workouts.manage", Name: "Manage workout plans", Group: "workouts"},
	{Slug: "users.view", Name: "View staff users", Group: "staff"},
	{Slug: "users.create", Name: "Create staff users", Group: "staff"},
	{Slug: "users.manage", Name: "Manage staff users", Group: "staff"},
	{Slug: "roles.view", Name: "View roles", Group: "staff"},
	{Slug: "roles.manage", Name: "Manage roles", Group: "staff"},
}
