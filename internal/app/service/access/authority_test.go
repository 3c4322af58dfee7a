package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/types"
)

func uintPtr(v uint) *uint { return &v }

func TestFromUserKinds(t *testing.T) {
	assert.Equal(t, KindSuperAdmin, FromUser(&models.User{Role: types.StaffRoleSuperAdmin}).Kind())
	assert.Equal(t, KindOwner, FromUser(&models.User{Role: types.StaffRoleGymAdmin}).Kind())
	assert.Equal(t, KindRoleBased, FromUser(&models.User{Role: types.StaffRoleGymAdmin, RoleID: uintPtr(1)}).Kind())
	assert.Equal(t, KindRoleBased, FromUser(&models.User{Role: types.StaffRoleGymStaff}).Kind())
	assert.Equal(t, KindRoleBased, FromUser(nil).Kind())
}

func TestHasPermission(t *testing.T) {
	frontDesk := &models.Role{
		ID:   4,
		Name: "Front Desk",
		Permissions: []models.Permission{
			{Slug: "members.view"},
			{Slug: "attendance.manage"},
		},
	}

	tests := []struct {
		name string
		user *models.User
		slug string
		want bool
	}{
		{name: "super admin holds everything", user: &models.User{Role: types.StaffRoleSuperAdmin}, slug: "users.manage", want: true},
		{name: "owner holds everything with no role row", user: &models.User{Role: types.StaffRoleGymAdmin, GymID: uintPtr(2)}, slug: "users.create", want: true},
		{name: "role member has granted slug", user: &models.User{Role: types.StaffRoleGymStaff, RoleID: uintPtr(4), CustomRole: frontDesk}, slug: "members.view", want: true},
		{name: "role member lacks ungranted slug", user: &models.User{Role: types.StaffRoleGymStaff, RoleID: uintPtr(4), CustomRole: frontDesk}, slug: "users.manage", want: false},
		{name: "exact slug match only", user: &models.User{Role: types.StaffRoleGymStaff, RoleID: uintPtr(4), CustomRole: frontDesk}, slug: "members", want: false},
		{name: "staff without role denied", user: &models.User{Role: types.StaffRoleGymStaff}, slug: "members.view", want: false},
		{name: "gym admin with assigned role is scoped to it", user: &models.User{Role: types.StaffRoleGymAdmin, RoleID: uintPtr(4), CustomRole: frontDesk}, slug: "roles.manage", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromUser(tt.user).HasPermission(tt.slug))
		})
	}
}
