package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/types"
)

func uintPtr(v uint) *uint { return &v }

func TestResolve(t *testing.T) {
	superAdmin := &models.User{Role: types.StaffRoleSuperAdmin}
	gymAdmin := &models.User{Role: types.StaffRoleGymAdmin, GymID: uintPtr(7)}
	gymStaff := &models.User{Role: types.StaffRoleGymStaff, GymID: uintPtr(3)}

	tests := []struct {
		name     string
		user     *models.User
		override string
		want     types.GymID
	}{
		{name: "super admin no override is platform scope", user: superAdmin, override: "", want: types.Platform},
		{name: "super admin numeric override", user: superAdmin, override: "42", want: types.GymID(42)},
		{name: "super admin platform literal", user: superAdmin, override: "platform", want: types.Platform},
		{name: "super admin malformed override treated as absent", user: superAdmin, override: "abc", want: types.Platform},
		{name: "super admin negative override treated as absent", user: superAdmin, override: "-3", want: types.Platform},
		{name: "gym admin ignores override", user: gymAdmin, override: "42", want: types.GymID(7)},
		{name: "gym staff own gym", user: gymStaff, override: "", want: types.GymID(3)},
		{name: "nil principal", user: nil, override: "9", want: types.Platform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.user, tt.override))
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	u := &models.User{Role: types.StaffRoleSuperAdmin}
	first := Resolve(u, "12")
	second := Resolve(u, "12")
	assert.Equal(t, first, second)
}

func TestResolveStrict(t *testing.T) {
	staff := &models.User{Role: types.StaffRoleGymStaff, GymID: uintPtr(5)}
	scope, err := ResolveStrict(staff, "")
	require.NoError(t, err)
	assert.Equal(t, types.GymID(5), scope)

	unassigned := &models.User{Role: types.StaffRoleGymStaff}
	_, err = ResolveStrict(unassigned, "")
	require.ErrorIs(t, err, ErrGymContextRequired)

	// A super admin without an override has no tenant either.
	_, err = ResolveStrict(&models.User{Role: types.StaffRoleSuperAdmin}, "")
	require.ErrorIs(t, err, ErrGymContextRequired)

	scope, err = ResolveStrict(&models.User{Role: types.StaffRoleSuperAdmin}, "11")
	require.NoError(t, err)
	assert.Equal(t, types.GymID(11), scope)
}
