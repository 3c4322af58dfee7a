// Package tenant computes the effective gym scope for a staff request.
//
// Scope is resolved once, up front, from the principal and the optional
// gym_id query override, and handed to handlers as a value. Handlers never
// reach back into ambient request state to decide which tenant they are
// operating on.
package tenant

import (
	"errors"
	"strconv"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/types"
)

// ErrGymContextRequired is returned by ResolveStrict for routes that cannot
// operate at platform scope.
var ErrGymContextRequired = errors.New("gym context required")

// PlatformOverride is the override literal a super admin passes to pin the
// explicit platform scope (rows with a NULL gym_id) instead of a tenant.
const PlatformOverride = "platform"

// Resolve returns the effective gym scope. A super admin may override scope
// with a gym_id query parameter to act on a tenant it does not belong to;
// everyone else is pinned to their own gym. A malformed override is treated
// as absent, never as an error. Pure function: same inputs, same scope.
func Resolve(u *models.User, override string) types.GymID {
	if u == nil {
		return types.Platform
	}
	if u.IsSuperAdmin() && override != "" {
		if override == PlatformOverride {
			return types.Platform
		}
		if id, err := strconv.ParseUint(override, 10, 32); err == nil {
			return types.GymID(id)
		}
	}
	return u.GymContext()
}

// ResolveStrict is the gym-dashboard variant: platform scope is not a valid
// answer.
func ResolveStrict(u *models.User, override string) (types.GymID, error) {
	scope := Resolve(u, override)
	if scope.IsPlatform() {
		return types.Platform, ErrGymContextRequired
	}
	return scope, nil
}
