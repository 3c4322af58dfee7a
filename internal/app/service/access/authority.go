// Package access decides whether a staff principal may perform a named
// action. Authority is a closed three-case union rather than a null check so
// call sites handle every case explicitly.
package access

import (
	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/types"
)

type Kind int

const (
	// KindSuperAdmin bypasses every permission check.
	KindSuperAdmin Kind = iota
	// KindOwner is a gym_admin with no custom role assigned. The
	// unassigned-role state is the implicit full-access owner role, not an
	// error: a fresh gym's owner manages staff before any Role row exists.
	KindOwner
	// KindRoleBased grants exactly what the assigned role's permission
	// composition names.
	KindRoleBased
)

// Authority is a principal's permission standing.
type Authority struct {
	kind Kind
	role *models.Role
}

func (a Authority) Kind() Kind { return a.kind }

// FromUser derives the authority for a staff principal. CustomRole (with
// Permissions) must already be loaded when the user carries a role id.
func FromUser(u *models.User) Authority {
	switch {
	case u == nil:
		return Authority{kind: KindRoleBased}
	case u.Role == types.StaffRoleSuperAdmin:
		return Authority{kind: KindSuperAdmin}
	case u.Role == types.StaffRoleGymAdmin && u.RoleID == nil:
		return Authority{kind: KindOwner}
	default:
		return Authority{kind: KindRoleBased, role: u.CustomRole}
	}
}

// HasPermission reports whether the authority covers the permission slug.
// Denial is a plain false; it never aborts unrelated request processing.
func (a Authority) HasPermission(slug string) bool {
	switch a.kind {
	case KindSuperAdmin, KindOwner:
		return true
	case KindRoleBased:
		if a.role == nil {
			return false
		}
		return a.role.HasPermission(slug)
	default:
		return false
	}
}
