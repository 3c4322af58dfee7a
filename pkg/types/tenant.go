package types

// GymID identifies a tenant. Zero means "no tenant" (platform scope).
type GymID uint

// Platform is the absence of a gym context: super-admin global scope, or
// platform-wide rows such as announcements with a NULL gym_id.
const Platform GymID = 0

func (id GymID) IsPlatform() bool { return id == Platform }

// Ptr returns a nullable column value: nil for platform scope.
func (id GymID) Ptr() *uint {
	if id == Platform {
		return nil
	}
	v := uint(id)
	return &v
}

// FromPtr converts a nullable gym_id column back to a GymID.
func FromPtr(p *uint) GymID {
	if p == nil {
		return Platform
	}
	return GymID(*p)
}
