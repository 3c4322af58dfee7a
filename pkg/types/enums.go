package types

// GymStatus is the platform-level lifecycle state of a tenant.
type GymStatus string

const (
	GymStatusTrial     GymStatus = "trial"
	GymStatusActive    GymStatus = "active"
	GymStatusSuspended GymStatus = "suspended"
	GymStatusCancelled GymStatus = "cancelled"
)

// StaffRole is the built-in role of a staff user. Custom per-gym roles are
// layered on top via Role/Permission rows; these three are fixed.
type StaffRole string

const (
	StaffRoleSuperAdmin StaffRole = "super_admin"
	StaffRoleGymAdmin   StaffRole = "gym_admin"
	StaffRoleGymStaff   StaffRole = "gym_staff"
)

// SubscriptionStatus is the state of a platform subscription row.
type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// Current reports whether a subscription in this status counts toward the
// gym's active subscription.
func (s SubscriptionStatus) Current() bool {
	return s == SubscriptionStatusTrial || s == SubscriptionStatusActive
}

// MemberStatus is a member's billing/access state.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "Active"
	MemberStatusExpiring MemberStatus = "Expiring"
	MemberStatusExpired  MemberStatus = "Expired"
	MemberStatusFrozen   MemberStatus = "Frozen"
)

// PlanType is how a member (or a gym-defined plan) is billed.
type PlanType string

const (
	PlanTypeMonthly PlanType = "monthly"
	PlanTypeCoin    PlanType = "coin"
	PlanTypeBundle  PlanType = "bundle"
)

// TokenNamespace separates the three principal credential spaces. A token
// minted in one namespace never authenticates in another.
type TokenNamespace string

const (
	TokenNamespaceStaff   TokenNamespace = "staff"
	TokenNamespaceMember  TokenNamespace = "member"
	TokenNamespaceTrainer TokenNamespace = "trainer"
)
