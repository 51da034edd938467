package models

// Tier represents the execution-cost level for a session or delegation.
type Tier string

const (
	// TierPremium is the highest-cost tier. Coordinator sessions default to it.
	TierPremium Tier = "premium"
	// TierStandard is the mid-cost tier.
	TierStandard Tier = "standard"
	// TierCheap is the lowest-cost tier. Delegations default to it.
	TierCheap Tier = "cheap"
)

// Valid returns true if the tier is a known value.
func (t Tier) Valid() bool {
	switch t {
	case TierPremium, TierStandard, TierCheap:
		return true
	default:
		return false
	}
}

// DefaultCoordinatorTier is the tier assigned to a new session.
const DefaultCoordinatorTier = TierPremium

// DefaultDelegationTier is the tier assigned to a delegation when the
// caller does not specify one.
const DefaultDelegationTier = TierCheap
