package session

import (
	"strings"

	"github.com/google/uuid"
)

// GuestPrefix marks generated anonymous owner identifiers. The prefix is how
// the store distinguishes guest-shaped owners from account ids when
// validating tier at session creation.
const GuestPrefix = "guest_"

// NewGuestOwnerID generates an owner identifier for an anonymous user.
func NewGuestOwnerID() string {
	return GuestPrefix + uuid.NewString()
}

// IsGuestOwner reports whether the owner id has the guest shape.
func IsGuestOwner(ownerID string) bool {
	return strings.HasPrefix(ownerID, GuestPrefix)
}

// TierForOwner returns the tier an owner id implies: guest ids map to the
// ephemeral tier, everything else to persistent.
func TierForOwner(ownerID string) Tier {
	if IsGuestOwner(ownerID) {
		return TierEphemeral
	}
	return TierPersistent
}

// ValidTierFor reports whether the requested tier is consistent with the
// owner id shape. Guest owners may only hold ephemeral sessions and account
// owners only persistent ones.
func ValidTierFor(ownerID string, tier Tier) bool {
	return TierForOwner(ownerID) == tier
}
