package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/motorlogic/garage/pkg/session"
)

// SessionNotFoundError is returned when a session does not exist. Callers
// recover by starting a new conversation.
type SessionNotFoundError struct {
	ID string
}

func (e SessionNotFoundError) Error() string {
	if e.ID == "" {
		return "session not found"
	}
	return "session not found: " + e.ID
}

// SessionExpiredError is returned when an ephemeral session's deadline has
// passed but the sweeper has not collected it yet. Callers treat it exactly
// like a missing session.
type SessionExpiredError struct {
	ID        string
	ExpiredAt time.Time
}

func (e SessionExpiredError) Error() string {
	return fmt.Sprintf("session %s expired at %s", e.ID, e.ExpiredAt.Format(time.RFC3339))
}

// ProfileNotFoundError is returned when a profile does not exist.
type ProfileNotFoundError struct {
	ID string
}

func (e ProfileNotFoundError) Error() string {
	return "profile not found: " + e.ID
}

// InvalidTierError is returned when the requested tier contradicts the owner
// id shape (guest owners are ephemeral-only, account owners persistent-only).
type InvalidTierError struct {
	OwnerID string
	Tier    session.Tier
}

func (e InvalidTierError) Error() string {
	return fmt.Sprintf("tier %q is invalid for owner %q", e.Tier, e.OwnerID)
}

// OwnershipConflictError is returned when a claim targets a session already
// owned by a different account. Never silently overwritten.
type OwnershipConflictError struct {
	SessionID string
	OwnerID   string
	ClaimedBy string
}

func (e OwnershipConflictError) Error() string {
	return fmt.Sprintf("session %s is owned by another account", e.SessionID)
}

// ProfileLimitError is returned when an owner at the profile cap adds
// another profile under the rejection policy.
type ProfileLimitError struct {
	OwnerID string
	Limit   int
}

func (e ProfileLimitError) Error() string {
	return fmt.Sprintf("owner %s already holds the maximum of %d profiles; delete or replace one", e.OwnerID, e.Limit)
}

// StateError is returned when a state value fails validation. The session is
// left unchanged; there are no partial state writes.
type StateError struct {
	Key string
	Err error
}

func (e StateError) Error() string {
	return fmt.Sprintf("invalid state value for %q: %v", e.Key, e.Err)
}

func (e StateError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a missing-session, expired-session, or
// missing-profile error — the cases a caller handles by treating the record
// as gone.
func IsNotFound(err error) bool {
	var snf SessionNotFoundError
	var sex SessionExpiredError
	var pnf ProfileNotFoundError
	return errors.As(err, &snf) || errors.As(err, &sex) || errors.As(err, &pnf)
}
