// Package storage defines the interfaces for persisting sessions, profiles,
// and the transient sync-operation log, plus the typed errors callers branch
// on. Implementations live in the inmemory, sqlite, and postgres packages.
package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/motorlogic/garage/pkg/session"
)

// ProfileCapPolicy selects what happens when an owner at the profile limit
// adds another profile.
type ProfileCapPolicy string

const (
	// CapReject refuses the write with ProfileLimitError. This is the
	// default: silently evicting a saved vehicle is a poor experience.
	CapReject ProfileCapPolicy = "reject"

	// CapEvictLRU deletes the least-recently-used profile to make room.
	CapEvictLRU ProfileCapPolicy = "evict_lru"
)

// Options carries the write-time policy every driver enforces.
type Options struct {
	// EphemeralTTL is the sliding expiry window for ephemeral sessions.
	// Every read or write pushes expires_at out by this much.
	EphemeralTTL time.Duration

	// MaxProfiles caps the number of profiles per owner.
	MaxProfiles int

	// CapPolicy selects rejection or LRU eviction at the cap.
	CapPolicy ProfileCapPolicy
}

// DefaultOptions returns the spec defaults: one hour TTL, ten profiles,
// rejection at the cap.
func DefaultOptions() Options {
	return Options{
		EphemeralTTL: time.Hour,
		MaxProfiles:  10,
		CapPolicy:    CapReject,
	}
}

// SessionStore is durable CRUD over sessions and their append-only messages.
// All mutations are atomic per operation: a failed write leaves the session
// exactly as it was. Concurrent writers to the same session are serialized
// via optimistic concurrency on the session version, never via global locks.
type SessionStore interface {
	// CreateSession creates a session for the owner. The tier must match
	// the owner id shape (guest ids are ephemeral-only) or the call fails
	// with InvalidTierError.
	CreateSession(ctx context.Context, ownerID string, tier session.Tier, device string) (*session.Session, error)

	// GetSession returns the session including its messages. Reading an
	// ephemeral session refreshes its expiry. Fails with
	// SessionNotFoundError or SessionExpiredError.
	GetSession(ctx context.Context, id string) (*session.Session, error)

	// ListSessions returns the owner's sessions ordered by last activity,
	// newest first, without message bodies.
	ListSessions(ctx context.Context, ownerID string) ([]*session.Session, error)

	// AppendMessage atomically appends a message. The message id is
	// generated when empty; re-appending an id already present in the
	// session is a deduplicated no-op returning the stored message.
	AppendMessage(ctx context.Context, sessionID string, msg session.Message, device string) (*session.Message, error)

	// SetState writes one state slot, validating well-known keys. Fails
	// with StateError on malformed values, leaving state untouched.
	SetState(ctx context.Context, sessionID, key string, value json.RawMessage, device string) error

	// GetState reads one state slot. A missing key returns nil, not an error.
	GetState(ctx context.Context, sessionID, key string) (json.RawMessage, error)

	// SetTitle sets the human-readable session label.
	SetTitle(ctx context.Context, sessionID, title string, device string) error

	// ClaimSession migrates an ephemeral session to the persistent tier
	// under the newly authenticated owner, clearing its expiry. Claiming
	// an already-claimed session by the same owner is a no-op; a claim by
	// a different owner fails with OwnershipConflictError.
	ClaimSession(ctx context.Context, sessionID, newOwnerID, device string) (*session.Session, error)

	// DeleteSession removes the session and cascades to its messages.
	// Deleting a session that does not exist is not an error.
	DeleteSession(ctx context.Context, id string) error
}

// ProfileStore is durable CRUD over saved profiles with the per-owner cap
// enforced atomically at write time.
type ProfileStore interface {
	// AddProfile stores a profile, enforcing the owner cap per the
	// configured policy. The profile id is generated when empty.
	AddProfile(ctx context.Context, p *session.Profile) (*session.Profile, error)

	// GetProfile fails with ProfileNotFoundError when absent.
	GetProfile(ctx context.Context, id string) (*session.Profile, error)

	// ListProfiles returns the owner's profiles, most recently used first.
	ListProfiles(ctx context.Context, ownerID string) ([]*session.Profile, error)

	// TouchProfile increments usage_count and stamps last_used_at.
	TouchProfile(ctx context.Context, id string) error

	// DeleteProfile is idempotent.
	DeleteProfile(ctx context.Context, id string) error
}

// OpLog persists sync operations for replay to reconnecting devices. The log
// is transient by design: entries are garbage-collected after a bounded
// retention window regardless of delivery status.
type OpLog interface {
	// AppendOp stores one operation.
	AppendOp(ctx context.Context, op *session.SyncOperation) error

	// OpsSince returns the owner's operations with clocks strictly after
	// since, in clock order. A zero clock returns everything retained.
	OpsSince(ctx context.Context, ownerID string, since session.Clock) ([]*session.SyncOperation, error)
}

// Sweeper is the purge surface the lifecycle manager drives.
type Sweeper interface {
	// PurgeExpiredSessions deletes ephemeral sessions whose expiry has
	// passed at now, cascading to messages. Returns the deleted count.
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int, error)

	// PurgeSessionsInactiveSince deletes the owner's persistent sessions
	// whose last activity precedes cutoff (account retention preference).
	PurgeSessionsInactiveSince(ctx context.Context, ownerID string, cutoff time.Time) (int, error)

	// PurgeOpsBefore deletes sync operations created before cutoff.
	PurgeOpsBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Exporter is the privacy surface: full data portability and the
// irreversible right-to-erasure cascade.
type Exporter interface {
	// ExportOwner serializes every session (with messages) and profile
	// the owner holds.
	ExportOwner(ctx context.Context, ownerID string) (*session.Snapshot, error)

	// EraseOwner irreversibly deletes the owner's sessions, messages,
	// profiles, and queued sync operations. Idempotent.
	EraseOwner(ctx context.Context, ownerID string) error
}

// Store is the full storage surface backing the conversation core.
type Store interface {
	SessionStore
	ProfileStore
	OpLog
	Sweeper
	Exporter

	// Close releases the backend's resources.
	Close() error
}
