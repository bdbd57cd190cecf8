// Package session defines the domain types for the garage conversation core:
// sessions, messages, profiles, and the sync operations that propagate
// mutations between a user's devices.
package session

import (
	"encoding/json"
	"time"
)

// Tier classifies a session's lifecycle.
type Tier string

const (
	// TierEphemeral is an anonymous, time-boxed session. It carries an
	// expiry deadline and is deleted by the lifecycle sweeper.
	TierEphemeral Tier = "ephemeral"

	// TierPersistent is an account-bound session retained until explicit
	// deletion or a configured retention preference purges it.
	TierPersistent Tier = "persistent"
)

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Session is the single source of truth for one conversation.
// Messages are append-only; State is a namespaced key/value document store.
type Session struct {
	ID           string    `json:"session_id"`
	OwnerID      string    `json:"owner_id"`
	Tier         Tier      `json:"tier"`
	Title        string    `json:"title,omitempty"`
	State        State     `json:"state"`
	Messages     []Message `json:"messages,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`

	// ExpiresAt is set only for ephemeral sessions. A nil value signals
	// the persistent tier on the wire.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// DeviceOrigin is the device that last mutated the session, used by
	// the sync engine for echo suppression.
	DeviceOrigin string `json:"device_origin,omitempty"`

	// Version increments on every mutation and backs optimistic
	// concurrency control in the store.
	Version int64 `json:"version"`
}

// Expired reports whether the session's deadline has passed at the given time.
// Persistent sessions never expire this way.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// Clone returns a deep copy so callers can hand sessions across goroutine
// boundaries without sharing mutable slices or maps.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	if s.ExpiresAt != nil {
		t := *s.ExpiresAt
		out.ExpiresAt = &t
	}
	out.State = s.State.Clone()
	if s.Messages != nil {
		out.Messages = make([]Message, len(s.Messages))
		copy(out.Messages, s.Messages)
	}
	return &out
}

// Message is a single conversation turn entry. Immutable once written; the
// only mutation path for a session's transcript is appending new messages.
type Message struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Role      Role           `json:"role"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// State maps namespaced keys (e.g. "vehicle.active_profile") to raw JSON
// documents. Known keys are schema-checked at the boundary via the codec
// registry in state.go; unknown keys pass through untyped.
type State map[string]json.RawMessage

// Clone returns a copy of the state map. Raw values are treated as
// immutable once stored, so only the map itself is duplicated.
func (st State) Clone() State {
	if st == nil {
		return nil
	}
	out := make(State, len(st))
	for k, v := range st {
		out[k] = v
	}
	return out
}

// Profile is a saved, reusable structured record (typically a vehicle) owned
// by a persistent-tier account. Accounts hold at most a configured number of
// profiles, enforced at write time.
type Profile struct {
	ID         string          `json:"profile_id"`
	OwnerID    string          `json:"owner_id"`
	Payload    json.RawMessage `json:"payload"`
	UsageCount int64           `json:"usage_count"`
	LastUsedAt time.Time       `json:"last_used_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TargetType identifies what kind of record a sync operation mutates.
type TargetType string

const (
	TargetSession TargetType = "session"
	TargetProfile TargetType = "profile"
)

// OpKind names the mutation a sync operation carries.
type OpKind string

const (
	OpSessionCreate OpKind = "session.create"
	OpSessionDelete OpKind = "session.delete"
	OpSessionClaim  OpKind = "session.claim"
	OpSessionTitle  OpKind = "session.title"
	OpMessageAppend OpKind = "message.append"
	OpStateSet      OpKind = "state.set"
	OpProfileAdd    OpKind = "profile.add"
	OpProfileDelete OpKind = "profile.delete"
	OpProfileTouch  OpKind = "profile.touch"
)

// SyncOperation is a transient, owner-scoped record of one mutation. It is
// broadcast to the owner's other devices, retained briefly for replay to
// reconnecting devices, and garbage-collected after a bounded window. It is
// never authoritative state.
type SyncOperation struct {
	OpID         string          `json:"op_id"`
	OwnerID      string          `json:"owner_id"`
	TargetID     string          `json:"target_id"`
	TargetType   TargetType      `json:"target_type"`
	Kind         OpKind          `json:"kind"`
	Delta        json.RawMessage `json:"delta,omitempty"`
	OriginDevice string          `json:"origin_device"`
	Clock        Clock           `json:"clock"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Snapshot is a full-state resync payload handed to a device whose offline
// queue overflowed or whose last-known clock fell outside the op retention
// window.
type Snapshot struct {
	OwnerID  string     `json:"owner_id"`
	Sessions []*Session `json:"sessions"`
	Profiles []*Profile `json:"profiles"`
	AsOf     Clock      `json:"as_of"`
}
