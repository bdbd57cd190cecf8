// Package inmemory provides an in-memory implementation of storage.Store.
// It backs tests and the default zero-configuration serve mode.
package inmemory

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
)

// Driver implements storage.Store using in-memory maps guarded by a single
// read-write mutex. Session versions still increment on every mutation so
// behavior matches the SQL drivers' optimistic concurrency.
type Driver struct {
	mu sync.RWMutex

	opts     storage.Options
	sessions map[string]*session.Session
	profiles map[string]*session.Profile
	ops      []*session.SyncOperation

	// now is injectable so lifecycle tests can advance time.
	now func() time.Time
}

// NewDriver creates an in-memory store with the given write-time policy.
func NewDriver(opts storage.Options) *Driver {
	return NewDriverWithClock(opts, time.Now)
}

// NewDriverWithClock creates an in-memory store with an injected time source.
func NewDriverWithClock(opts storage.Options, now func() time.Time) *Driver {
	if opts.EphemeralTTL <= 0 {
		opts.EphemeralTTL = storage.DefaultOptions().EphemeralTTL
	}
	if opts.MaxProfiles <= 0 {
		opts.MaxProfiles = storage.DefaultOptions().MaxProfiles
	}
	if opts.CapPolicy == "" {
		opts.CapPolicy = storage.CapReject
	}
	return &Driver{
		opts:     opts,
		sessions: make(map[string]*session.Session),
		profiles: make(map[string]*session.Profile),
		now:      now,
	}
}

// CreateSession creates a session after checking the tier against the owner
// id shape.
func (d *Driver) CreateSession(_ context.Context, ownerID string, tier session.Tier, device string) (*session.Session, error) {
	if ownerID == "" {
		return nil, errors.New("owner id required")
	}
	if !session.ValidTierFor(ownerID, tier) {
		return nil, storage.InvalidTierError{OwnerID: ownerID, Tier: tier}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	s := &session.Session{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Tier:         tier,
		State:        session.State{},
		CreatedAt:    now,
		LastActiveAt: now,
		DeviceOrigin: device,
		Version:      1,
	}
	if tier == session.TierEphemeral {
		exp := now.Add(d.opts.EphemeralTTL)
		s.ExpiresAt = &exp
	}
	d.sessions[s.ID] = s
	return s.Clone(), nil
}

// live returns the stored session, treating expiry like absence. Callers
// hold at least a read lock.
func (d *Driver) live(id string) (*session.Session, error) {
	s, ok := d.sessions[id]
	if !ok {
		return nil, storage.SessionNotFoundError{ID: id}
	}
	if s.Expired(d.now()) {
		return nil, storage.SessionExpiredError{ID: id, ExpiredAt: *s.ExpiresAt}
	}
	return s, nil
}

// touch refreshes activity and the ephemeral sliding expiry. Callers hold
// the write lock.
func (d *Driver) touch(s *session.Session, device string) {
	now := d.now()
	s.LastActiveAt = now
	if s.Tier == session.TierEphemeral {
		exp := now.Add(d.opts.EphemeralTTL)
		s.ExpiresAt = &exp
	}
	if device != "" {
		s.DeviceOrigin = device
	}
	s.Version++
}

// GetSession returns the session with messages. Reads refresh the ephemeral
// expiry window but do not bump the version or the origin device.
func (d *Driver) GetSession(_ context.Context, id string) (*session.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.live(id)
	if err != nil {
		return nil, err
	}
	now := d.now()
	s.LastActiveAt = now
	if s.Tier == session.TierEphemeral {
		exp := now.Add(d.opts.EphemeralTTL)
		s.ExpiresAt = &exp
	}
	return s.Clone(), nil
}

// ListSessions returns the owner's sessions newest-activity first, without
// message bodies.
func (d *Driver) ListSessions(_ context.Context, ownerID string) ([]*session.Session, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	now := d.now()
	var out []*session.Session
	for _, s := range d.sessions {
		if s.OwnerID != ownerID || s.Expired(now) {
			continue
		}
		c := s.Clone()
		c.Messages = nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastActiveAt.After(out[j].LastActiveAt)
	})
	return out, nil
}

// AppendMessage atomically appends one message, deduplicating by message id.
func (d *Driver) AppendMessage(_ context.Context, sessionID string, msg session.Message, device string) (*session.Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.live(sessionID)
	if err != nil {
		return nil, err
	}

	if msg.ID != "" {
		for i := range s.Messages {
			if s.Messages[i].ID == msg.ID {
				dup := s.Messages[i]
				return &dup, nil
			}
		}
	} else {
		msg.ID = uuid.NewString()
	}
	msg.SessionID = sessionID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = d.now()
	}

	s.Messages = append(s.Messages, msg)
	d.touch(s, device)
	stored := msg
	return &stored, nil
}

// SetState validates and writes one state slot. Malformed values reject the
// operation and leave the session unchanged.
func (d *Driver) SetState(_ context.Context, sessionID, key string, value json.RawMessage, device string) error {
	if err := session.ValidateStateValue(key, value); err != nil {
		return storage.StateError{Key: key, Err: err}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.live(sessionID)
	if err != nil {
		return err
	}
	if s.State == nil {
		s.State = session.State{}
	}
	s.State[key] = append(json.RawMessage(nil), value...)
	d.touch(s, device)
	return nil
}

// GetState reads one state slot; a missing key yields nil.
func (d *Driver) GetState(_ context.Context, sessionID, key string) (json.RawMessage, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, err := d.live(sessionID)
	if err != nil {
		return nil, err
	}
	v, ok := s.State[key]
	if !ok {
		return nil, nil
	}
	return append(json.RawMessage(nil), v...), nil
}

// SetTitle sets the session label.
func (d *Driver) SetTitle(_ context.Context, sessionID, title string, device string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.live(sessionID)
	if err != nil {
		return err
	}
	s.Title = strings.TrimSpace(title)
	d.touch(s, device)
	return nil
}

// ClaimSession migrates an ephemeral session to the persistent tier under
// the newly authenticated owner. Idempotent for the same owner; a claim of a
// session owned by a different account fails with OwnershipConflictError.
func (d *Driver) ClaimSession(_ context.Context, sessionID, newOwnerID, device string) (*session.Session, error) {
	if session.IsGuestOwner(newOwnerID) {
		return nil, storage.InvalidTierError{OwnerID: newOwnerID, Tier: session.TierPersistent}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.live(sessionID)
	if err != nil {
		return nil, err
	}

	if s.Tier == session.TierPersistent {
		if s.OwnerID == newOwnerID {
			return s.Clone(), nil
		}
		return nil, storage.OwnershipConflictError{SessionID: sessionID, OwnerID: newOwnerID, ClaimedBy: s.OwnerID}
	}

	s.OwnerID = newOwnerID
	s.Tier = session.TierPersistent
	s.ExpiresAt = nil
	d.touch(s, device)
	return s.Clone(), nil
}

// DeleteSession removes the session and its messages. Idempotent.
func (d *Driver) DeleteSession(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessions, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (d *Driver) Close() error {
	return nil
}
