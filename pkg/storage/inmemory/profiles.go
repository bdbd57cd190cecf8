package inmemory

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
)

// AddProfile stores a profile, enforcing the per-owner cap atomically with
// the insert.
func (d *Driver) AddProfile(_ context.Context, p *session.Profile) (*session.Profile, error) {
	if p == nil {
		return nil, errors.New("cannot store nil profile")
	}
	if p.OwnerID == "" {
		return nil, errors.New("profile owner id required")
	}
	if session.IsGuestOwner(p.OwnerID) {
		return nil, storage.InvalidTierError{OwnerID: p.OwnerID, Tier: session.TierPersistent}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	owned := d.ownerProfilesLocked(p.OwnerID)
	if len(owned) >= d.opts.MaxProfiles {
		if d.opts.CapPolicy == storage.CapReject {
			return nil, storage.ProfileLimitError{OwnerID: p.OwnerID, Limit: d.opts.MaxProfiles}
		}
		// Evict the least-recently-used profile to make room.
		lru := owned[0]
		for _, candidate := range owned[1:] {
			if candidate.LastUsedAt.Before(lru.LastUsedAt) {
				lru = candidate
			}
		}
		delete(d.profiles, lru.ID)
	}

	now := d.now()
	stored := &session.Profile{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Payload:    append(json.RawMessage(nil), p.Payload...),
		UsageCount: p.UsageCount,
		LastUsedAt: now,
		CreatedAt:  now,
	}
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	d.profiles[stored.ID] = stored

	out := *stored
	return &out, nil
}

// GetProfile returns a profile by id.
func (d *Driver) GetProfile(_ context.Context, id string) (*session.Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.profiles[id]
	if !ok {
		return nil, storage.ProfileNotFoundError{ID: id}
	}
	out := *p
	return &out, nil
}

// ListProfiles returns the owner's profiles, most recently used first.
func (d *Driver) ListProfiles(_ context.Context, ownerID string) ([]*session.Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	owned := d.ownerProfilesLocked(ownerID)
	out := make([]*session.Profile, 0, len(owned))
	for _, p := range owned {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastUsedAt.After(out[j].LastUsedAt)
	})
	return out, nil
}

// TouchProfile records a use: usage_count increments and last_used_at moves
// forward, feeding the LRU eviction order.
func (d *Driver) TouchProfile(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.profiles[id]
	if !ok {
		return storage.ProfileNotFoundError{ID: id}
	}
	p.UsageCount++
	p.LastUsedAt = d.now()
	return nil
}

// DeleteProfile is idempotent.
func (d *Driver) DeleteProfile(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.profiles, id)
	return nil
}

func (d *Driver) ownerProfilesLocked(ownerID string) []*session.Profile {
	var owned []*session.Profile
	for _, p := range d.profiles {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	return owned
}
