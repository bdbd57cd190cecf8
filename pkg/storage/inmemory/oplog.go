package inmemory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/motorlogic/garage/pkg/session"
)

// AppendOp stores one sync operation in the transient log.
func (d *Driver) AppendOp(_ context.Context, op *session.SyncOperation) error {
	if op == nil {
		return errors.New("cannot store nil sync operation")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	stored := *op
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = d.now()
	}
	d.ops = append(d.ops, &stored)
	return nil
}

// OpsSince returns the owner's operations with clocks strictly after since,
// in clock order.
func (d *Driver) OpsSince(_ context.Context, ownerID string, since session.Clock) ([]*session.SyncOperation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*session.SyncOperation
	for _, op := range d.ops {
		if op.OwnerID != ownerID {
			continue
		}
		if !since.IsZero() && !since.Less(op.Clock) {
			continue
		}
		c := *op
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Clock.Less(out[j].Clock)
	})
	return out, nil
}

// PurgeExpiredSessions deletes ephemeral sessions past their deadline.
func (d *Driver) PurgeExpiredSessions(_ context.Context, now time.Time) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	deleted := 0
	for id, s := range d.sessions {
		if s.Expired(now) {
			delete(d.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

// PurgeSessionsInactiveSince deletes the owner's persistent sessions whose
// last activity precedes cutoff.
func (d *Driver) PurgeSessionsInactiveSince(_ context.Context, ownerID string, cutoff time.Time) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	deleted := 0
	for id, s := range d.sessions {
		if s.OwnerID == ownerID && s.Tier == session.TierPersistent && s.LastActiveAt.Before(cutoff) {
			delete(d.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

// PurgeOpsBefore drops sync operations created before cutoff, bounding the
// log regardless of delivery status.
func (d *Driver) PurgeOpsBefore(_ context.Context, cutoff time.Time) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.ops[:0]
	deleted := 0
	for _, op := range d.ops {
		if op.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, op)
	}
	d.ops = kept
	return deleted, nil
}

// ExportOwner serializes everything the owner holds.
func (d *Driver) ExportOwner(_ context.Context, ownerID string) (*session.Snapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := &session.Snapshot{OwnerID: ownerID}
	for _, s := range d.sessions {
		if s.OwnerID == ownerID {
			snap.Sessions = append(snap.Sessions, s.Clone())
		}
	}
	sort.Slice(snap.Sessions, func(i, j int) bool {
		return snap.Sessions[i].CreatedAt.Before(snap.Sessions[j].CreatedAt)
	})
	for _, p := range d.profiles {
		if p.OwnerID == ownerID {
			c := *p
			snap.Profiles = append(snap.Profiles, &c)
		}
	}
	sort.Slice(snap.Profiles, func(i, j int) bool {
		return snap.Profiles[i].CreatedAt.Before(snap.Profiles[j].CreatedAt)
	})
	return snap, nil
}

// EraseOwner irreversibly deletes the owner's sessions, profiles, and queued
// sync operations.
func (d *Driver) EraseOwner(_ context.Context, ownerID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, s := range d.sessions {
		if s.OwnerID == ownerID {
			delete(d.sessions, id)
		}
	}
	for id, p := range d.profiles {
		if p.OwnerID == ownerID {
			delete(d.profiles, id)
		}
	}
	kept := d.ops[:0]
	for _, op := range d.ops {
		if op.OwnerID != ownerID {
			kept = append(kept, op)
		}
	}
	d.ops = kept
	return nil
}
