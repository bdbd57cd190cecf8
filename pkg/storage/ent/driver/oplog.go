package entdriver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage/ent"
	entmessage "github.com/motorlogic/garage/pkg/storage/ent/message"
	entprofile "github.com/motorlogic/garage/pkg/storage/ent/profile"
	entsession "github.com/motorlogic/garage/pkg/storage/ent/session"
	entsyncop "github.com/motorlogic/garage/pkg/storage/ent/syncop"
)

// AppendOp stores one sync operation in the transient log.
func (ed *EntDriver) AppendOp(ctx context.Context, op *session.SyncOperation) error {
	if op == nil {
		return errors.New("cannot store nil sync operation")
	}

	create := ed.Client.SyncOp.Create().
		SetID(op.OpID).
		SetOwnerID(op.OwnerID).
		SetTargetID(op.TargetID).
		SetTargetType(string(op.TargetType)).
		SetKind(string(op.Kind)).
		SetOriginDevice(op.OriginDevice).
		SetClockWallMicros(op.Clock.WallMicros).
		SetClockCounter(int64(op.Clock.Counter)).
		SetClockDevice(op.Clock.Device)
	if !op.CreatedAt.IsZero() {
		create.SetCreatedAt(op.CreatedAt)
	}
	if len(op.Delta) > 0 {
		var delta map[string]any
		if err := json.Unmarshal(op.Delta, &delta); err != nil {
			return fmt.Errorf("decoding op delta: %w", err)
		}
		create.SetDelta(delta)
	}
	if err := create.Exec(ctx); err != nil {
		return fmt.Errorf("appending sync op: %w", err)
	}
	return nil
}

// OpsSince returns the owner's operations with clocks strictly after since,
// in clock order. The wall-clock index narrows the scan; exact hybrid-clock
// ordering is settled in memory.
func (ed *EntDriver) OpsSince(ctx context.Context, ownerID string, since session.Clock) ([]*session.SyncOperation, error) {
	q := ed.Client.SyncOp.Query().
		Where(entsyncop.OwnerID(ownerID))
	if !since.IsZero() {
		q = q.Where(entsyncop.ClockWallMicrosGTE(since.WallMicros))
	}
	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sync ops: %w", err)
	}

	out := make([]*session.SyncOperation, 0, len(rows))
	for _, row := range rows {
		op, err := toDomainOp(row)
		if err != nil {
			return nil, err
		}
		if !since.IsZero() && !since.Less(op.Clock) {
			continue
		}
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Clock.Less(out[j].Clock)
	})
	return out, nil
}

// PurgeExpiredSessions deletes ephemeral sessions past their deadline,
// cascading to messages.
func (ed *EntDriver) PurgeExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	rows, err := ed.Client.Session.Query().
		Where(entsession.ExpiresAtLTE(now)).
		All(ctx)
	if err != nil {
		return 0, fmt.Errorf("finding expired sessions: %w", err)
	}
	return ed.deleteSessionRows(ctx, rows)
}

// PurgeSessionsInactiveSince deletes the owner's persistent sessions whose
// last activity precedes cutoff.
func (ed *EntDriver) PurgeSessionsInactiveSince(ctx context.Context, ownerID string, cutoff time.Time) (int, error) {
	rows, err := ed.Client.Session.Query().
		Where(
			entsession.OwnerID(ownerID),
			entsession.Tier(string(session.TierPersistent)),
			entsession.LastActiveAtLT(cutoff),
		).
		All(ctx)
	if err != nil {
		return 0, fmt.Errorf("finding stale sessions: %w", err)
	}
	return ed.deleteSessionRows(ctx, rows)
}

// PurgeOpsBefore drops sync operations created before cutoff.
func (ed *EntDriver) PurgeOpsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := ed.Client.SyncOp.Delete().
		Where(entsyncop.CreatedAtLT(cutoff)).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("purging sync ops: %w", err)
	}
	return n, nil
}

// ExportOwner serializes every session (with messages) and profile the owner
// holds.
func (ed *EntDriver) ExportOwner(ctx context.Context, ownerID string) (*session.Snapshot, error) {
	snap := &session.Snapshot{OwnerID: ownerID}

	rows, err := ed.Client.Session.Query().
		Where(entsession.OwnerID(ownerID)).
		Order(ent.Asc(entsession.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	for _, row := range rows {
		msgs, err := ed.sessionMessages(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		s, err := ed.toDomainSession(row, msgs)
		if err != nil {
			return nil, err
		}
		snap.Sessions = append(snap.Sessions, s)
	}

	snap.Profiles, err = ed.profilesByCreation(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// EraseOwner irreversibly deletes everything the owner holds, in one
// transaction so a failure never leaves a partial erasure.
func (ed *EntDriver) EraseOwner(ctx context.Context, ownerID string) error {
	tx, err := ed.Client.Tx(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	ids, err := tx.Session.Query().
		Where(entsession.OwnerID(ownerID)).
		IDs(ctx)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("listing sessions: %w", err)
	}
	if len(ids) > 0 {
		if _, err := tx.Message.Delete().Where(entmessage.SessionIDIn(ids...)).Exec(ctx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("deleting messages: %w", err)
		}
		if _, err := tx.Session.Delete().Where(entsession.IDIn(ids...)).Exec(ctx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("deleting sessions: %w", err)
		}
	}
	if _, err := tx.Profile.Delete().Where(entprofile.OwnerID(ownerID)).Exec(ctx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("deleting profiles: %w", err)
	}
	if _, err := tx.SyncOp.Delete().Where(entsyncop.OwnerID(ownerID)).Exec(ctx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("deleting sync ops: %w", err)
	}
	return tx.Commit()
}

func (ed *EntDriver) deleteSessionRows(ctx context.Context, rows []*ent.Session) (int, error) {
	deleted := 0
	for _, row := range rows {
		if err := ed.DeleteSession(ctx, row.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (ed *EntDriver) profilesByCreation(ctx context.Context, ownerID string) ([]*session.Profile, error) {
	rows, err := ed.Client.Profile.Query().
		Where(entprofile.OwnerID(ownerID)).
		Order(ent.Asc(entprofile.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	out := make([]*session.Profile, 0, len(rows))
	for _, row := range rows {
		p, err := toDomainProfile(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func toDomainOp(row *ent.SyncOp) (*session.SyncOperation, error) {
	op := &session.SyncOperation{
		OpID:         row.ID,
		OwnerID:      row.OwnerID,
		TargetID:     row.TargetID,
		TargetType:   session.TargetType(row.TargetType),
		Kind:         session.OpKind(row.Kind),
		OriginDevice: row.OriginDevice,
		Clock: session.Clock{
			WallMicros: row.ClockWallMicros,
			Counter:    uint64(row.ClockCounter),
			Device:     row.ClockDevice,
		},
		CreatedAt: row.CreatedAt,
	}
	if row.Delta != nil {
		raw, err := json.Marshal(row.Delta)
		if err != nil {
			return nil, fmt.Errorf("encoding op delta: %w", err)
		}
		op.Delta = raw
	}
	return op, nil
}
