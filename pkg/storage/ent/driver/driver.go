// Package entdriver implements storage.Store on top of a generated ent
// client. It is database-agnostic and is embedded by the sqlite and postgres
// drivers. All session mutations are optimistic: updates are conditioned on
// the version the transaction read, and retried on conflict, so concurrent
// writers to the same session serialize without global locks.
package entdriver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
	"github.com/motorlogic/garage/pkg/storage/ent"
	entmessage "github.com/motorlogic/garage/pkg/storage/ent/message"
	entsession "github.com/motorlogic/garage/pkg/storage/ent/session"
)

// maxRetries bounds the optimistic-concurrency retry loop. Conflicts need
// two writers racing on one session, so a handful of attempts is plenty.
const maxRetries = 5

// EntDriver provides storage operations using an ent client.
type EntDriver struct {
	Client *ent.Client
	Opts   storage.Options

	// Now is the injectable time source; defaults to time.Now.
	Now func() time.Time
}

func (ed *EntDriver) now() time.Time {
	if ed.Now != nil {
		return ed.Now()
	}
	return time.Now()
}

// ErrVersionConflict signals a lost optimistic-concurrency race inside a
// transaction; the operation is retried with fresh state.
var ErrVersionConflict = errors.New("session version conflict")

// CreateSession creates a session after checking tier against owner shape.
func (ed *EntDriver) CreateSession(ctx context.Context, ownerID string, tier session.Tier, device string) (*session.Session, error) {
	if ownerID == "" {
		return nil, errors.New("owner id required")
	}
	if !session.ValidTierFor(ownerID, tier) {
		return nil, storage.InvalidTierError{OwnerID: ownerID, Tier: tier}
	}

	now := ed.now()
	create := ed.Client.Session.Create().
		SetID(uuid.NewString()).
		SetOwnerID(ownerID).
		SetTier(string(tier)).
		SetState(map[string]any{}).
		SetCreatedAt(now).
		SetLastActiveAt(now).
		SetDeviceOrigin(device).
		SetVersion(1)
	if tier == session.TierEphemeral {
		create.SetExpiresAt(now.Add(ed.Opts.EphemeralTTL))
	}

	row, err := create.Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return ed.toDomainSession(row, nil)
}

// GetSession returns the session with its messages in receipt order, and
// refreshes the ephemeral sliding expiry as a side effect of the read.
func (ed *EntDriver) GetSession(ctx context.Context, id string) (*session.Session, error) {
	row, err := ed.liveSession(ctx, ed.Client, id)
	if err != nil {
		return nil, err
	}

	now := ed.now()
	refresh := ed.Client.Session.UpdateOneID(id).
		Where(entsession.Version(row.Version)).
		SetLastActiveAt(now)
	if row.Tier == string(session.TierEphemeral) {
		refresh.SetExpiresAt(now.Add(ed.Opts.EphemeralTTL))
	}
	// A lost race here means a concurrent write already refreshed the
	// session; the read proceeds with the row it saw.
	if _, err := refresh.Save(ctx); err != nil && !ent.IsNotFound(err) {
		return nil, fmt.Errorf("refreshing session activity: %w", err)
	}

	msgs, err := ed.sessionMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	return ed.toDomainSession(row, msgs)
}

// ListSessions returns the owner's live sessions, newest activity first,
// without message bodies.
func (ed *EntDriver) ListSessions(ctx context.Context, ownerID string) ([]*session.Session, error) {
	rows, err := ed.Client.Session.Query().
		Where(entsession.OwnerID(ownerID)).
		Order(ent.Desc(entsession.FieldLastActiveAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	now := ed.now()
	out := make([]*session.Session, 0, len(rows))
	for _, row := range rows {
		if row.ExpiresAt != nil && !now.Before(*row.ExpiresAt) {
			continue
		}
		s, err := ed.toDomainSession(row, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// AppendMessage atomically appends one message, deduplicating by id.
func (ed *EntDriver) AppendMessage(ctx context.Context, sessionID string, msg session.Message, device string) (*session.Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.SessionID = sessionID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = ed.now()
	}

	var stored *session.Message
	err := ed.retry(ctx, func(tx *ent.Tx) error {
		row, err := ed.liveSession(ctx, tx.Client(), sessionID)
		if err != nil {
			return err
		}

		existing, err := tx.Message.Query().
			Where(entmessage.ID(msg.ID)).
			Only(ctx)
		if err == nil {
			// Idempotent re-delivery of an already-recorded message.
			stored = toDomainMessage(existing)
			return nil
		}
		if !ent.IsNotFound(err) {
			return fmt.Errorf("checking message: %w", err)
		}

		// Next transcript position. Messages only leave with their whole
		// session, and concurrent appends serialize through the session
		// version predicate, so the count is a safe monotone.
		count, err := tx.Message.Query().
			Where(entmessage.SessionID(sessionID)).
			Count(ctx)
		if err != nil {
			return fmt.Errorf("counting messages: %w", err)
		}

		create := tx.Message.Create().
			SetID(msg.ID).
			SetSessionID(sessionID).
			SetRole(string(msg.Role)).
			SetContent(msg.Content).
			SetSeq(int64(count) + 1).
			SetCreatedAt(msg.CreatedAt)
		if msg.Metadata != nil {
			create.SetMetadata(msg.Metadata)
		}
		created, err := create.Save(ctx)
		if err != nil {
			return fmt.Errorf("creating message: %w", err)
		}

		if err := ed.touchSession(ctx, tx, row, device); err != nil {
			return err
		}
		stored = toDomainMessage(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// SetState validates and writes one state slot.
func (ed *EntDriver) SetState(ctx context.Context, sessionID, key string, value json.RawMessage, device string) error {
	if err := session.ValidateStateValue(key, value); err != nil {
		return storage.StateError{Key: key, Err: err}
	}

	var decoded any
	if err := json.Unmarshal(value, &decoded); err != nil {
		return storage.StateError{Key: key, Err: err}
	}

	return ed.retry(ctx, func(tx *ent.Tx) error {
		row, err := ed.liveSession(ctx, tx.Client(), sessionID)
		if err != nil {
			return err
		}
		state := row.State
		if state == nil {
			state = map[string]any{}
		}
		state[key] = decoded

		update := tx.Session.UpdateOneID(sessionID).
			Where(entsession.Version(row.Version)).
			SetState(state)
		return ed.finishTouch(ctx, update, row, device)
	})
}

// GetState reads one state slot; a missing key yields nil.
func (ed *EntDriver) GetState(ctx context.Context, sessionID, key string) (json.RawMessage, error) {
	row, err := ed.liveSession(ctx, ed.Client, sessionID)
	if err != nil {
		return nil, err
	}
	v, ok := row.State[key]
	if !ok {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding state value: %w", err)
	}
	return raw, nil
}

// SetTitle sets the session label.
func (ed *EntDriver) SetTitle(ctx context.Context, sessionID, title, device string) error {
	return ed.retry(ctx, func(tx *ent.Tx) error {
		row, err := ed.liveSession(ctx, tx.Client(), sessionID)
		if err != nil {
			return err
		}
		update := tx.Session.UpdateOneID(sessionID).
			Where(entsession.Version(row.Version)).
			SetTitle(title)
		return ed.finishTouch(ctx, update, row, device)
	})
}

// ClaimSession migrates an ephemeral session to the persistent tier.
func (ed *EntDriver) ClaimSession(ctx context.Context, sessionID, newOwnerID, device string) (*session.Session, error) {
	if session.IsGuestOwner(newOwnerID) {
		return nil, storage.InvalidTierError{OwnerID: newOwnerID, Tier: session.TierPersistent}
	}

	err := ed.retry(ctx, func(tx *ent.Tx) error {
		row, err := ed.liveSession(ctx, tx.Client(), sessionID)
		if err != nil {
			return err
		}
		if row.Tier == string(session.TierPersistent) {
			if row.OwnerID == newOwnerID {
				return nil
			}
			return storage.OwnershipConflictError{SessionID: sessionID, OwnerID: newOwnerID, ClaimedBy: row.OwnerID}
		}

		update := tx.Session.UpdateOneID(sessionID).
			Where(entsession.Version(row.Version)).
			SetOwnerID(newOwnerID).
			SetTier(string(session.TierPersistent)).
			ClearExpiresAt()
		return ed.finishTouch(ctx, update, row, device)
	})
	if err != nil {
		return nil, err
	}
	return ed.GetSession(ctx, sessionID)
}

// DeleteSession removes the session, cascading to its messages. Idempotent.
func (ed *EntDriver) DeleteSession(ctx context.Context, id string) error {
	tx, err := ed.Client.Tx(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	if _, err := tx.Message.Delete().Where(entmessage.SessionID(id)).Exec(ctx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("deleting messages: %w", err)
	}
	if _, err := tx.Session.Delete().Where(entsession.ID(id)).Exec(ctx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("deleting session: %w", err)
	}
	return tx.Commit()
}

// Close closes the underlying ent client.
func (ed *EntDriver) Close() error {
	return ed.Client.Close()
}

// retry runs fn in a transaction, retrying on version conflicts.
func (ed *EntDriver) retry(ctx context.Context, fn func(tx *ent.Tx) error) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		tx, err := ed.Client.Tx(ctx)
		if err != nil {
			return fmt.Errorf("starting transaction: %w", err)
		}
		err = fn(tx)
		if err == nil {
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("committing: %w", err)
			}
			return nil
		}
		_ = tx.Rollback()
		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		return err
	}
	return fmt.Errorf("session update: %w", ErrVersionConflict)
}

// liveSession loads a session row, treating expiry like absence.
func (ed *EntDriver) liveSession(ctx context.Context, c *ent.Client, id string) (*ent.Session, error) {
	row, err := c.Session.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, storage.SessionNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}
	if row.ExpiresAt != nil && !ed.now().Before(*row.ExpiresAt) {
		return nil, storage.SessionExpiredError{ID: id, ExpiredAt: *row.ExpiresAt}
	}
	return row, nil
}

// touchSession applies the standard post-mutation bookkeeping to a session
// row under its version condition.
func (ed *EntDriver) touchSession(ctx context.Context, tx *ent.Tx, row *ent.Session, device string) error {
	update := tx.Session.UpdateOneID(row.ID).
		Where(entsession.Version(row.Version))
	return ed.finishTouch(ctx, update, row, device)
}

// finishTouch stamps activity, sliding expiry, origin device, and the version
// increment onto a pending update, translating a missed predicate into
// ErrVersionConflict.
func (ed *EntDriver) finishTouch(ctx context.Context, update *ent.SessionUpdateOne, row *ent.Session, device string) error {
	now := ed.now()
	update.SetLastActiveAt(now).AddVersion(1)
	if row.Tier == string(session.TierEphemeral) {
		update.SetExpiresAt(now.Add(ed.Opts.EphemeralTTL))
	}
	if device != "" {
		update.SetDeviceOrigin(device)
	}
	if _, err := update.Save(ctx); err != nil {
		if ent.IsNotFound(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("updating session: %w", err)
	}
	return nil
}

func (ed *EntDriver) sessionMessages(ctx context.Context, sessionID string) ([]*ent.Message, error) {
	msgs, err := ed.Client.Message.Query().
		Where(entmessage.SessionID(sessionID)).
		Order(ent.Asc(entmessage.FieldSeq)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return msgs, nil
}

func (ed *EntDriver) toDomainSession(row *ent.Session, msgs []*ent.Message) (*session.Session, error) {
	state, err := stateFromMap(row.State)
	if err != nil {
		return nil, err
	}
	s := &session.Session{
		ID:           row.ID,
		OwnerID:      row.OwnerID,
		Tier:         session.Tier(row.Tier),
		Title:        row.Title,
		State:        state,
		CreatedAt:    row.CreatedAt,
		LastActiveAt: row.LastActiveAt,
		DeviceOrigin: row.DeviceOrigin,
		Version:      row.Version,
	}
	if row.ExpiresAt != nil {
		t := *row.ExpiresAt
		s.ExpiresAt = &t
	}
	for _, m := range msgs {
		s.Messages = append(s.Messages, *toDomainMessage(m))
	}
	return s, nil
}

func toDomainMessage(row *ent.Message) *session.Message {
	return &session.Message{
		ID:        row.ID,
		SessionID: row.SessionID,
		Role:      session.Role(row.Role),
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
		Metadata:  row.Metadata,
	}
}

// stateFromMap converts the ent JSON column back into the domain's raw form.
func stateFromMap(m map[string]any) (session.State, error) {
	state := session.State{}
	for k, v := range m {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding state key %q: %w", k, err)
		}
		state[k] = raw
	}
	return state, nil
}
