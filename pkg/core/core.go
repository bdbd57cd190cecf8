// Package core is the facade the rest of the system talks to: it composes
// the session store, the context builder, and the sync engine so that every
// mutation flows through one place and emits exactly one sync operation.
// The external conversational engine interacts with this package alone,
// through AssembleContext and CommitTurn.
package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/motorlogic/garage/pkg/memctx"
	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

// maxDerivedTitleRunes caps the auto-derived session title length.
const maxDerivedTitleRunes = 60

// RetentionPolicy receives account-level retention preferences. The
// lifecycle sweeper implements it.
type RetentionPolicy interface {
	SetOwnerRetention(ownerID string, d time.Duration)
}

// Core wires the store, context builder, and sync engine together.
type Core struct {
	store     storage.Store
	engine    *gsync.Engine
	builder   *memctx.Builder
	retention RetentionPolicy
	logger    *zap.Logger
}

// New assembles the core facade.
func New(store storage.Store, engine *gsync.Engine, builder *memctx.Builder, logger *zap.Logger) *Core {
	return &Core{
		store:   store,
		engine:  engine,
		builder: builder,
		logger:  logger,
	}
}

// Engine exposes the sync engine for subscription endpoints.
func (c *Core) Engine() *gsync.Engine {
	return c.engine
}

// AttachRetentionPolicy wires the lifecycle sweeper in, so retention
// preferences set through the facade take effect on the next sweep.
func (c *Core) AttachRetentionPolicy(p RetentionPolicy) {
	c.retention = p
}

// SetOwnerRetention stores an account's retention preference: persistent
// sessions inactive longer than the given number of days are purged. Zero
// days clears the preference. Guest owners are refused; the ephemeral TTL
// governs them instead.
func (c *Core) SetOwnerRetention(ownerID string, days int) error {
	if session.IsGuestOwner(ownerID) {
		return storage.InvalidTierError{OwnerID: ownerID, Tier: session.TierPersistent}
	}
	if c.retention == nil {
		return errors.New("no retention policy attached")
	}
	c.retention.SetOwnerRetention(ownerID, time.Duration(days)*24*time.Hour)
	c.logger.Info("owner retention preference updated",
		zap.String("owner_id", ownerID),
		zap.Int("days", days),
	)
	return nil
}

// StartSession creates a session in the tier the owner id implies.
func (c *Core) StartSession(ctx context.Context, ownerID string, tier session.Tier, device string) (*session.Session, error) {
	s, err := c.store.CreateSession(ctx, ownerID, tier, device)
	if err != nil {
		return nil, err
	}
	if _, err := c.engine.Record(ctx, session.OpSessionCreate, session.TargetSession, s.ID, s.OwnerID, device, nil); err != nil {
		return nil, err
	}
	return s, nil
}

// GetSession returns one session with messages.
func (c *Core) GetSession(ctx context.Context, id string) (*session.Session, error) {
	return c.store.GetSession(ctx, id)
}

// ListSessions returns the owner's sessions, newest activity first.
func (c *Core) ListSessions(ctx context.Context, ownerID string) ([]*session.Session, error) {
	return c.store.ListSessions(ctx, ownerID)
}

// AssembleContext builds the bounded context for the conversational engine.
func (c *Core) AssembleContext(ctx context.Context, sessionID string) (*memctx.Context, error) {
	return c.builder.Build(ctx, sessionID)
}

// TurnResult reports what a committed turn stored.
type TurnResult struct {
	UserMessage      *session.Message `json:"user_message"`
	AssistantMessage *session.Message `json:"assistant_message"`
}

// CommitTurn records one completed exchange: the user message, the engine's
// reply, and any state updates the engine asked to persist. Each write is
// individually atomic and emits its own sync operation; a client
// disconnecting mid-turn never rolls back messages already appended.
func (c *Core) CommitTurn(ctx context.Context, sessionID string, userMsg, assistantMsg session.Message, stateUpdates map[string]json.RawMessage, device string) (*TurnResult, error) {
	userMsg.Role = session.RoleUser
	storedUser, err := c.appendMessage(ctx, sessionID, userMsg, device)
	if err != nil {
		return nil, err
	}

	assistantMsg.Role = session.RoleAssistant
	storedAssistant, err := c.appendMessage(ctx, sessionID, assistantMsg, device)
	if err != nil {
		return nil, err
	}

	for key, value := range stateUpdates {
		if err := c.SetState(ctx, sessionID, key, value, device); err != nil {
			return nil, err
		}
	}

	if err := c.deriveTitle(ctx, sessionID, storedUser.Content, device); err != nil {
		return nil, err
	}

	return &TurnResult{UserMessage: storedUser, AssistantMessage: storedAssistant}, nil
}

// AppendMessage appends one message and emits its sync operation.
func (c *Core) AppendMessage(ctx context.Context, sessionID string, msg session.Message, device string) (*session.Message, error) {
	return c.appendMessage(ctx, sessionID, msg, device)
}

func (c *Core) appendMessage(ctx context.Context, sessionID string, msg session.Message, device string) (*session.Message, error) {
	stored, err := c.store.AppendMessage(ctx, sessionID, msg, device)
	if err != nil {
		return nil, err
	}
	owner, err := c.sessionOwner(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := c.engine.Record(ctx, session.OpMessageAppend, session.TargetSession, sessionID, owner, device, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// SetState writes one state slot and emits its sync operation. Activating a
// saved profile also records the use for LRU bookkeeping.
func (c *Core) SetState(ctx context.Context, sessionID, key string, value json.RawMessage, device string) error {
	if err := c.store.SetState(ctx, sessionID, key, value, device); err != nil {
		return err
	}
	owner, err := c.sessionOwner(ctx, sessionID)
	if err != nil {
		return err
	}
	delta := session.StateDelta{Key: key, Value: value}
	if _, err := c.engine.Record(ctx, session.OpStateSet, session.TargetSession, sessionID, owner, device, delta); err != nil {
		return err
	}

	if key == session.StateKeyActiveVehicle {
		c.touchActivatedProfile(ctx, owner, value, device)
	}
	return nil
}

// GetState reads one state slot.
func (c *Core) GetState(ctx context.Context, sessionID, key string) (json.RawMessage, error) {
	return c.store.GetState(ctx, sessionID, key)
}

// SetTitle sets the session label and emits its sync operation.
func (c *Core) SetTitle(ctx context.Context, sessionID, title, device string) error {
	if err := c.store.SetTitle(ctx, sessionID, title, device); err != nil {
		return err
	}
	owner, err := c.sessionOwner(ctx, sessionID)
	if err != nil {
		return err
	}
	_, err = c.engine.Record(ctx, session.OpSessionTitle, session.TargetSession, sessionID, owner, device, session.TitleDelta{Title: title})
	return err
}

// ClaimSession migrates an ephemeral session to the authenticated owner.
func (c *Core) ClaimSession(ctx context.Context, sessionID, newOwnerID, device string) (*session.Session, error) {
	s, err := c.store.ClaimSession(ctx, sessionID, newOwnerID, device)
	if err != nil {
		return nil, err
	}
	delta := session.ClaimDelta{NewOwnerID: newOwnerID}
	if _, err := c.engine.Record(ctx, session.OpSessionClaim, session.TargetSession, sessionID, newOwnerID, device, delta); err != nil {
		return nil, err
	}
	return s, nil
}

// EndSession deletes a session immediately. This is the best-effort fast
// path for an app closing; the TTL sweep remains the authoritative backstop.
// Ending a session that no longer exists is a no-op.
func (c *Core) EndSession(ctx context.Context, sessionID, device string) error {
	owner, err := c.sessionOwner(ctx, sessionID)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil
		}
		return err
	}
	if err := c.store.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	_, err = c.engine.Record(ctx, session.OpSessionDelete, session.TargetSession, sessionID, owner, device, nil)
	return err
}

// AddProfile saves a profile and emits its sync operation.
func (c *Core) AddProfile(ctx context.Context, p *session.Profile, device string) (*session.Profile, error) {
	stored, err := c.store.AddProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	if _, err := c.engine.Record(ctx, session.OpProfileAdd, session.TargetProfile, stored.ID, stored.OwnerID, device, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// ListProfiles returns the owner's profiles, most recently used first.
func (c *Core) ListProfiles(ctx context.Context, ownerID string) ([]*session.Profile, error) {
	return c.store.ListProfiles(ctx, ownerID)
}

// DeleteProfile removes a profile and emits its sync operation.
func (c *Core) DeleteProfile(ctx context.Context, profileID, ownerID, device string) error {
	if err := c.store.DeleteProfile(ctx, profileID); err != nil {
		return err
	}
	_, err := c.engine.Record(ctx, session.OpProfileDelete, session.TargetProfile, profileID, ownerID, device, nil)
	return err
}

// ExportOwnerData serializes everything the owner holds, stamped with a
// clock so a device restoring from it can resume incremental sync.
func (c *Core) ExportOwnerData(ctx context.Context, ownerID string) (*session.Snapshot, error) {
	snap, err := c.store.ExportOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	snap.AsOf = c.engine.Stamp("")
	return snap, nil
}

// EraseOwnerData irreversibly deletes the owner's sessions, profiles, and
// queued sync operations (right to erasure).
func (c *Core) EraseOwnerData(ctx context.Context, ownerID string) error {
	return c.store.EraseOwner(ctx, ownerID)
}

// Subscribe registers a device for its owner's live sync operations.
func (c *Core) Subscribe(ownerID, device string) *gsync.Subscription {
	return c.engine.Hub().Subscribe(ownerID, device)
}

// OpsSince returns the operations a reconnecting device missed.
func (c *Core) OpsSince(ctx context.Context, ownerID string, since session.Clock, device string) ([]*session.SyncOperation, error) {
	return c.engine.OpsSince(ctx, ownerID, since, device)
}

// ReplayQueued applies a device's offline queue, returning any writes that
// lost conflict resolution.
func (c *Core) ReplayQueued(ctx context.Context, ownerID string, queued []*session.SyncOperation) ([]gsync.Conflict, error) {
	return c.engine.Replay(ctx, c, ownerID, queued)
}

// ApplyOp implements sync.Applier: it applies one replayed operation to the
// authoritative store. Operation kinds that only make sense interactively
// (create, claim) are rejected; offline devices surface those through the
// snapshot path instead.
func (c *Core) ApplyOp(ctx context.Context, op *session.SyncOperation) error {
	switch op.Kind {
	case session.OpMessageAppend:
		var msg session.Message
		if err := json.Unmarshal(op.Delta, &msg); err != nil {
			return fmt.Errorf("decoding message delta: %w", err)
		}
		_, err := c.store.AppendMessage(ctx, op.TargetID, msg, op.OriginDevice)
		return err
	case session.OpStateSet:
		var delta session.StateDelta
		if err := json.Unmarshal(op.Delta, &delta); err != nil {
			return fmt.Errorf("decoding state delta: %w", err)
		}
		return c.store.SetState(ctx, op.TargetID, delta.Key, delta.Value, op.OriginDevice)
	case session.OpSessionTitle:
		var delta session.TitleDelta
		if err := json.Unmarshal(op.Delta, &delta); err != nil {
			return fmt.Errorf("decoding title delta: %w", err)
		}
		return c.store.SetTitle(ctx, op.TargetID, delta.Title, op.OriginDevice)
	case session.OpSessionDelete:
		return c.store.DeleteSession(ctx, op.TargetID)
	case session.OpProfileAdd:
		var p session.Profile
		if err := json.Unmarshal(op.Delta, &p); err != nil {
			return fmt.Errorf("decoding profile delta: %w", err)
		}
		_, err := c.store.AddProfile(ctx, &p)
		return err
	case session.OpProfileDelete:
		return c.store.DeleteProfile(ctx, op.TargetID)
	case session.OpProfileTouch:
		return c.store.TouchProfile(ctx, op.TargetID)
	default:
		return fmt.Errorf("op kind %q cannot be replayed", op.Kind)
	}
}

// sessionOwner resolves the owner for op attribution without pulling the
// message bodies.
func (c *Core) sessionOwner(ctx context.Context, sessionID string) (string, error) {
	s, err := c.store.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return s.OwnerID, nil
}

// touchActivatedProfile records a profile use when a state write activates
// it. Best effort: a dangling reference is not an error here, it degrades at
// context-assembly time instead.
func (c *Core) touchActivatedProfile(ctx context.Context, ownerID string, value json.RawMessage, device string) {
	var av session.ActiveVehicle
	if err := json.Unmarshal(value, &av); err != nil || av.ProfileID == "" {
		return
	}
	if err := c.store.TouchProfile(ctx, av.ProfileID); err != nil {
		if !storage.IsNotFound(err) {
			c.logger.Warn("recording profile use failed",
				zap.String("profile_id", av.ProfileID),
				zap.Error(err),
			)
		}
		return
	}
	if _, err := c.engine.Record(ctx, session.OpProfileTouch, session.TargetProfile, av.ProfileID, ownerID, device, nil); err != nil {
		c.logger.Warn("recording profile touch op failed",
			zap.String("profile_id", av.ProfileID),
			zap.Error(err),
		)
	}
}

// deriveTitle labels an untitled session from its first user message.
func (c *Core) deriveTitle(ctx context.Context, sessionID, firstUserContent, device string) error {
	s, err := c.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if s.Title != "" || len(s.Messages) > 2 {
		return nil
	}
	title := deriveTitle(firstUserContent)
	if title == "" {
		return nil
	}
	return c.SetTitle(ctx, sessionID, title, device)
}

// deriveTitle condenses the first user message into a short label.
func deriveTitle(content string) string {
	content = strings.TrimSpace(content)
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = strings.TrimSpace(content[:i])
	}
	runes := []rune(content)
	if len(runes) > maxDerivedTitleRunes {
		content = strings.TrimSpace(string(runes[:maxDerivedTitleRunes])) + "…"
	}
	return content
}
