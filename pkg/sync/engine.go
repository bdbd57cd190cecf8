package sync

import (
	"context"
	"encoding/json"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/motorlogic/garage/pkg/eventstream"
	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
)

// publishRetryBuffer bounds the transport retry queue. Operations are never
// lost when it overflows: the op log remains the replay source of truth and
// is only trimmed by the retention sweep.
const publishRetryBuffer = 1024

// Applier applies a replayed operation to authoritative state. The core
// facade implements it; the indirection keeps the engine free of a
// dependency on the store's write paths.
type Applier interface {
	ApplyOp(ctx context.Context, op *session.SyncOperation) error
}

// Conflict records a write that lost last-write-wins resolution during an
// offline replay. Losing user-authored values are kept so they can be
// surfaced rather than silently discarded.
type Conflict struct {
	Field      string                 `json:"field"`
	LosingOp   *session.SyncOperation `json:"losing_op"`
	WinnerSeen session.Clock          `json:"winner_seen"`
}

// Engine stamps, records, and propagates sync operations.
type Engine struct {
	ops      storage.OpLog
	clock    *ClockSource
	hub      *Hub
	pub      eventstream.Publisher
	policies FieldPolicies
	logger   *zap.Logger

	// fieldClocks caches the latest applied clock per owner/target/field
	// for conflict resolution; cold entries fall back to an op-log scan.
	mu          stdsync.Mutex
	fieldClocks map[string]session.Clock

	retry chan *eventstream.OpRecordedEvent
	done  chan struct{}
	wg    stdsync.WaitGroup
}

// Config assembles an Engine.
type Config struct {
	Ops       storage.OpLog
	Clock     *ClockSource
	Hub       *Hub
	Publisher eventstream.Publisher
	Policies  FieldPolicies
	Logger    *zap.Logger
}

// NewEngine creates the engine and starts its transport retry worker.
func NewEngine(c Config) *Engine {
	if c.Clock == nil {
		c.Clock = NewClockSource()
	}
	if c.Hub == nil {
		c.Hub = NewHub(c.Logger)
	}
	if c.Policies.Default == "" && c.Policies.PerField == nil {
		c.Policies = DefaultFieldPolicies()
	}

	e := &Engine{
		ops:         c.Ops,
		clock:       c.Clock,
		hub:         c.Hub,
		pub:         c.Publisher,
		policies:    c.Policies,
		logger:      c.Logger,
		fieldClocks: make(map[string]session.Clock),
		retry:       make(chan *eventstream.OpRecordedEvent, publishRetryBuffer),
		done:        make(chan struct{}),
	}
	if e.pub != nil {
		e.wg.Add(1)
		go e.retryLoop()
	}
	return e
}

// Hub exposes the in-process fan-out for subscription endpoints.
func (e *Engine) Hub() *Hub {
	return e.hub
}

// Stamp issues a fresh clock without recording an operation. Snapshots use
// it so a restoring device knows where incremental sync resumes.
func (e *Engine) Stamp(device string) session.Clock {
	return e.clock.Next(device)
}

// Close stops the retry worker and closes the publisher.
func (e *Engine) Close() error {
	close(e.done)
	e.wg.Wait()
	if e.pub != nil {
		return e.pub.Close()
	}
	return nil
}

// Record stamps and durably logs one mutation, then fans it out. The record
// step is on the mutation path and must succeed; fan-out is asynchronous and
// may lag without affecting correctness.
func (e *Engine) Record(ctx context.Context, kind session.OpKind, targetType session.TargetType, targetID, ownerID, device string, delta any) (*session.SyncOperation, error) {
	op := &session.SyncOperation{
		OpID:         uuid.NewString(),
		OwnerID:      ownerID,
		TargetID:     targetID,
		TargetType:   targetType,
		Kind:         kind,
		OriginDevice: device,
		Clock:        e.clock.Next(device),
		CreatedAt:    time.Now(),
	}
	if delta != nil {
		raw, err := json.Marshal(delta)
		if err != nil {
			return nil, fmt.Errorf("encoding op delta: %w", err)
		}
		op.Delta = raw
	}

	if err := e.ops.AppendOp(ctx, op); err != nil {
		return nil, fmt.Errorf("recording sync op: %w", err)
	}
	e.noteApplied(op)
	e.hub.Publish(op)
	e.publish(ctx, op)
	return op, nil
}

// OpsSince returns the owner's operations after the given clock, excluding
// those originated by excludeDevice, in clock order. This is the reconnect
// replay path.
func (e *Engine) OpsSince(ctx context.Context, ownerID string, since session.Clock, excludeDevice string) ([]*session.SyncOperation, error) {
	ops, err := e.ops.OpsSince(ctx, ownerID, since)
	if err != nil {
		return nil, err
	}
	if excludeDevice == "" {
		return ops, nil
	}
	out := ops[:0]
	for _, op := range ops {
		if op.OriginDevice != excludeDevice {
			out = append(out, op)
		}
	}
	return out, nil
}

// Replay applies a device's offline-queued operations in clock order,
// resolving conflicts per field policy. Appends always apply (the transcript
// is append-only and interleaves by receipt order); scalar fields apply only
// when the queued clock beats the latest applied write to that field.
// Applied operations land in the op log like live writes, so a device that
// was offline during the replay still picks them up via OpsSince.
// Losing writes are returned, and logged when their field's policy asks for it.
func (e *Engine) Replay(ctx context.Context, applier Applier, ownerID string, queued []*session.SyncOperation) ([]Conflict, error) {
	var conflicts []Conflict
	for _, op := range queued {
		if op.OwnerID != ownerID {
			return conflicts, fmt.Errorf("queued op %s targets owner %s, not %s", op.OpID, op.OwnerID, ownerID)
		}

		field := fieldKey(op)
		if field != "" {
			latest, err := e.latestFieldClock(ctx, op.OwnerID, op.TargetID, field)
			if err != nil {
				return conflicts, err
			}
			if !latest.IsZero() && op.Clock.Less(latest) {
				conflict := Conflict{Field: field, LosingOp: op, WinnerSeen: latest}
				conflicts = append(conflicts, conflict)
				if e.policies.For(field) == LastWriteWinsLogged {
					e.logger.Warn("discarding stale write after conflict resolution",
						zap.String("field", field),
						zap.String("target_id", op.TargetID),
						zap.String("losing_device", op.OriginDevice),
						zap.String("losing_clock", op.Clock.String()),
						zap.String("winning_clock", latest.String()),
						zap.ByteString("losing_delta", op.Delta),
					)
				}
				continue
			}
		}

		if err := applier.ApplyOp(ctx, op); err != nil {
			if storage.IsNotFound(err) {
				// The target vanished while the device was offline
				// (expired or deleted); the op is moot, not fatal.
				continue
			}
			return conflicts, fmt.Errorf("applying queued op %s: %w", op.OpID, err)
		}
		if err := e.ops.AppendOp(ctx, op); err != nil {
			return conflicts, fmt.Errorf("logging replayed op %s: %w", op.OpID, err)
		}
		e.noteApplied(op)
		e.hub.Publish(op)
		e.publish(ctx, op)
	}
	return conflicts, nil
}

func (e *Engine) noteApplied(op *session.SyncOperation) {
	field := fieldKey(op)
	if field == "" {
		return
	}
	key := op.OwnerID + "\x00" + op.TargetID + "\x00" + field
	e.mu.Lock()
	if cur, ok := e.fieldClocks[key]; !ok || cur.Less(op.Clock) {
		e.fieldClocks[key] = op.Clock
	}
	e.mu.Unlock()
}

func (e *Engine) latestFieldClock(ctx context.Context, ownerID, targetID, field string) (session.Clock, error) {
	key := ownerID + "\x00" + targetID + "\x00" + field
	e.mu.Lock()
	clock, ok := e.fieldClocks[key]
	e.mu.Unlock()
	if ok {
		return clock, nil
	}

	// Cold cache (e.g. after restart): reconstruct from the retained log.
	ops, err := e.ops.OpsSince(ctx, ownerID, session.Clock{})
	if err != nil {
		return session.Clock{}, fmt.Errorf("scanning op log: %w", err)
	}
	var latest session.Clock
	for _, op := range ops {
		if op.TargetID == targetID && fieldKey(op) == field && latest.Less(op.Clock) {
			latest = op.Clock
		}
	}
	e.mu.Lock()
	e.fieldClocks[key] = latest
	e.mu.Unlock()
	return latest, nil
}

// publish hands the op to the eventstream, queuing it for retry when the
// transport is unavailable. Transport failure is invisible to callers; the
// op log keeps the operation queryable regardless.
func (e *Engine) publish(ctx context.Context, op *session.SyncOperation) {
	if e.pub == nil {
		return
	}
	event := &eventstream.OpRecordedEvent{
		SchemaVersion: eventstream.SchemaVersionV1,
		EventType:     eventstream.EventTypeOpRecorded,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now(),
		Op:            *op,
	}
	if err := e.pub.PublishOp(ctx, event); err != nil {
		e.logger.Warn("sync transport unavailable, queuing for retry",
			zap.String("op_id", op.OpID),
			zap.Error(err),
		)
		select {
		case e.retry <- event:
		default:
			// Retry buffer full. The op remains in the log and will
			// reach remote nodes via the replay path instead.
			e.logger.Error("publish retry buffer full, relying on op log replay",
				zap.String("op_id", op.OpID),
			)
		}
	}
}

func (e *Engine) retryLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	var pending []*eventstream.OpRecordedEvent
	for {
		select {
		case <-e.done:
			return
		case ev := <-e.retry:
			pending = append(pending, ev)
		case <-ticker.C:
			remaining := pending[:0]
			for _, ev := range pending {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				err := e.pub.PublishOp(ctx, ev)
				cancel()
				if err != nil {
					remaining = append(remaining, ev)
				}
			}
			pending = remaining
		}
	}
}

func unmarshalDelta(delta json.RawMessage, into any) error {
	if len(delta) == 0 {
		return fmt.Errorf("empty delta")
	}
	return json.Unmarshal(delta, into)
}
