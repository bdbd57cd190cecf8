package sync

import (
	"errors"
	stdsync "sync"

	"github.com/motorlogic/garage/pkg/session"
)

// ErrResyncRequired is returned when a device's offline queue exceeded its
// bound and incremental replay is no longer safe; the device must fetch a
// full snapshot instead of draining the queue.
var ErrResyncRequired = errors.New("offline queue overflowed, full resync required")

// ConnState is a device connection's lifecycle state.
type ConnState string

const (
	StateDisconnected ConnState = "disconnected"
	StateConnecting   ConnState = "connecting"
	StateSynced       ConnState = "synced"
)

// DefaultOfflineQueueLimit bounds how many mutations a disconnected device
// may buffer before being forced into a full resync.
const DefaultOfflineQueueLimit = 512

// Device tracks one device's sync state: its connection lifecycle, the
// clock of the last operation it has seen, and the bounded queue of
// mutations it performed while disconnected.
type Device struct {
	ID      string
	OwnerID string

	mu         stdsync.Mutex
	state      ConnState
	lastSeen   session.Clock
	queue      []*session.SyncOperation
	queueLimit int
	overflowed bool
}

// NewDevice creates a device tracker in the disconnected state with the
// default offline queue bound.
func NewDevice(id, ownerID string) *Device {
	return NewDeviceWithQueueLimit(id, ownerID, DefaultOfflineQueueLimit)
}

// NewDeviceWithQueueLimit creates a device tracker with an explicit offline
// queue bound. Non-positive limits fall back to the default.
func NewDeviceWithQueueLimit(id, ownerID string, limit int) *Device {
	if limit <= 0 {
		limit = DefaultOfflineQueueLimit
	}
	return &Device{
		ID:         id,
		OwnerID:    ownerID,
		state:      StateDisconnected,
		queueLimit: limit,
	}
}

// State returns the current connection state.
func (d *Device) State() ConnState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// LastSeen returns the clock of the newest operation the device has applied.
func (d *Device) LastSeen() session.Clock {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastSeen
}

// Observe advances the last-seen clock after applying an incoming operation.
func (d *Device) Observe(clock session.Clock) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lastSeen.Less(clock) {
		d.lastSeen = clock
	}
}

// BeginConnect moves the device into the connecting state.
func (d *Device) BeginConnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateConnecting
}

// MarkSynced moves the device into the synced state after replay completes.
func (d *Device) MarkSynced() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateSynced
}

// MarkDisconnected records network loss. Subsequent writes queue locally.
func (d *Device) MarkDisconnected() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateDisconnected
}

// QueueWhileOffline buffers a mutation performed while disconnected. Once
// the bound is exceeded the queue is discarded and every subsequent enqueue
// (and the eventual drain) reports ErrResyncRequired.
func (d *Device) QueueWhileOffline(op *session.SyncOperation) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.overflowed {
		return ErrResyncRequired
	}
	if len(d.queue) >= d.queueLimit {
		d.overflowed = true
		d.queue = nil
		return ErrResyncRequired
	}
	d.queue = append(d.queue, op)
	return nil
}

// DrainQueue hands back the offline queue for replay and clears it. Returns
// ErrResyncRequired if the bound was exceeded while offline.
func (d *Device) DrainQueue() ([]*session.SyncOperation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.overflowed {
		d.overflowed = false
		return nil, ErrResyncRequired
	}
	q := d.queue
	d.queue = nil
	return q, nil
}

// ResetAfterSnapshot clears queue and overflow state after a full resync,
// positioning the device at the snapshot's clock.
func (d *Device) ResetAfterSnapshot(asOf session.Clock) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queue = nil
	d.overflowed = false
	d.lastSeen = asOf
	d.state = StateSynced
}
