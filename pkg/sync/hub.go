package sync

import (
	stdsync "sync"

	"go.uber.org/zap"

	"github.com/motorlogic/garage/pkg/session"
)

// subscriptionBuffer is the per-device channel capacity. A subscriber that
// falls this far behind is closed and must resubscribe (and replay from its
// last clock), so a stalled device can never block the publish path.
const subscriptionBuffer = 256

// Subscription is one device's live feed of its owner's operations. The
// device's own operations are suppressed (no echo).
type Subscription struct {
	OwnerID string
	Device  string

	ch     chan *session.SyncOperation
	hub    *Hub
	closed bool
}

// Ops returns the channel of incoming operations. The channel is closed when
// the subscription is cancelled or evicted for falling behind.
func (s *Subscription) Ops() <-chan *session.SyncOperation {
	return s.ch
}

// Close cancels the subscription.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub fans operations out to an owner's subscribed devices. It is purely
// in-process; cross-node propagation rides the eventstream publisher and
// re-enters through Publish on the receiving node.
type Hub struct {
	mu     stdsync.RWMutex
	owners map[string]map[*Subscription]struct{}
	logger *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		owners: make(map[string]map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscribe registers a device for its owner's operations.
func (h *Hub) Subscribe(ownerID, device string) *Subscription {
	sub := &Subscription{
		OwnerID: ownerID,
		Device:  device,
		ch:      make(chan *session.SyncOperation, subscriptionBuffer),
		hub:     h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.owners[ownerID] == nil {
		h.owners[ownerID] = make(map[*Subscription]struct{})
	}
	h.owners[ownerID][sub] = struct{}{}
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(sub)
}

func (h *Hub) dropLocked(sub *Subscription) {
	if sub.closed {
		return
	}
	sub.closed = true
	if subs, ok := h.owners[sub.OwnerID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.owners, sub.OwnerID)
		}
	}
	close(sub.ch)
}

// Publish delivers one operation to every subscribed device of the owner
// except the one that originated it. Delivery never blocks: a subscriber
// with a full buffer is evicted and will resync on reconnect.
func (h *Hub) Publish(op *session.SyncOperation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var evict []*Subscription
	for sub := range h.owners[op.OwnerID] {
		if sub.Device == op.OriginDevice {
			continue // echo suppression
		}
		select {
		case sub.ch <- op:
		default:
			evict = append(evict, sub)
		}
	}
	for _, sub := range evict {
		h.logger.Warn("subscriber fell behind, evicting",
			zap.String("owner_id", sub.OwnerID),
			zap.String("device", sub.Device),
		)
		h.dropLocked(sub)
	}
}

// ActiveDevices returns the count of live subscriptions for an owner.
func (h *Hub) ActiveDevices(ownerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.owners[ownerID])
}
