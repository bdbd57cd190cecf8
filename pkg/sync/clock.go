// Package sync propagates session and profile mutations across an owner's
// active devices. Every mutation is stamped with a hybrid logical clock,
// recorded in the transient op log for replay, fanned out to in-process
// subscribers through the hub, and optionally published to an event stream
// for cross-node delivery.
package sync

import (
	stdsync "sync"
	"time"

	"github.com/motorlogic/garage/pkg/session"
)

// ClockSource issues monotonically increasing hybrid clocks. Wall time is
// sampled per tick; a counter breaks ties inside one microsecond, and the
// source never goes backwards even if the wall clock does.
type ClockSource struct {
	mu      stdsync.Mutex
	last    int64
	counter uint64

	// now is injectable for tests.
	now func() time.Time
}

// NewClockSource creates a clock source backed by the system clock.
func NewClockSource() *ClockSource {
	return NewClockSourceWithNow(time.Now)
}

// NewClockSourceWithNow creates a clock source with an injected time source.
func NewClockSourceWithNow(now func() time.Time) *ClockSource {
	return &ClockSource{now: now}
}

// Next returns a clock strictly greater than any previously issued by this
// source, carrying the origin device as the final tiebreak component.
func (c *ClockSource) Next(device string) session.Clock {
	c.mu.Lock()
	defer c.mu.Unlock()

	micros := c.now().UnixMicro()
	if micros <= c.last {
		micros = c.last
		c.counter++
	} else {
		c.last = micros
		c.counter = 0
	}
	return session.Clock{WallMicros: micros, Counter: c.counter, Device: device}
}
