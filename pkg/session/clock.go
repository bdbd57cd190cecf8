package session

import "fmt"

// Clock is the logical clock stamped onto every sync operation. It is a
// hybrid clock: wall-clock microseconds ordered first, a per-process counter
// breaking ties between operations issued in the same microsecond, and the
// origin device id as the final deterministic tiebreak so that two devices
// can never produce incomparable clocks.
type Clock struct {
	WallMicros int64  `json:"wall_micros"`
	Counter    uint64 `json:"counter"`
	Device     string `json:"device,omitempty"`
}

// Less reports whether c is strictly ordered before other.
func (c Clock) Less(other Clock) bool {
	if c.WallMicros != other.WallMicros {
		return c.WallMicros < other.WallMicros
	}
	if c.Counter != other.Counter {
		return c.Counter < other.Counter
	}
	return c.Device < other.Device
}

// IsZero reports whether the clock is unset (a device that has never synced).
func (c Clock) IsZero() bool {
	return c.WallMicros == 0 && c.Counter == 0 && c.Device == ""
}

func (c Clock) String() string {
	return fmt.Sprintf("%d.%d@%s", c.WallMicros, c.Counter, c.Device)
}
