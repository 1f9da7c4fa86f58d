package memdb

import "sync/atomic"

// Clock is the monotonic logical clock stamping every notification.
//
// Sequence numbers make the notification stream deterministic and
// replayable for a given call pattern; wall time never participates in
// ordering. Safe for concurrent use, though in practice only the
// writer goroutine calls Next.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number. Each call returns a unique,
// strictly increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the latest issued sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
