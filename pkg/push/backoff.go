package push

import "time"

// Reconnect delay bounds. The delay doubles after each failed attempt and
// resets after a successful connection.
const (
	DefaultBackoffBase = 1 * time.Second
	DefaultBackoffMax  = 30 * time.Second
)

// backoff is an exponential reconnect timer.
type backoff struct {
	base time.Duration
	max  time.Duration
	cur  time.Duration
}

func newBackoff(base, max time.Duration) *backoff {
	if base <= 0 {
		base = DefaultBackoffBase
	}
	if max < base {
		max = base
	}
	return &backoff{base: base, max: max, cur: base}
}

// Next returns the current delay and doubles it up to the cap.
func (b *backoff) Next() time.Duration {
	d := b.cur
	b.cur *= 2
	if b.cur > b.max {
		b.cur = b.max
	}
	return d
}

// Reset restarts the window at the base delay.
func (b *backoff) Reset() {
	b.cur = b.base
}
