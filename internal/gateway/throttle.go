package gateway

import (
	"sync"
	"time"
)

// throttle enforces a minimum interval between on-demand operations. Unlike a
// blocking rate limiter it simply rejects calls that arrive too soon.
type throttle struct {
	min time.Duration

	mu   sync.Mutex
	last time.Time
}

func newThrottle(min time.Duration) *throttle {
	return &throttle{min: min}
}

// allow reports whether enough time has passed since the last permitted call,
// and records the call when it has.
func (t *throttle) allow() bool {
	if t == nil || t.min <= 0 {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	if !t.last.IsZero() && now.Sub(t.last) < t.min {
		return false
	}
	t.last = now
	return true
}
