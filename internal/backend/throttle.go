package backend

import (
	"sync"
	"time"
)

// throttle lets an operation through at most once per interval.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// due reports whether a full interval has passed since the last time it
// returned true. A true result starts the next interval at now.
func (t *throttle) due(now time.Time) bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}
