package cursorwire

import (
	"sync"
	"time"
)

// Throttler rate-limits position samples, trailing-edge only: the first
// sample in a burst arms the window but is not sent; each later sample
// overwrites the pending one; when the window elapses the most recent
// sample is flushed. At most one flush per window, and the final resting
// position is always delivered.
//
// A Throttler is bound to one (room, username) scope. When either
// changes, the owner must Stop this instance and create a new one so a
// stale flush cannot publish under an old identity or room.
type Throttler struct {
	mu       sync.Mutex
	interval time.Duration
	flush    func(x, y int)
	timer    *time.Timer
	pending  bool
	stopped  bool
	x, y     int
}

// NewThrottler creates a throttler that calls flush with the latest
// sample once per interval.
func NewThrottler(interval time.Duration, flush func(x, y int)) *Throttler {
	return &Throttler{interval: interval, flush: flush}
}

// Sample records one position sample. Never blocks.
func (t *Throttler) Sample(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.x, t.y = x, y
	if t.pending {
		return
	}
	t.pending = true
	t.timer = time.AfterFunc(t.interval, t.fire)
}

func (t *Throttler) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.pending = false
	x, y := t.x, t.y
	t.mu.Unlock()
	t.flush(x, y)
}

// Stop cancels any pending flush. Idempotent; a stopped throttler
// silently drops further samples.
func (t *Throttler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
}
