package service

import (
	"sync"
	"time"
)

// SearchDebounceDelay is the settle window after the last keystroke.
const SearchDebounceDelay = 200 * time.Millisecond

// Debouncer coalesces bursts of calls into one trailing invocation: each
// Trigger cancels the pending one, so only the last call inside the window
// runs. Used to avoid rebuilding the search index on every keystroke.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the delay, cancelling any pending invocation.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
