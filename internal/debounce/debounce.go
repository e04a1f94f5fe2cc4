// Package debounce delays a call until input has been quiet for a while.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs fn once per pause: each Trigger cancels the pending call and
// schedules a new one. At most one call is pending at any time.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// New returns a Debouncer that runs fn after delay of inactivity.
func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger cancels any pending call and schedules a fresh one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A Trigger, Stop, or Flush after this timer was armed supersedes it.
		if gen != d.gen || d.timer == nil {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Flush runs the pending call immediately, if any.
func (d *Debouncer) Flush() {
	if d.cancel() {
		d.fn()
	}
}

// Stop cancels the pending call without running it.
func (d *Debouncer) Stop() {
	d.cancel()
}

func (d *Debouncer) cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}
