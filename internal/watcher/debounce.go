package watcher

import (
	"sync"
	"time"
)

// Debouncer reports a path once it has been quiet for delay. Each pending
// path owns one timer that every new event pushes back.
type Debouncer struct {
	delay time.Duration
	fire  func(path string)

	mu      sync.Mutex
	pending map[string]*quietTimer
}

type quietTimer struct {
	timer *time.Timer
}

// NewDebouncer returns a Debouncer that calls fire for each settled path.
func NewDebouncer(delay time.Duration, fire func(path string)) *Debouncer {
	return &Debouncer{
		delay:   delay,
		fire:    fire,
		pending: make(map[string]*quietTimer),
	}
}

// Add records an event for path and pushes its deadline back.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if q, ok := d.pending[path]; ok {
		q.timer.Reset(d.delay)
		return
	}
	q := &quietTimer{}
	q.timer = time.AfterFunc(d.delay, func() { d.settle(path, q) })
	d.pending[path] = q
}

// settle runs on the timer goroutine. A timer that was cancelled or
// replaced after it fired finds itself no longer registered and does nothing.
func (d *Debouncer) settle(path string, q *quietTimer) {
	d.mu.Lock()
	if d.pending[path] != q {
		d.mu.Unlock()
		return
	}
	delete(d.pending, path)
	d.mu.Unlock()

	if d.fire != nil {
		d.fire(path)
	}
}

// Cancel forgets path without reporting it.
func (d *Debouncer) Cancel(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drop(path)
}

// CancelAll forgets every pending path. Used on shutdown.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path := range d.pending {
		d.drop(path)
	}
}

func (d *Debouncer) drop(path string) {
	if q, ok := d.pending[path]; ok {
		q.timer.Stop()
		delete(d.pending, path)
	}
}

// Pending returns how many paths are waiting to settle.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// IsPending reports whether path is waiting to settle.
func (d *Debouncer) IsPending(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[path]
	return ok
}
