package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// LoopScheduler posts functions to a later turn of the Fyne event loop.
// It satisfies enlarge.Scheduler.
type LoopScheduler struct {
	post func(func())
}

// NewLoopScheduler creates a scheduler backed by fyne.Do. The goroutine
// makes sure fn never runs inside the callback that posted it.
func NewLoopScheduler() *LoopScheduler {
	return &LoopScheduler{post: func(fn func()) {
		go fyne.Do(fn)
	}}
}

// Post runs fn after the current callback has returned
func (s *LoopScheduler) Post(fn func()) {
	if fn == nil {
		return
	}
	s.post(fn)
}

// Debouncer runs fn once calls to Trigger have been quiet for delay.
// fn runs on a timer goroutine; UI work inside it must go through fyne.Do.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
	gen   int
}

// NewDebouncer creates a debouncer
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger restarts the idle timer
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// SetDelay changes the idle time used by the next Trigger
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.mu.Lock()
	d.delay = delay
	d.mu.Unlock()
}

// Delay returns the idle time
func (d *Debouncer) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

// Stop cancels a pending run and reports whether there was one
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// fire runs fn unless a later Trigger or Stop superseded this timer
func (d *Debouncer) fire(gen int) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	fn := d.fn
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
