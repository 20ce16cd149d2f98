// Package notify implements the transient notification shown when loading fails.
package notify

import (
	"strings"
	"sync"
	"time"
)

// DefaultDelay is how long a toast stays visible without further updates.
const DefaultDelay = 3 * time.Second

// Toast holds at most one visible message and auto-hides it after a delay.
// Every Show cancels the pending auto-hide before scheduling a new one, so a toast never
// has more than one live timer. Close cancels the timer for good.
type Toast struct {
	mu      sync.Mutex
	delay   time.Duration
	sched   Scheduler
	onHide  func(message string)
	message string
	visible bool
	timer   Timer
	gen     uint64
	closed  bool
}

type Option func(*Toast)

func WithScheduler(s Scheduler) Option {
	return func(t *Toast) { t.sched = s }
}

// WithOnHide registers a callback run after the auto-hide timer clears the toast.
// It is not called for Dismiss or Close.
func WithOnHide(f func(message string)) Option {
	return func(t *Toast) { t.onHide = f }
}

func NewToast(delay time.Duration, opts ...Option) *Toast {
	if delay <= 0 {
		delay = DefaultDelay
	}
	t := &Toast{delay: delay, sched: WallClock}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Show makes message visible and restarts the auto-hide countdown.
// An empty message behaves like Dismiss.
func (t *Toast) Show(message string) {
	if strings.TrimSpace(message) == "" {
		t.Dismiss()
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.stopLocked()
	t.message = message
	t.visible = true
	gen := t.gen
	t.timer = t.sched.AfterFunc(t.delay, func() { t.expire(gen) })
}

// Dismiss hides the toast before its timer fires.
func (t *Toast) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.visible = false
}

// Current returns the visible message.
func (t *Toast) Current() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.visible {
		return "", false
	}
	return t.message, true
}

// Close cancels any pending timer. Later calls to Show are ignored.
func (t *Toast) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.visible = false
	t.closed = true
}

// stopLocked cancels the pending timer and invalidates its callback in case it is
// already running.
func (t *Toast) stopLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Toast) expire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.closed || !t.visible {
		t.mu.Unlock()
		return
	}
	t.visible = false
	t.timer = nil
	msg := t.message
	onHide := t.onHide
	t.mu.Unlock()

	if onHide != nil {
		onHide(msg)
	}
}
