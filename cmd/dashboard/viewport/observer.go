// Package viewport turns visibility reports of rendered elements into load triggers.
package viewport

import (
	"context"
	"sync"
)

// Observer watches a single rendered element for entering the viewport.
type Observer interface {
	// Observe replaces the current subscription with one for target.
	Observe(target string)
	// Disconnect cancels the current subscription.
	Disconnect()
}

// Signal is an Observer fed by visibility reports from the page.
//
// It fires its callback once each time the observed target goes from not visible to
// visible. Reports for any other target are stale and ignored.
type Signal struct {
	onVisible func(ctx context.Context)

	mu     sync.Mutex
	target string
	inView bool
}

var _ Observer = (*Signal)(nil)

func NewSignal(onVisible func(ctx context.Context)) *Signal {
	return &Signal{onVisible: onVisible}
}

func (s *Signal) Observe(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == s.target {
		return
	}
	s.target = target
	s.inView = false
}

func (s *Signal) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = ""
	s.inView = false
}

// Target returns the observed element, or "" when disconnected.
func (s *Signal) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Report records a visibility change of target. It returns true when the callback ran.
func (s *Signal) Report(ctx context.Context, target string, visible bool) bool {
	s.mu.Lock()
	if target == "" || target != s.target {
		s.mu.Unlock()
		return false
	}
	if !visible {
		s.inView = false
		s.mu.Unlock()
		return false
	}
	if s.inView {
		s.mu.Unlock()
		return false
	}
	s.inView = true
	s.mu.Unlock()

	if s.onVisible != nil {
		s.onVisible(ctx)
	}
	return true
}
