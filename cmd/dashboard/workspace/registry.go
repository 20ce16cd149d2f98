// Package workspace keeps one dashboard view per browser client.
package workspace

import (
	"context"
	"sync"
	"time"

	"chat-dashboard/cmd/dashboard/view"
	"chat-dashboard/cmd/internal/logger"
)

// Factory builds a fresh, unmounted view.
type Factory func() *view.View

type entry struct {
	view     *view.View
	lastSeen time.Time
	mount    sync.Once
}

// Registry maps client ids to mounted views and unmounts the ones left idle.
type Registry struct {
	factory Factory
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	views map[string]*entry
}

func New(factory Factory, ttl time.Duration) *Registry {
	return &Registry{
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		views:   map[string]*entry{},
	}
}

// Acquire returns the view of clientID, creating and mounting it on first use.
// Concurrent first requests of the same client wait for a single mount.
func (r *Registry) Acquire(ctx context.Context, clientID string) *view.View {
	r.mu.Lock()
	e, ok := r.views[clientID]
	if !ok {
		e = &entry{view: r.factory()}
		r.views[clientID] = e
	}
	e.lastSeen = r.now()
	r.mu.Unlock()

	e.mount.Do(func() {
		if err := e.view.Mount(ctx); err != nil {
			logger.WarnWithFields("dashboard mounted with load failure", logger.Fields{
				"client_id": clientID,
				"error":     err.Error(),
			})
			return
		}
		logger.InfoWithFields("dashboard mounted", logger.Fields{"client_id": clientID})
	})
	return e.view
}

// Len reports how many views are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Sweep unmounts views idle for longer than the ttl and returns how many it removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var idle []*view.View
	for id, e := range r.views {
		if e.lastSeen.Before(cutoff) {
			idle = append(idle, e.view)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range idle {
		v.Unmount()
	}
	if len(idle) > 0 {
		logger.InfoWithFields("idle dashboards evicted", logger.Fields{"count": len(idle)})
	}
	return len(idle)
}

// Run sweeps every interval until ctx is done, then unmounts every view.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close unmounts and forgets every view.
func (r *Registry) Close() {
	r.mu.Lock()
	views := r.views
	r.views = map[string]*entry{}
	r.mu.Unlock()

	for _, e := range views {
		e.view.Unmount()
	}
}
