// Package notifytest provides a manually advanced scheduler for timer tests.
package notifytest

import (
	"sort"
	"sync"
	"time"

	"chat-dashboard/cmd/dashboard/notify"
)

// Scheduler fires callbacks only when Advance moves its clock past their deadline.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	tasks  map[int]*task
}

type task struct {
	id  int
	at  time.Duration
	f   func()
	own *Scheduler
}

func (t *task) Stop() bool {
	t.own.mu.Lock()
	defer t.own.mu.Unlock()
	if _, ok := t.own.tasks[t.id]; !ok {
		return false
	}
	delete(t.own.tasks, t.id)
	return true
}

func New() *Scheduler {
	return &Scheduler{tasks: map[int]*task{}}
}

func (s *Scheduler) AfterFunc(d time.Duration, f func()) notify.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := &task{id: s.nextID, at: s.now + d, f: f, own: s}
	s.tasks[t.id] = t
	return t
}

// Advance moves the clock forward and runs every task that became due, in deadline order.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*task
	for id, t := range s.tasks {
		if t.at <= s.now {
			due = append(due, t)
			delete(s.tasks, id)
		}
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].id < due[j].id
		}
		return due[i].at < due[j].at
	})
	for _, t := range due {
		t.f()
	}
}

// Pending reports how many tasks are scheduled and not yet fired or stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
