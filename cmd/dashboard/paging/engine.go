// Package paging loads chat sessions page by page and keeps them sorted by recency.
package paging

import (
	"context"
	"errors"
	"sync"

	"chat-dashboard/cmd/dashboard/dto"
	"chat-dashboard/cmd/internal/logger"
)

// DefaultPageSize is the per_page value the chat-session API expects.
const DefaultPageSize = 20

// Fetcher loads one page of chat sessions. sessionclient.Client implements it.
type Fetcher interface {
	FetchPage(ctx context.Context, page, perPage int) (dto.SessionPage, error)
}

// Notifier surfaces a failure to the user. notify.Toast implements it.
type Notifier interface {
	Show(message string)
}

type Config struct {
	PageSize int
}

// State is a snapshot of the pagination cursor.
type State struct {
	Cursor     int
	TotalPages int
	TotalKnown bool
	Loading    bool
	Exhausted  bool
	LastErr    error
}

// HasMore reports whether another automatic load would issue a request.
func (s State) HasMore() bool {
	if s.Exhausted {
		return false
	}
	return !s.TotalKnown || s.Cursor <= s.TotalPages
}

// Engine owns the loaded session list of one dashboard view.
//
// At most one fetch is in flight at a time. LoadNextPage calls made while a fetch is
// running, after the last page, or after Close return without issuing a request.
type Engine struct {
	fetcher  Fetcher
	notifier Notifier
	pageSize int

	mu       sync.Mutex
	sessions []dto.ChatSession
	state    State
	closed   bool
}

func New(fetcher Fetcher, notifier Notifier, cfg Config) *Engine {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Engine{
		fetcher:  fetcher,
		notifier: notifier,
		pageSize: pageSize,
		state:    State{Cursor: 1},
	}
}

// LoadNextPage requests the page at the cursor and merges it into the loaded set.
// It returns false without a request when a load is already running, the pages are
// exhausted, or the engine is closed. On failure the cursor and sessions are left as
// they were and the error is shown through the Notifier and returned.
func (e *Engine) LoadNextPage(ctx context.Context) (bool, error) {
	e.mu.Lock()
	if e.closed || e.state.Loading || !e.state.HasMore() {
		e.mu.Unlock()
		return false, nil
	}
	e.state.Loading = true
	page := e.state.Cursor
	e.mu.Unlock()

	result, err := e.fetcher.FetchPage(ctx, page, e.pageSize)

	e.mu.Lock()
	e.state.Loading = false
	if e.closed {
		e.mu.Unlock()
		return false, nil
	}
	if err != nil {
		e.state.LastErr = err
		e.mu.Unlock()

		logger.ErrorWithFields("chat sessions page load failed", logger.Fields{
			"page":  page,
			"error": err.Error(),
		})
		if e.notifier != nil {
			e.notifier.Show(FailureMessage(err))
		}
		return true, err
	}

	e.sessions = Merge(e.sessions, result.ChatSessions)
	e.state.Cursor = page + 1
	e.state.LastErr = nil
	if !e.state.TotalKnown && result.TotalPages != nil {
		e.state.TotalPages = *result.TotalPages
		e.state.TotalKnown = true
	}
	if !e.state.TotalKnown && len(result.ChatSessions) == 0 {
		e.state.Exhausted = true
	}
	loaded := len(e.sessions)
	st := e.state
	e.mu.Unlock()

	logger.DebugWithFields("chat sessions page loaded", logger.Fields{
		"page":        page,
		"received":    len(result.ChatSessions),
		"loaded":      loaded,
		"total_pages": st.TotalPages,
		"has_more":    st.HasMore(),
	})
	return true, nil
}

// FailureMessage is the toast text for a failed load.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	return "Failed to load chat sessions: " + err.Error()
}

// Sessions returns a copy of the loaded sessions, most recent first.
func (e *Engine) Sessions() []dto.ChatSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]dto.ChatSession(nil), e.sessions...)
}

// ErrSessionNotLoaded is returned for ids that are not in the loaded set.
var ErrSessionNotLoaded = errors.New("session not loaded")

// Session returns the loaded session with id. When duplicates exist the most recent one wins.
func (e *Engine) Session(id int) (dto.ChatSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return dto.ChatSession{}, ErrSessionNotLoaded
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) HasMore() bool {
	return e.State().HasMore()
}

// Close stops the engine. A fetch still in flight has its result discarded.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}
