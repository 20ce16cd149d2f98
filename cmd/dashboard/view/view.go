// Package view holds the per-client dashboard state: the loaded sessions, the current
// selection, the toast and the viewport subscription.
package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chat-dashboard/cmd/dashboard/dto"
	"chat-dashboard/cmd/dashboard/filter"
	"chat-dashboard/cmd/dashboard/notify"
	"chat-dashboard/cmd/dashboard/paging"
	"chat-dashboard/cmd/dashboard/viewport"
	"chat-dashboard/cmd/internal/logger"
)

// ErrSessionNotLoaded is returned when selecting an id that is not resident.
var ErrSessionNotLoaded = paging.ErrSessionNotLoaded

type Options struct {
	Fetcher           paging.Fetcher
	PageSize          int
	NotificationDelay time.Duration
	Scheduler         notify.Scheduler
	Location          *time.Location
	Now               func() time.Time
}

type View struct {
	engine *paging.Engine
	toast  *notify.Toast
	signal *viewport.Signal
	loc    *time.Location
	now    func() time.Time

	mu         sync.Mutex
	selectedID *int
	current    []dto.Message
}

func New(opts Options) *View {
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = notify.WallClock
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	v := &View{loc: loc, now: now}
	v.toast = notify.NewToast(opts.NotificationDelay, notify.WithScheduler(scheduler))
	v.engine = paging.New(opts.Fetcher, v.toast, paging.Config{PageSize: opts.PageSize})
	v.signal = viewport.NewSignal(func(ctx context.Context) {
		// 실패는 engine 이 토스트로 이미 노출했다.
		_, _ = v.engine.LoadNextPage(ctx)
	})
	return v
}

// Mount loads the first page. A failure is already surfaced as a toast and is returned
// only for logging.
func (v *View) Mount(ctx context.Context) error {
	_, err := v.engine.LoadNextPage(ctx)
	return err
}

// Unmount releases the view: the viewport subscription is dropped, any in-flight page is
// discarded and the toast timer is cancelled.
func (v *View) Unmount() {
	v.signal.Disconnect()
	v.engine.Close()
	v.toast.Close()
}

// LoadMore re-triggers loading by hand, e.g. after a failure.
func (v *View) LoadMore(ctx context.Context) (bool, error) {
	return v.engine.LoadNextPage(ctx)
}

// ReportVisibility forwards a visibility change of a rendered element.
func (v *View) ReportVisibility(ctx context.Context, target string, visible bool) bool {
	return v.signal.Report(ctx, target, visible)
}

func (v *View) DismissNotification() {
	v.toast.Dismiss()
}

// Session returns a resident session without touching the network.
func (v *View) Session(id int) (dto.ChatSession, error) {
	return v.engine.Session(id)
}

// Select copies the resident messages of session id into the message view.
func (v *View) Select(id int) ([]dto.MessageRowDTO, error) {
	s, err := v.engine.Session(id)
	if err != nil {
		return nil, err
	}
	messages := append([]dto.Message(nil), s.Messages...)

	v.mu.Lock()
	v.selectedID = &id
	v.current = messages
	v.mu.Unlock()

	return v.messageRows(messages), nil
}

// DomID is the element id of a session row. The viewport signal observes it.
func DomID(sessionID int) string {
	return fmt.Sprintf("session-%d", sessionID)
}

// Render builds the view model for the given filter values and rebinds the viewport
// signal to the last rendered row.
func (v *View) Render(f dto.FilterDTO) (dto.DashboardDTO, error) {
	criteria, err := filter.ParseCriteria(f.Query, f.Start, f.End, v.loc)
	if err != nil {
		return dto.DashboardDTO{}, err
	}

	visible := filter.Apply(v.engine.Sessions(), criteria)
	now := v.now()

	v.mu.Lock()
	var selectedID *int
	if v.selectedID != nil {
		id := *v.selectedID
		selectedID = &id
	}
	current := v.current
	v.mu.Unlock()

	rows := make([]dto.SessionRowDTO, 0, len(visible))
	for _, s := range visible {
		row := dto.SessionRowDTO{
			ID:           s.ID,
			DomID:        DomID(s.ID),
			Name:         s.Name,
			Role:         s.Role,
			MessageCount: s.MessageCount,
			LastActive:   TimeAgo(s.LastActivity(), now),
			Selected:     selectedID != nil && *selectedID == s.ID,
		}
		if latest, ok := s.LatestMessage(); ok {
			row.Preview = Preview(latest.Content)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		v.signal.Disconnect()
	} else {
		v.signal.Observe(rows[len(rows)-1].DomID)
	}

	st := v.engine.State()
	out := dto.DashboardDTO{
		Sessions:   rows,
		SelectedID: selectedID,
		Messages:   v.messageRows(current),
		Filter:     f,
		Pagination: dto.PaginationStateDTO{
			Cursor:  st.Cursor,
			Loading: st.Loading,
			HasMore: st.HasMore(),
		},
		ObservedTarget: v.signal.Target(),
	}
	if st.TotalKnown {
		total := st.TotalPages
		out.Pagination.TotalPages = &total
	}
	if st.LastErr != nil {
		out.Pagination.LastError = st.LastErr.Error()
	}
	if msg, ok := v.toast.Current(); ok {
		out.Notification = &dto.NotificationDTO{Message: msg}
	}

	logger.DebugWithFields("dashboard rendered", logger.Fields{
		"sessions": len(rows),
		"observed": out.ObservedTarget,
		"has_more": out.Pagination.HasMore,
	})
	return out, nil
}

func (v *View) messageRows(messages []dto.Message) []dto.MessageRowDTO {
	now := v.now()
	rows := make([]dto.MessageRowDTO, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, dto.MessageRowDTO{
			ID:      m.ID,
			Content: m.Content,
			Origin:  m.Action,
			Align:   Align(m.Action),
			Time:    MessageTime(m.Timestamp.Time, now, v.loc),
		})
	}
	return rows
}
