package view

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-dashboard/cmd/dashboard/dto"
	"chat-dashboard/cmd/dashboard/notify/notifytest"
)

var fixedNow = time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)

type fakeFetcher struct {
	pages    map[int]dto.SessionPage
	fail     atomic.Bool
	requests atomic.Int32
}

func (f *fakeFetcher) FetchPage(_ context.Context, page, _ int) (dto.SessionPage, error) {
	f.requests.Add(1)
	if f.fail.Load() {
		return dto.SessionPage{}, errors.New("status=500")
	}
	return f.pages[page], nil
}

func intPtr(v int) *int { return &v }

func msg(id int, origin dto.Origin, content string, ts time.Time) dto.Message {
	return dto.Message{ID: id, Content: content, Action: origin, Timestamp: dto.Timestamp{Time: ts}}
}

func newTestView(t *testing.T, fetcher *fakeFetcher) (*View, *notifytest.Scheduler) {
	t.Helper()
	sched := notifytest.New()
	v := New(Options{
		Fetcher:           fetcher,
		PageSize:          20,
		NotificationDelay: 3 * time.Second,
		Scheduler:         sched,
		Now:               func() time.Time { return fixedNow },
	})
	t.Cleanup(v.Unmount)
	return v, sched
}

func twoPages() *fakeFetcher {
	return &fakeFetcher{pages: map[int]dto.SessionPage{
		1: {TotalPages: intPtr(2), ChatSessions: []dto.ChatSession{
			{ID: 7, Name: "Alice", MessageCount: 3, Role: "support", Messages: []dto.Message{
				msg(3, dto.OriginAI, "<p>Sure, <b>done</b></p>", fixedNow.Add(-5*time.Minute)),
				msg(2, dto.OriginUser, "please", fixedNow.Add(-10*time.Minute)),
				msg(1, dto.OriginUser, "hi", fixedNow.Add(-48*time.Hour)),
			}},
			{ID: 4, Name: "Bob", MessageCount: 1, Messages: []dto.Message{
				msg(1, dto.OriginUser, "yo", fixedNow.Add(-2*time.Hour)),
			}},
		}},
		2: {TotalPages: intPtr(2), ChatSessions: []dto.ChatSession{
			{ID: 9, Name: "Carol", MessageCount: 1, Messages: []dto.Message{
				msg(1, dto.OriginAI, "old", fixedNow.Add(-72*time.Hour)),
			}},
		}},
	}}
}

func TestSelectCopiesResidentMessagesWithoutFetching(t *testing.T) {
	fetcher := twoPages()
	v, _ := newTestView(t, fetcher)
	require.NoError(t, v.Mount(context.Background()))
	before := fetcher.requests.Load()

	rows, err := v.Select(7)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, "left", rows[0].Align)
	assert.Equal(t, "right", rows[1].Align)
	assert.Equal(t, "Today 14:55", rows[0].Time)
	assert.Equal(t, "2024-04-29 15:00", rows[2].Time)
	assert.Equal(t, before, fetcher.requests.Load())

	page, err := v.Render(dto.FilterDTO{})
	require.NoError(t, err)
	require.NotNil(t, page.SelectedID)
	assert.Equal(t, 7, *page.SelectedID)
	assert.Len(t, page.Messages, 3)
	assert.True(t, page.Sessions[0].Selected)
}

func TestSelectUnknownSession(t *testing.T) {
	v, _ := newTestView(t, twoPages())
	require.NoError(t, v.Mount(context.Background()))

	_, err := v.Select(42)
	assert.ErrorIs(t, err, ErrSessionNotLoaded)
}

func TestRenderRowsAndObservedTarget(t *testing.T) {
	v, _ := newTestView(t, twoPages())
	require.NoError(t, v.Mount(context.Background()))

	page, err := v.Render(dto.FilterDTO{})
	require.NoError(t, err)

	require.Len(t, page.Sessions, 2)
	assert.Equal(t, "Alice", page.Sessions[0].Name)
	assert.Equal(t, "Sure, done", page.Sessions[0].Preview)
	assert.Equal(t, "5 minutes ago", page.Sessions[0].LastActive)
	assert.Equal(t, "support", page.Sessions[0].Role)
	assert.Equal(t, "session-4", page.ObservedTarget)
	assert.True(t, page.Pagination.HasMore)
	require.NotNil(t, page.Pagination.TotalPages)
	assert.Equal(t, 2, *page.Pagination.TotalPages)
}

func TestVisibilityOfLastRowLoadsNextPage(t *testing.T) {
	fetcher := twoPages()
	v, _ := newTestView(t, fetcher)
	ctx := context.Background()
	require.NoError(t, v.Mount(ctx))

	page, err := v.Render(dto.FilterDTO{})
	require.NoError(t, err)

	assert.False(t, v.ReportVisibility(ctx, "session-7", true))
	assert.True(t, v.ReportVisibility(ctx, page.ObservedTarget, true))
	assert.Equal(t, int32(2), fetcher.requests.Load())

	page, err = v.Render(dto.FilterDTO{})
	require.NoError(t, err)
	assert.Len(t, page.Sessions, 3)
	assert.Equal(t, "session-9", page.ObservedTarget)
	assert.False(t, page.Pagination.HasMore)

	// the last page is loaded; further visibility reports issue no requests
	assert.True(t, v.ReportVisibility(ctx, "session-9", true))
	assert.Equal(t, int32(2), fetcher.requests.Load())
}

func TestRenderFilterRebindsObserver(t *testing.T) {
	v, _ := newTestView(t, twoPages())
	require.NoError(t, v.Mount(context.Background()))

	page, err := v.Render(dto.FilterDTO{Query: "ALI"})
	require.NoError(t, err)
	require.Len(t, page.Sessions, 1)
	assert.Equal(t, "session-7", page.ObservedTarget)

	page, err = v.Render(dto.FilterDTO{Query: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, page.Sessions)
	assert.Equal(t, "", page.ObservedTarget)

	_, err = v.Render(dto.FilterDTO{Start: "yesterday"})
	assert.Error(t, err)
}

func TestFailedLoadSurfacesNotificationThatAutoHides(t *testing.T) {
	fetcher := twoPages()
	fetcher.fail.Store(true)
	v, sched := newTestView(t, fetcher)

	err := v.Mount(context.Background())
	require.Error(t, err)

	page, err := v.Render(dto.FilterDTO{})
	require.NoError(t, err)
	require.NotNil(t, page.Notification)
	assert.Contains(t, page.Notification.Message, "Failed to load chat sessions")
	assert.NotEmpty(t, page.Pagination.LastError)
	assert.Equal(t, 1, page.Pagination.Cursor)
	assert.Empty(t, page.Sessions)

	sched.Advance(3 * time.Second)
	page, err = v.Render(dto.FilterDTO{})
	require.NoError(t, err)
	assert.Nil(t, page.Notification)
}

func TestUnmountCancelsTimerAndSubscription(t *testing.T) {
	fetcher := twoPages()
	fetcher.fail.Store(true)
	v, sched := newTestView(t, fetcher)
	ctx := context.Background()

	_ = v.Mount(ctx)
	assert.Equal(t, 1, sched.Pending())

	v.Unmount()
	assert.Equal(t, 0, sched.Pending())

	fetcher.fail.Store(false)
	ok, err := v.LoadMore(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)
}
