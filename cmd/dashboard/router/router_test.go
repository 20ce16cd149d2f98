package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-dashboard/cmd/dashboard/clients/sessionclient"
	"chat-dashboard/cmd/dashboard/dto"
	"chat-dashboard/cmd/dashboard/httpclient"
	"chat-dashboard/cmd/dashboard/view"
	"chat-dashboard/cmd/dashboard/workspace"
)

// fakeChatAPI serves two pages: sessions 7 and 4 on page 1, session 9 on page 2.
type fakeChatAPI struct {
	requests atomic.Int32
	fail     atomic.Bool
}

func (f *fakeChatAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	if f.fail.Load() {
		http.Error(w, "internal", http.StatusInternalServerError)
		return
	}
	switch r.URL.Query().Get("page") {
	case "1":
		fmt.Fprint(w, `{"total_pages": 2, "chat_sessions": [
			{"id": 7, "name": "Alice", "message_count": 3, "messages": [
				{"id": 3, "content": "third", "action": "AI", "timestamp": "2024-05-01T10:03:00Z"},
				{"id": 2, "content": "second", "action": "USER", "timestamp": "2024-05-01T10:02:00Z"},
				{"id": 1, "content": "first", "action": "USER", "timestamp": "2024-05-01T10:01:00Z"}]},
			{"id": 4, "name": "Bob", "message_count": 1, "messages": [
				{"id": 1, "content": "yo", "action": "USER", "timestamp": "2024-04-01T10:00:00Z"}]}]}`)
	case "2":
		fmt.Fprint(w, `{"total_pages": 2, "chat_sessions": [
			{"id": 9, "name": "Carol", "message_count": 0, "messages": []}]}`)
	default:
		fmt.Fprint(w, `{"total_pages": 2, "chat_sessions": []}`)
	}
}

type harness struct {
	api    *fakeChatAPI
	server *httptest.Server
	client *http.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &fakeChatAPI{}
	backend := httptest.NewServer(api)
	t.Cleanup(backend.Close)

	chat := sessionclient.New(backend.URL, "/api/chat-sessions", httpclient.Config{Timeout: 2 * time.Second})
	registry := workspace.New(func() *view.View {
		return view.New(view.Options{Fetcher: chat, PageSize: 20, NotificationDelay: time.Minute})
	}, time.Hour)
	t.Cleanup(registry.Close)

	srv := httptest.NewServer(New(Deps{Views: registry, Health: chat}))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &harness{api: api, server: srv, client: &http.Client{Jar: jar}}
}

func (h *harness) do(t *testing.T, method, path string, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, h.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := h.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func (h *harness) dashboard(t *testing.T, method, path, body string) dto.DashboardDTO {
	t.Helper()
	resp, data := h.do(t, method, path, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var page dto.DashboardDTO
	require.NoError(t, json.Unmarshal(data, &page))
	return page
}

func sessionIDs(page dto.DashboardDTO) []int {
	out := make([]int, 0, len(page.Sessions))
	for _, s := range page.Sessions {
		out = append(out, s.ID)
	}
	return out
}

func TestDashboardFlow(t *testing.T) {
	h := newHarness(t)

	page := h.dashboard(t, http.MethodGet, "/api/v1/dashboard", "")
	assert.Equal(t, []int{7, 4}, sessionIDs(page))
	assert.Equal(t, "session-4", page.ObservedTarget)
	assert.Equal(t, int32(1), h.api.requests.Load())

	// selection reuses the embedded messages
	page = h.dashboard(t, http.MethodPost, "/api/v1/sessions/7/select", "")
	require.Len(t, page.Messages, 3)
	assert.Equal(t, "left", page.Messages[0].Align)
	assert.Equal(t, "right", page.Messages[1].Align)
	assert.Equal(t, int32(1), h.api.requests.Load())

	// the last row scrolls into view
	page = h.dashboard(t, http.MethodPost, "/api/v1/viewport", `{"target":"session-4","visible":true}`)
	assert.Equal(t, []int{7, 4, 9}, sessionIDs(page))
	assert.Equal(t, "session-9", page.ObservedTarget)
	assert.False(t, page.Pagination.HasMore)
	assert.Equal(t, int32(2), h.api.requests.Load())

	// filters are applied on every render
	page = h.dashboard(t, http.MethodGet, "/api/v1/dashboard?q=BOB", "")
	assert.Equal(t, []int{4}, sessionIDs(page))
	page = h.dashboard(t, http.MethodGet, "/api/v1/dashboard?start=2024-04-15", "")
	assert.Equal(t, []int{7}, sessionIDs(page))

	resp, data := h.do(t, http.MethodGet, "/api/v1/sessions/7", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session dto.ChatSession
	require.NoError(t, json.Unmarshal(data, &session))
	assert.Len(t, session.Messages, 3)
	assert.Equal(t, int32(2), h.api.requests.Load())
}

func TestDashboardSurfacesFetchFailure(t *testing.T) {
	h := newHarness(t)
	h.api.fail.Store(true)

	page := h.dashboard(t, http.MethodGet, "/api/v1/dashboard", "")
	assert.Empty(t, page.Sessions)
	require.NotNil(t, page.Notification)
	assert.Contains(t, page.Notification.Message, "Failed to load chat sessions")
	assert.Equal(t, 1, page.Pagination.Cursor)

	resp, _ := h.do(t, http.MethodPost, "/api/v1/notification/dismiss", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	h.api.fail.Store(false)
	page = h.dashboard(t, http.MethodPost, "/api/v1/sessions/load", "")
	assert.Equal(t, []int{7, 4}, sessionIDs(page))
	assert.Nil(t, page.Notification)
	assert.Empty(t, page.Pagination.LastError)
}

func TestDashboardErrors(t *testing.T) {
	h := newHarness(t)

	resp, _ := h.do(t, http.MethodGet, "/api/v1/dashboard?start=05-01-2024", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/api/v1/sessions/abc/select", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/api/v1/sessions/999/select", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = h.do(t, http.MethodGet, "/api/v1/sessions/999", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/api/v1/viewport", `{"visible":true}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboardPageAndHealth(t *testing.T) {
	h := newHarness(t)

	resp, data := h.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Alice")
	assert.Contains(t, string(data), `id="session-4"`)

	resp, _ = h.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	h.api.fail.Store(true)
	resp, _ = h.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, data = h.do(t, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Chat Dashboard API")
}

func TestClientsGetSeparateViews(t *testing.T) {
	h := newHarness(t)
	h.dashboard(t, http.MethodGet, "/api/v1/dashboard", "")
	h.dashboard(t, http.MethodPost, "/api/v1/sessions/7/select", "")

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	other := &harness{api: h.api, server: h.server, client: &http.Client{Jar: jar}}

	page := other.dashboard(t, http.MethodGet, "/api/v1/dashboard", "")
	assert.Nil(t, page.SelectedID)
	assert.Empty(t, page.Messages)
}

func TestWithCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := WithCORS(inner, []string{"http://app.example"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("Origin", "http://app.example")
	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, req)

	assert.Equal(t, "http://app.example", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
