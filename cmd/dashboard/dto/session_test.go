package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPageDecodesBackendShape(t *testing.T) {
	body := `{
		"chat_sessions": [
			{"id": 7, "name": "Alice", "message_count": 2, "role": "support",
			 "messages": [
				{"id": 2, "content": "hi back", "action": "AI", "timestamp": "2024-01-05T10:01:00"},
				{"id": 1, "content": "hi", "action": "USER", "timestamp": "2024-01-05T10:00:00Z"}
			 ]}
		],
		"total_pages": 3
	}`

	var page SessionPage
	require.NoError(t, json.Unmarshal([]byte(body), &page))

	require.Len(t, page.ChatSessions, 1)
	require.NotNil(t, page.TotalPages)
	assert.Equal(t, 3, *page.TotalPages)

	s := page.ChatSessions[0]
	assert.Equal(t, "support", s.Role)
	assert.Equal(t, OriginAI, s.Messages[0].Action)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 1, 0, 0, time.UTC), s.LastActivity())
}

func TestSessionPageWithoutTotalPages(t *testing.T) {
	var page SessionPage
	require.NoError(t, json.Unmarshal([]byte(`{"chat_sessions": []}`), &page))
	assert.Nil(t, page.TotalPages)
}

func TestTimestampDegradesOnGarbage(t *testing.T) {
	var m Message
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "timestamp": "yesterday-ish"}`), &m))
	assert.True(t, m.Timestamp.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "timestamp": 12345}`), &m))
	assert.True(t, m.Timestamp.IsZero())
}

func TestLastActivityWithoutMessagesIsEpoch(t *testing.T) {
	assert.Equal(t, Epoch, ChatSession{ID: 1}.LastActivity())

	_, ok := ChatSession{ID: 1}.LatestMessage()
	assert.False(t, ok)
}
