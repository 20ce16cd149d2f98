package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Origin identifies who produced a message.
type Origin string

const (
	OriginUser Origin = "USER"
	OriginAI   Origin = "AI"
)

// Epoch is the activity time of a session that has no messages.
var Epoch = time.Unix(0, 0).UTC()

// timestampLayouts are tried in order. The backend emits ISO-8601, sometimes without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Timestamp is an ISO-8601 instant. Values that cannot be parsed decode to the zero time
// instead of failing the whole page.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = ParseTimestamp(raw)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// ParseTimestamp parses s with the accepted layouts. Zone-less values are taken as UTC.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Message is a single chat message. Immutable once loaded.
type Message struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Action    Origin    `json:"action"`
	Timestamp Timestamp `json:"timestamp"`
}

// ChatSession is a conversation thread as returned by the chat-session API.
// Messages arrive most-recent-first by backend convention.
type ChatSession struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Messages     []Message `json:"messages"`
	MessageCount int       `json:"message_count"`
	Role         string    `json:"role,omitempty"`
}

// LastActivity returns the most recent message timestamp, or Epoch when the session has
// no messages.
func (s ChatSession) LastActivity() time.Time {
	if len(s.Messages) == 0 {
		return Epoch
	}
	latest := s.Messages[0].Timestamp.Time
	for _, m := range s.Messages[1:] {
		if m.Timestamp.After(latest) {
			latest = m.Timestamp.Time
		}
	}
	return latest
}

// LatestMessage returns the message carrying LastActivity.
func (s ChatSession) LatestMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	latest := s.Messages[0]
	for _, m := range s.Messages[1:] {
		if m.Timestamp.After(latest.Timestamp.Time) {
			latest = m
		}
	}
	return latest, true
}

// SessionPage is one page of the chat-session listing.
// TotalPages is nil when the backend omits it.
type SessionPage struct {
	ChatSessions []ChatSession `json:"chat_sessions"`
	TotalPages   *int          `json:"total_pages"`
}
