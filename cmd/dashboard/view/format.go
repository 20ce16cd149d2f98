package view

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"

	"chat-dashboard/cmd/dashboard/dto"
)

const previewRunes = 80

// TimeAgo renders a session's last activity for the session list.
func TimeAgo(t, now time.Time) string {
	if !t.After(dto.Epoch) {
		return "no messages"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// MessageTime renders a message timestamp. Messages from the current day in loc read
// "Today HH:MM", older ones carry their date.
func MessageTime(t, now time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	ny, nm, nd := now.In(loc).Date()
	y, m, d := local.Date()
	if y == ny && m == nm && d == nd {
		return "Today " + local.Format("15:04")
	}
	return local.Format("2006-01-02 15:04")
}

// Align places user messages on the right and everything else on the left.
func Align(origin dto.Origin) string {
	if origin == dto.OriginUser {
		return "right"
	}
	return "left"
}

// Preview returns the text content of a message with markup removed, whitespace
// collapsed and the result cut to a list-friendly length.
func Preview(content string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
	text := strings.Join(strings.Fields(b.String()), " ")
	return truncate(text, previewRunes)
}

// truncate returns s cut to max runes.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	rs := []rune(s)
	return string(rs[:max]) + "…"
}
