// Package filter derives the visible subset of loaded chat sessions.
package filter

import (
	"fmt"
	"strings"
	"time"

	"chat-dashboard/cmd/dashboard/dto"
)

// DateLayout is the format of the start/end bounds sent by the date pickers.
const DateLayout = "2006-01-02"

// Criteria is the current search state. Nil bounds are unconstrained.
type Criteria struct {
	Query string
	Start *time.Time
	End   *time.Time
}

// ParseCriteria builds Criteria from raw form values.
// The start bound is the beginning of its day and the end bound the last instant of its
// day, both in loc.
func ParseCriteria(query, start, end string, loc *time.Location) (Criteria, error) {
	if loc == nil {
		loc = time.UTC
	}
	c := Criteria{Query: query}

	if s := strings.TrimSpace(start); s != "" {
		day, err := time.ParseInLocation(DateLayout, s, loc)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		c.Start = &day
	}
	if s := strings.TrimSpace(end); s != "" {
		day, err := time.ParseInLocation(DateLayout, s, loc)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		last := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		c.End = &last
	}
	return c, nil
}

// Matches reports whether s passes the criteria.
func (c Criteria) Matches(s dto.ChatSession) bool {
	if c.Query != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(c.Query)) {
		return false
	}
	at := s.LastActivity()
	if c.Start != nil && at.Before(*c.Start) {
		return false
	}
	if c.End != nil && at.After(*c.End) {
		return false
	}
	return true
}

// Apply returns the sessions matching c in their input order. sessions is not modified.
func Apply(sessions []dto.ChatSession, c Criteria) []dto.ChatSession {
	out := make([]dto.ChatSession, 0, len(sessions))
	for _, s := range sessions {
		if c.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}
