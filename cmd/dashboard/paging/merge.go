package paging

import (
	"sort"
	"time"

	"chat-dashboard/cmd/dashboard/dto"
)

// Merge appends incoming to loaded and re-sorts the whole list by last activity,
// most recent first. Sessions without messages sort as oldest. Ties keep their
// arrival order. Sessions are not de-duplicated by id.
func Merge(loaded, incoming []dto.ChatSession) []dto.ChatSession {
	merged := make([]dto.ChatSession, 0, len(loaded)+len(incoming))
	merged = append(merged, loaded...)
	merged = append(merged, incoming...)
	SortByRecency(merged)
	return merged
}

type byRecency struct {
	sessions []dto.ChatSession
	at       []time.Time
}

func (b byRecency) Len() int           { return len(b.sessions) }
func (b byRecency) Less(i, j int) bool { return b.at[i].After(b.at[j]) }
func (b byRecency) Swap(i, j int) {
	b.sessions[i], b.sessions[j] = b.sessions[j], b.sessions[i]
	b.at[i], b.at[j] = b.at[j], b.at[i]
}

// SortByRecency sorts sessions in place, most recent activity first.
func SortByRecency(sessions []dto.ChatSession) {
	at := make([]time.Time, len(sessions))
	for i, s := range sessions {
		at[i] = s.LastActivity()
	}
	sort.Stable(byRecency{sessions: sessions, at: at})
}
