// Package progress maintains per-book reading progress: the current page,
// the derived status, and the per-day session history.
//
// Every function here is pure. Inputs are never mutated; callers get a new
// value back and decide when to persist it.
package progress

import (
	"slices"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

// RecordProgress adds pagesDelta to the session for day, creating it if needed.
// A non-positive delta returns history unchanged. The returned slice never
// shares a backing array with history when a change was made.
func RecordProgress(history []domain.ReadingSession, day domain.Day, pagesDelta int, ts time.Time) []domain.ReadingSession {
	if pagesDelta <= 0 {
		return history
	}

	i := slices.IndexFunc(history, func(s domain.ReadingSession) bool { return s.Date == day })
	if i >= 0 {
		out := slices.Clone(history)
		out[i].PagesRead += pagesDelta
		out[i].Timestamp = ts
		return out
	}

	out := make([]domain.ReadingSession, len(history), len(history)+1)
	copy(out, history)
	return append(out, domain.ReadingSession{
		Date:      day,
		PagesRead: pagesDelta,
		Timestamp: ts,
	})
}

// TotalPagesRead sums every session in history.
func TotalPagesRead(history []domain.ReadingSession) int {
	total := 0
	for _, s := range history {
		total += s.PagesRead
	}
	return total
}
