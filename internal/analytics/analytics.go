// Package analytics derives reading statistics from a snapshot of a book
// collection.
//
// All functions are pure: they read the books they are given, never modify
// them, and take the reference instant as an argument so results are
// reproducible. Calendar days are interpreted in now's location.
package analytics

import (
	"iter"
	"slices"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

// DefaultRecentLimit is used when RecentSessions is called with limit <= 0.
const DefaultRecentLimit = 5

// OtherCategory groups books that have no category.
const OtherCategory = "Other"

// Dashboard computes every aggregate for the analytics page in one pass over
// the caller's snapshot.
func Dashboard(books []domain.Book, rng domain.StatsRange, now time.Time) domain.Dashboard {
	return domain.Dashboard{
		GeneratedAt:   now,
		Range:         rng,
		Series:        slices.Collect(Series(books, rng, now)),
		Categories:    Categories(books),
		Recent:        RecentSessions(books, DefaultRecentLimit),
		Totals:        Totals(books, now),
		Counts:        Counts(books),
		CurrentStreak: Streak(books, now),
		LongestStreak: LongestStreak(books),
	}
}

// Categories groups books by category, largest group first.
// Groups with equal counts keep the order in which they first appear.
func Categories(books []domain.Book) []domain.CategoryCount {
	out := make([]domain.CategoryCount, 0)
	index := make(map[string]int)

	for _, b := range books {
		name := b.Category
		if name == "" {
			name = OtherCategory
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, domain.CategoryCount{Name: name, Total: len(books)})
		}
		out[i].Count++
	}

	slices.SortStableFunc(out, func(a, b domain.CategoryCount) int {
		return b.Count - a.Count
	})
	return out
}

// Totals sums pages read today, yesterday, and since the first of the month.
func Totals(books []domain.Book, now time.Time) domain.PageTotals {
	today := domain.DayOf(now)
	yesterday := today.AddDays(-1)
	monthStart := domain.Day(now.Format("2006-01") + "-01")

	var totals domain.PageTotals
	for s := range sessions(books) {
		if !s.Date.Valid() {
			continue
		}
		switch s.Date {
		case today:
			totals.Today += s.PagesRead
		case yesterday:
			totals.Yesterday += s.PagesRead
		}
		if s.Date >= monthStart {
			totals.MonthToDate += s.PagesRead
		}
	}
	return totals
}

// RecentSessions returns the latest sessions across all books, newest date
// first. Sessions on the same date are ordered by timestamp, newest first.
func RecentSessions(books []domain.Book, limit int) []domain.RecentSession {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var all []domain.RecentSession
	for _, b := range books {
		for _, s := range b.ReadingHistory {
			all = append(all, domain.RecentSession{
				BookID:    b.ID,
				BookTitle: b.Title,
				Date:      s.Date,
				PagesRead: s.PagesRead,
				Timestamp: s.Timestamp,
			})
		}
	}

	slices.SortStableFunc(all, func(a, b domain.RecentSession) int {
		if a.Date != b.Date {
			if a.Date > b.Date {
				return -1
			}
			return 1
		}
		return b.Timestamp.Compare(a.Timestamp)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	if all == nil {
		return []domain.RecentSession{}
	}
	return all
}

// Counts tallies books by status.
func Counts(books []domain.Book) domain.LibraryCounts {
	c := domain.LibraryCounts{Total: len(books)}
	for _, b := range books {
		switch b.Status {
		case domain.StatusToRead:
			c.ToRead++
		case domain.StatusReading:
			c.Reading++
		case domain.StatusFinished:
			c.Finished++
		}
	}
	return c
}

// sessions yields every reading session in the snapshot.
func sessions(books []domain.Book) iter.Seq[domain.ReadingSession] {
	return func(yield func(domain.ReadingSession) bool) {
		for _, b := range books {
			for _, s := range b.ReadingHistory {
				if !yield(s) {
					return
				}
			}
		}
	}
}
