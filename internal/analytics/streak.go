package analytics

import (
	"slices"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

// Streak counts consecutive days with at least one session, walking back
// from today. A day without reading today yields 0 even if yesterday had some.
func Streak(books []domain.Book, now time.Time) int {
	days := activeDays(books)

	streak := 0
	for day := domain.DayOf(now); days[day]; day = day.AddDays(-1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive active days ever recorded.
func LongestStreak(books []domain.Book) int {
	days := activeDays(books)
	if len(days) == 0 {
		return 0
	}

	sorted := make([]domain.Day, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	slices.Sort(sorted)

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDays(1) == sorted[i] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

func activeDays(books []domain.Book) map[domain.Day]bool {
	days := make(map[domain.Day]bool)
	for s := range sessions(books) {
		if s.PagesRead > 0 && s.Date.Valid() {
			days[s.Date] = true
		}
	}
	return days
}
