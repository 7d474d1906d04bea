package analytics

import (
	"slices"
	"testing"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday evening.
var testNow = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

func bookWith(id string, sessions ...domain.ReadingSession) domain.Book {
	return domain.Book{ID: id, Title: "Title " + id, ReadingHistory: sessions}
}

func session(day domain.Day, pages int) domain.ReadingSession {
	return domain.ReadingSession{Date: day, PagesRead: pages, Timestamp: day.In(time.UTC).Add(12 * time.Hour)}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name  string
		books []domain.Book
		want  int
	}{
		{"empty collection", nil, 0},
		{
			name:  "today and yesterday",
			books: []domain.Book{bookWith("a", session("2024-03-15", 5), session("2024-03-14", 3), session("2024-03-12", 9))},
			want:  2,
		},
		{
			name:  "yesterday only",
			books: []domain.Book{bookWith("a", session("2024-03-14", 3), session("2024-03-13", 3))},
			want:  0,
		},
		{
			name: "days spread across books",
			books: []domain.Book{
				bookWith("a", session("2024-03-15", 5)),
				bookWith("b", session("2024-03-14", 1)),
				bookWith("c", session("2024-03-13", 1)),
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.books, testNow))
		})
	}
}

func TestStreak_UsesNowLocation(t *testing.T) {
	// 2024-03-16 01:00 in UTC+9 is still the 15th in UTC.
	tokyo := time.FixedZone("JST", 9*3600)
	now := time.Date(2024, 3, 16, 1, 0, 0, 0, tokyo)
	books := []domain.Book{bookWith("a", session("2024-03-15", 5))}

	assert.Equal(t, 0, Streak(books, now))
	assert.Equal(t, 1, Streak(books, now.In(time.UTC)))
}

func TestLongestStreak(t *testing.T) {
	books := []domain.Book{
		bookWith("a", session("2024-01-01", 1), session("2024-01-02", 1), session("2024-01-03", 1)),
		bookWith("b", session("2024-01-02", 4), session("2024-02-10", 1), session("2024-02-11", 1)),
	}

	assert.Equal(t, 3, LongestStreak(books))
	assert.Equal(t, 0, LongestStreak(nil))
}

func TestCategories(t *testing.T) {
	books := []domain.Book{
		{Category: "Fiction"},
		{Category: "Fiction"},
		{},
	}

	got := Categories(books)

	assert.Equal(t, []domain.CategoryCount{
		{Name: "Fiction", Count: 2, Total: 3},
		{Name: "Other", Count: 1, Total: 3},
	}, got)
}

func TestCategories_TiesKeepFirstAppearance(t *testing.T) {
	books := []domain.Book{
		{Category: "Poetry"},
		{Category: "History"},
		{Category: "Science"},
		{Category: "History"},
		{Category: "Poetry"},
	}

	got := Categories(books)

	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Poetry", "History", "Science"}, names)
	assert.Empty(t, Categories(nil))
}

func TestTotals(t *testing.T) {
	books := []domain.Book{
		bookWith("a", session("2024-03-15", 10), session("2024-03-01", 3)),
		bookWith("b", session("2024-03-14", 4), session("2024-02-29", 8)),
	}

	assert.Equal(t, domain.PageTotals{Today: 10, Yesterday: 4, MonthToDate: 17}, Totals(books, testNow))
}

func TestTotals_FirstOfMonth(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	books := []domain.Book{bookWith("a", session("2024-03-01", 2), session("2024-02-29", 8))}

	assert.Equal(t, domain.PageTotals{Today: 2, Yesterday: 8, MonthToDate: 2}, Totals(books, now))
}

func TestRecentSessions(t *testing.T) {
	early := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)
	late := time.Date(2024, 3, 14, 22, 0, 0, 0, time.UTC)
	books := []domain.Book{
		bookWith("a",
			domain.ReadingSession{Date: "2024-03-14", PagesRead: 1, Timestamp: early},
			session("2024-03-10", 2),
			session("2024-03-01", 3),
		),
		bookWith("b",
			domain.ReadingSession{Date: "2024-03-14", PagesRead: 4, Timestamp: late},
			session("2024-03-15", 5),
			session("2024-03-02", 6),
		),
	}

	got := RecentSessions(books, 0)

	require.Len(t, got, DefaultRecentLimit)
	pages := make([]int, len(got))
	for i, s := range got {
		pages[i] = s.PagesRead
	}
	assert.Equal(t, []int{5, 4, 1, 2, 6}, pages)
	assert.Equal(t, "b", got[0].BookID)
	assert.Equal(t, "Title b", got[0].BookTitle)

	assert.Len(t, RecentSessions(books, 2), 2)
	assert.NotNil(t, RecentSessions(nil, 3))
}

func TestCounts(t *testing.T) {
	books := []domain.Book{
		{Status: domain.StatusToRead},
		{Status: domain.StatusReading},
		{Status: domain.StatusReading},
		{Status: domain.StatusFinished},
	}

	assert.Equal(t, domain.LibraryCounts{Total: 4, ToRead: 1, Reading: 2, Finished: 1}, Counts(books))
}

func TestDashboard(t *testing.T) {
	books := []domain.Book{
		{ID: "a", Title: "A", Status: domain.StatusReading, Category: "Fiction",
			ReadingHistory: []domain.ReadingSession{session("2024-03-15", 12)}},
	}

	d := Dashboard(books, domain.StatsRangeWeek, testNow)

	assert.Equal(t, testNow, d.GeneratedAt)
	assert.Equal(t, 1, d.CurrentStreak)
	assert.Equal(t, 1, d.LongestStreak)
	assert.Equal(t, 12, d.Totals.Today)
	assert.Len(t, d.Series, 7)
	assert.Equal(t, 12, d.Series[6].Pages)
	assert.Equal(t, 1, d.Counts.Reading)
	require.Len(t, d.Recent, 1)
	assert.Equal(t, slices.Collect(Series(books, domain.StatsRangeWeek, testNow)), d.Series)
}
