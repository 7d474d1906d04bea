package analytics

import (
	"slices"
	"testing"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(points []domain.SeriesPoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Label
	}
	return out
}

func TestSeries_Week(t *testing.T) {
	books := []domain.Book{
		bookWith("a",
			session("2024-03-15", 10),
			session("2024-03-09", 5),
			session("2024-03-08", 20), // window opens at 18:30 on the 8th
			session("2024-03-16", 99), // future
		),
	}

	points := slices.Collect(Series(books, domain.StatsRangeWeek, testNow))

	require.Len(t, points, 7)
	assert.Equal(t, []string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}, labels(points))
	assert.Equal(t, 5, points[0].Pages)
	assert.Equal(t, 10, points[6].Pages)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), points[6].Start)

	total := 0
	for _, p := range points {
		total += p.Pages
	}
	assert.Equal(t, 15, total)
}

func TestSeries_EmptyCollectionIsZeroSeeded(t *testing.T) {
	for _, rng := range []domain.StatsRange{domain.StatsRangeWeek, domain.StatsRangeMonth, domain.StatsRangeYear} {
		t.Run(string(rng), func(t *testing.T) {
			points := slices.Collect(Series(nil, rng, testNow))
			require.NotEmpty(t, points)
			for _, p := range points {
				assert.Zero(t, p.Pages, p.Label)
			}
			// Buckets are in chronological order.
			assert.True(t, slices.IsSortedFunc(points, func(a, b domain.SeriesPoint) int {
				return a.Start.Compare(b.Start)
			}))
		})
	}
}

func TestSeries_Month(t *testing.T) {
	books := []domain.Book{bookWith("a", session("2024-02-16", 7), session("2024-02-15", 3))}

	points := slices.Collect(Series(books, domain.StatsRangeMonth, testNow))

	// Feb 15 through Mar 15 in a leap year.
	require.Len(t, points, 30)
	assert.Equal(t, "Feb 15", points[0].Label)
	assert.Equal(t, 0, points[0].Pages)
	assert.Equal(t, "Feb 16", points[1].Label)
	assert.Equal(t, 7, points[1].Pages)
	assert.Equal(t, "Mar 15", points[29].Label)
}

func TestSeries_Year(t *testing.T) {
	books := []domain.Book{bookWith("a",
		session("2024-03-01", 10),
		session("2023-03-20", 5), // same label as the current month
		session("2023-03-10", 7), // before the window
		session("2023-11-05", 4),
	)}

	points := slices.Collect(Series(books, domain.StatsRangeYear, testNow))

	require.Len(t, points, 12)
	assert.Equal(t, "Apr", points[0].Label)
	assert.Equal(t, "Mar", points[11].Label)
	assert.Equal(t, 15, points[11].Pages)
	assert.Equal(t, 4, points[7].Pages) // Nov
}

func TestSeries_IsRestartableAndStoppable(t *testing.T) {
	books := []domain.Book{bookWith("a", session("2024-03-15", 10))}
	seq := Series(books, domain.StatsRangeWeek, testNow)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestSeries_DoesNotMutateBooks(t *testing.T) {
	books := []domain.Book{bookWith("a", session("2024-03-15", 10))}
	before := books[0].Clone()

	_ = slices.Collect(Series(books, domain.StatsRangeYear, testNow))

	assert.Equal(t, before, books[0])
}
