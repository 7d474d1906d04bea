package analytics

import (
	"iter"
	"slices"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

// Series returns the pages-read chart for the window ending at now.
//
// Every calendar day from the window's first day through today seeds a
// zero-valued bucket under its label, so charts have no gaps. Days that
// share a label (the first and last weekday of a week window, or the same
// month a year apart) share one bucket positioned at the latest of them.
// A session is counted when midnight of its date falls in [start, now].
//
// Nothing is computed until the sequence is ranged over, and each range
// recomputes from the snapshot.
func Series(books []domain.Book, rng domain.StatsRange, now time.Time) iter.Seq[domain.SeriesPoint] {
	return func(yield func(domain.SeriesPoint) bool) {
		for _, p := range buildSeries(books, rng, now) {
			if !yield(p) {
				return
			}
		}
	}
}

func buildSeries(books []domain.Book, rng domain.StatsRange, now time.Time) []domain.SeriesPoint {
	loc := now.Location()
	start := rng.Start(now)
	layout := rng.LabelLayout()
	firstDay := midnight(start)

	// Walk backward so the first occurrence of a label is its latest day.
	var points []domain.SeriesPoint
	index := make(map[string]int)
	for day := midnight(now); !day.Before(firstDay); day = day.AddDate(0, 0, -1) {
		label := day.Format(layout)
		if _, ok := index[label]; ok {
			continue
		}
		index[label] = len(points)
		points = append(points, domain.SeriesPoint{Label: label, Start: day})
	}
	slices.Reverse(points)
	for i, p := range points {
		index[p.Label] = i
	}

	for s := range sessions(books) {
		at := s.Date.In(loc)
		if at.IsZero() || at.Before(start) || at.After(now) {
			continue
		}
		if i, ok := index[at.Format(layout)]; ok {
			points[i].Pages += s.PagesRead
		}
	}
	return points
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
