package domain

import (
	"fmt"
	"time"
)

// StatsRange is the window used for the pages-read chart.
type StatsRange string

// StatsRange constants.
const (
	StatsRangeWeek  StatsRange = "week"
	StatsRangeMonth StatsRange = "month"
	StatsRangeYear  StatsRange = "year"
)

// ParseStatsRange parses a range, defaulting to week for an empty string.
func ParseStatsRange(s string) (StatsRange, error) {
	r := StatsRange(s)
	if s == "" {
		return StatsRangeWeek, nil
	}
	if !r.Valid() {
		return "", fmt.Errorf("unknown range %q", s)
	}
	return r, nil
}

// Valid returns true if the range is a recognized value.
func (r StatsRange) Valid() bool {
	switch r {
	case StatsRangeWeek, StatsRangeMonth, StatsRangeYear:
		return true
	default:
		return false
	}
}

// Start returns the beginning of the window ending at now.
// The window is a rolling one, not aligned to calendar boundaries.
func (r StatsRange) Start(now time.Time) time.Time {
	switch r {
	case StatsRangeMonth:
		return now.AddDate(0, -1, 0)
	case StatsRangeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// LabelLayout returns the time layout used to label chart buckets.
func (r StatsRange) LabelLayout() string {
	switch r {
	case StatsRangeMonth:
		return "Jan 2"
	case StatsRangeYear:
		return "Jan"
	default:
		return "Mon"
	}
}

// SeriesPoint is one bucket of the pages-read chart.
type SeriesPoint struct {
	Start time.Time `json:"start"` // midnight of the latest day carrying Label
	Label string    `json:"label"`
	Pages int       `json:"pages"`
}

// CategoryCount is the number of books in a category.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Total int    `json:"total"`
}

// PageTotals sums pages read over fixed windows.
type PageTotals struct {
	Today       int `json:"today"`
	Yesterday   int `json:"yesterday"`
	MonthToDate int `json:"monthToDate"`
}

// RecentSession is a reading session flattened with its book.
type RecentSession struct {
	Timestamp time.Time `json:"timestamp"`
	BookID    string    `json:"bookId"`
	BookTitle string    `json:"bookTitle"`
	Date      Day       `json:"date"`
	PagesRead int       `json:"pagesRead"`
}

// LibraryCounts tallies books by status.
type LibraryCounts struct {
	Total    int `json:"total"`
	ToRead   int `json:"toRead"`
	Reading  int `json:"reading"`
	Finished int `json:"finished"`
}

// Dashboard bundles every aggregate shown on the analytics page.
type Dashboard struct {
	GeneratedAt   time.Time       `json:"generatedAt"`
	Range         StatsRange      `json:"range"`
	Series        []SeriesPoint   `json:"series"`
	Categories    []CategoryCount `json:"categories"`
	Recent        []RecentSession `json:"recent"`
	Totals        PageTotals      `json:"totals"`
	Counts        LibraryCounts   `json:"counts"`
	CurrentStreak int             `json:"currentStreak"`
	LongestStreak int             `json:"longestStreak"`
}
