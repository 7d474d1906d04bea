// Package domain contains the core entities of the PageTrail reading tracker.
package domain

import (
	"slices"
	"time"
)

// Status is the reading state of a book.
type Status string

// Status values as persisted by the client application.
const (
	StatusToRead   Status = "to-read"
	StatusReading  Status = "reading"
	StatusFinished Status = "finished"
)

// Valid returns true if the status is a recognized value.
func (s Status) Valid() bool {
	switch s {
	case StatusToRead, StatusReading, StatusFinished:
		return true
	default:
		return false
	}
}

// UncategorizedCategory is assigned when a book is created without a category.
const UncategorizedCategory = "Uncategorized"

// Book is a single entry in a reader's collection.
// JSON names match the array persisted by the browser client so both tiers
// can round-trip the same payload.
type Book struct {
	DateAdded      time.Time        `json:"dateAdded"`
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Author         string           `json:"author"`
	CoverURL       string           `json:"coverUrl,omitempty"`
	Description    string           `json:"description,omitempty"`
	Status         Status           `json:"status"`
	Category       string           `json:"category,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	Quotes         []Quote          `json:"quotes,omitempty"`
	ReadingHistory []ReadingSession `json:"readingHistory,omitempty"`
	TotalPages     int              `json:"totalPages"`
	CurrentPage    int              `json:"currentPage"`
}

// Quote is a passage saved from a book.
type Quote struct {
	Date time.Time `json:"date"`
	ID   string    `json:"id"`
	Text string    `json:"text"`
}

// Clone returns a copy of the book that shares no slices with the receiver.
func (b Book) Clone() Book {
	b.Quotes = slices.Clone(b.Quotes)
	b.ReadingHistory = slices.Clone(b.ReadingHistory)
	return b
}

// PagesOn returns the pages recorded for the given day, or 0.
func (b *Book) PagesOn(day Day) int {
	for _, s := range b.ReadingHistory {
		if s.Date == day {
			return s.PagesRead
		}
	}
	return 0
}

// FindQuote returns the index of the quote with the given ID, or -1.
func (b *Book) FindQuote(quoteID string) int {
	return slices.IndexFunc(b.Quotes, func(q Quote) bool { return q.ID == quoteID })
}
