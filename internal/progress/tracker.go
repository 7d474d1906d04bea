package progress

import (
	"math"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

// SetCurrentPage moves the book to requestedPage, clamped to [0, TotalPages].
// Forward movement is recorded as a session on now's calendar day; moving
// backward only changes the page. The status is then derived from the page.
func SetCurrentPage(book domain.Book, requestedPage int, now time.Time) domain.Book {
	out := book.Clone()
	page := clampPage(requestedPage, out.TotalPages)

	if delta := page - out.CurrentPage; delta > 0 {
		out.ReadingHistory = RecordProgress(out.ReadingHistory, domain.DayOf(now), delta, now)
	}
	out.CurrentPage = page

	return DeriveStatusFromProgress(out)
}

// AddPages advances the current page by n. Equivalent to
// SetCurrentPage(book, book.CurrentPage+n, now).
func AddPages(book domain.Book, n int, now time.Time) domain.Book {
	return SetCurrentPage(book, book.CurrentPage+n, now)
}

// DeriveStatusFromProgress sets finished when the last page is reached and
// reading when any page is. A book on page 0 keeps its status.
func DeriveStatusFromProgress(book domain.Book) domain.Book {
	switch {
	case book.TotalPages > 0 && book.CurrentPage == book.TotalPages:
		book.Status = domain.StatusFinished
	case book.CurrentPage > 0:
		book.Status = domain.StatusReading
	}
	return book
}

// SetStatus applies an explicit status change.
// Moving a book back to to-read resets its page; history is kept.
func SetStatus(book domain.Book, status domain.Status) domain.Book {
	book.Status = status
	if status == domain.StatusToRead {
		book.CurrentPage = 0
	}
	return book
}

// SetTotalPages changes the page count, clamping negatives to zero and
// pulling the current page back inside the new bound.
func SetTotalPages(book domain.Book, total int) domain.Book {
	book.TotalPages = max(total, 0)
	book.CurrentPage = clampPage(book.CurrentPage, book.TotalPages)
	return book
}

// Percent returns the rounded completion percentage, or 0 for unknown length.
func Percent(book domain.Book) int {
	if book.TotalPages <= 0 {
		return 0
	}
	return int(math.Round(float64(book.CurrentPage) / float64(book.TotalPages) * 100))
}

func clampPage(page, total int) int {
	return min(max(page, 0), max(total, 0))
}
