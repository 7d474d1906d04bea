package main

import (
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

// demoLastDay is the most recent day in the demo reading history.
const demoLastDay domain.Day = "2025-04-08"

type demoSession struct {
	day   domain.Day
	pages int
}

func demoLibrary() []domain.Book {
	return []domain.Book{
		demoBook("demo-1", "The Great Gatsby", "F. Scott Fitzgerald", "Fiction",
			domain.StatusFinished, 180, 180, "2025-03-01",
			demoSession{"2025-04-01", 30},
			demoSession{"2025-04-02", 25},
			demoSession{"2025-04-03", 20},
			demoSession{"2025-04-04", 35},
			demoSession{"2025-04-05", 40},
			demoSession{"2025-04-06", 15},
			demoSession{"2025-04-07", 15},
		),
		demoBook("demo-2", "Atomic Habits", "James Clear", "Self-help",
			domain.StatusReading, 320, 200, "2025-03-15",
			demoSession{"2025-04-02", 20},
			demoSession{"2025-04-03", 30},
			demoSession{"2025-04-05", 25},
			demoSession{"2025-04-06", 35},
			demoSession{"2025-04-07", 40},
			demoSession{"2025-04-08", 50},
		),
		demoBook("demo-3", "Deep Work", "Cal Newport", "Business",
			domain.StatusReading, 296, 150, "2025-03-20",
			demoSession{"2025-04-01", 40},
			demoSession{"2025-04-04", 35},
			demoSession{"2025-04-06", 45},
			demoSession{"2025-04-08", 30},
		),
	}
}

func demoBook(
	id, title, author, category string,
	status domain.Status,
	totalPages, currentPage int,
	added domain.Day,
	sessions ...demoSession,
) domain.Book {
	book := domain.Book{
		ID:          id,
		Title:       title,
		Author:      author,
		Category:    category,
		Status:      status,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		DateAdded:   added.In(time.UTC),
	}
	for _, s := range sessions {
		book.ReadingHistory = append(book.ReadingHistory, domain.ReadingSession{
			Date:      s.day,
			PagesRead: s.pages,
			Timestamp: s.day.In(time.UTC).Add(20 * time.Hour),
		})
	}
	return book
}

// rebaseHistory shifts every date so demoLastDay lands on now's day.
func rebaseHistory(books []domain.Book, now time.Time) []domain.Book {
	offset := int(domain.DayOf(now).In(time.UTC).Sub(demoLastDay.In(time.UTC)).Hours() / 24)

	out := make([]domain.Book, len(books))
	for i, b := range books {
		b = b.Clone()
		b.DateAdded = b.DateAdded.AddDate(0, 0, offset)
		for j := range b.ReadingHistory {
			s := &b.ReadingHistory[j]
			s.Date = s.Date.AddDays(offset)
			s.Timestamp = s.Timestamp.AddDate(0, 0, offset)
		}
		out[i] = b
	}
	return out
}
