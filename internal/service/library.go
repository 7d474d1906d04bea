// Package service provides the business logic behind the PageTrail API.
//
// Every mutation loads the caller's collection, applies a pure update from
// the progress package, and saves the result back while holding the
// caller's lock, so concurrent requests for one owner cannot interleave.
package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/collectionsync"
	"github.com/pagetrail/pagetrail-server/internal/domain"
	"github.com/pagetrail/pagetrail-server/internal/errors"
	"github.com/pagetrail/pagetrail-server/internal/id"
	"github.com/pagetrail/pagetrail-server/internal/notes"
	"github.com/pagetrail/pagetrail-server/internal/progress"
	"github.com/pagetrail/pagetrail-server/internal/search"
	"github.com/pagetrail/pagetrail-server/internal/validation"
)

// SortOrder selects how ListBooks orders its result.
type SortOrder string

// Supported sort orders.
const (
	SortDateDesc SortOrder = "date-desc"
	SortDateAsc  SortOrder = "date-asc"
	SortTitle    SortOrder = "title"
	SortAuthor   SortOrder = "author"
	SortProgress SortOrder = "progress"
)

// Valid returns true if the sort order is recognized. Empty means the
// collection's stored order.
func (o SortOrder) Valid() bool {
	switch o {
	case "", SortDateDesc, SortDateAsc, SortTitle, SortAuthor, SortProgress:
		return true
	default:
		return false
	}
}

// ListOptions filters and orders a book listing.
type ListOptions struct {
	Query  string
	Status domain.Status
	Sort   SortOrder
}

// CreateBookRequest contains the fields for adding a book.
type CreateBookRequest struct {
	Title       string        `json:"title" validate:"required,notblank,max=500"`
	Author      string        `json:"author" validate:"required,notblank,max=500"`
	CoverURL    string        `json:"coverUrl,omitempty" validate:"omitempty,url"`
	Description string        `json:"description,omitempty" validate:"max=10000"`
	Category    string        `json:"category,omitempty" validate:"max=100"`
	Status      domain.Status `json:"status,omitempty" validate:"omitempty,bookstatus"`
	TotalPages  int           `json:"totalPages" validate:"gte=0"`
	CurrentPage int           `json:"currentPage" validate:"gte=0"`
}

// UpdateBookRequest changes book metadata. Nil fields are left alone.
type UpdateBookRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitnil,notblank,max=500"`
	Author      *string `json:"author,omitempty" validate:"omitnil,notblank,max=500"`
	CoverURL    *string `json:"coverUrl,omitempty" validate:"omitnil,omitempty,url"`
	Description *string `json:"description,omitempty" validate:"omitnil,max=10000"`
	Category    *string `json:"category,omitempty" validate:"omitnil,max=100"`
	TotalPages  *int    `json:"totalPages,omitempty" validate:"omitnil,gte=0"`
}

// MutationResult is the outcome of a change to one book.
// Found is false when the book does not exist; nothing is written then.
// Synced reports whether the change reached the remote store.
type MutationResult struct {
	Book   domain.Book `json:"book"`
	Found  bool        `json:"found"`
	Synced bool        `json:"synced"`
}

// LibraryService manages a reader's book collection.
type LibraryService struct {
	collections *Collections
	validator   *validation.Validator
	now         func() time.Time
	logger      *slog.Logger
}

// NewLibraryService creates a new library service.
func NewLibraryService(collections *Collections, validator *validation.Validator, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		collections: collections,
		validator:   validator,
		now:         time.Now,
		logger:      logger,
	}
}

// ListBooks returns the caller's books, optionally searched, filtered by
// status and sorted.
func (s *LibraryService) ListBooks(ctx context.Context, identity collectionsync.Identity, opts ListOptions) ([]domain.Book, error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, errors.Validationf("invalid status %q", opts.Status)
	}
	if !opts.Sort.Valid() {
		return nil, errors.Validationf("invalid sort %q", opts.Sort)
	}

	collection := s.collections.Load(ctx, identity)

	books, err := search.Filter(ctx, collection.Books, opts.Query, s.logger)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	books = slices.Clone(books)

	if opts.Status != "" {
		books = slices.DeleteFunc(books, func(b domain.Book) bool {
			return b.Status != opts.Status
		})
	}

	sortBooks(books, opts.Sort)
	return books, nil
}

// GetBook returns a single book.
func (s *LibraryService) GetBook(ctx context.Context, identity collectionsync.Identity, bookID string) (domain.Book, error) {
	collection := s.collections.Load(ctx, identity)

	book, ok := collection.Find(bookID)
	if !ok {
		return domain.Book{}, errors.NotFoundf("book %s not found", bookID)
	}
	return book, nil
}

// AddBook creates a book and places it first in the collection.
func (s *LibraryService) AddBook(ctx context.Context, identity collectionsync.Identity, req CreateBookRequest) (*MutationResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, fmt.Errorf("generate book id: %w", err)
	}

	book := domain.Book{
		ID:          bookID,
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		CoverURL:    strings.TrimSpace(req.CoverURL),
		Description: req.Description,
		Status:      cmp.Or(req.Status, domain.StatusToRead),
		Category:    categoryOrDefault(req.Category),
		DateAdded:   s.now().UTC(),
		CurrentPage: req.CurrentPage,
	}
	if book.CoverURL == "" {
		book.CoverURL = placeholderCover(bookID)
	}
	book = progress.SetTotalPages(book, req.TotalPages)

	_, synced := s.collections.Update(ctx, identity, func(c *domain.Collection) bool {
		c.Add(book)
		return true
	})

	s.logger.Info("book added",
		"book_id", book.ID,
		"user_id", identity.UserID,
		"synced", synced,
	)

	return &MutationResult{Book: book, Found: true, Synced: synced}, nil
}

// UpdateBook applies metadata changes.
func (s *LibraryService) UpdateBook(ctx context.Context, identity collectionsync.Identity, bookID string, req UpdateBookRequest) (*MutationResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	return s.mutate(ctx, identity, bookID, func(book domain.Book) domain.Book {
		if req.Title != nil {
			book.Title = strings.TrimSpace(*req.Title)
		}
		if req.Author != nil {
			book.Author = strings.TrimSpace(*req.Author)
		}
		if req.CoverURL != nil {
			book.CoverURL = strings.TrimSpace(*req.CoverURL)
		}
		if req.Description != nil {
			book.Description = *req.Description
		}
		if req.Category != nil {
			book.Category = categoryOrDefault(*req.Category)
		}
		if req.TotalPages != nil {
			book = progress.DeriveStatusFromProgress(progress.SetTotalPages(book, *req.TotalPages))
		}
		return book
	}), nil
}

// SetCurrentPage moves the book to page, recording forward progress.
func (s *LibraryService) SetCurrentPage(ctx context.Context, identity collectionsync.Identity, bookID string, page int) (*MutationResult, error) {
	now := s.now()
	return s.mutate(ctx, identity, bookID, func(book domain.Book) domain.Book {
		return progress.SetCurrentPage(book, page, now)
	}), nil
}

// AddPages advances the book by n pages.
func (s *LibraryService) AddPages(ctx context.Context, identity collectionsync.Identity, bookID string, n int) (*MutationResult, error) {
	if n <= 0 {
		return nil, errors.Validation("pages must be greater than zero")
	}

	now := s.now()
	return s.mutate(ctx, identity, bookID, func(book domain.Book) domain.Book {
		return progress.AddPages(book, n, now)
	}), nil
}

// SetStatus changes the reading status explicitly.
func (s *LibraryService) SetStatus(ctx context.Context, identity collectionsync.Identity, bookID string, status domain.Status) (*MutationResult, error) {
	if !status.Valid() {
		return nil, errors.Validationf("invalid status %q", status)
	}

	return s.mutate(ctx, identity, bookID, func(book domain.Book) domain.Book {
		return progress.SetStatus(book, status)
	}), nil
}

// SaveNotes replaces the book's notes, converting HTML input to markdown.
func (s *LibraryService) SaveNotes(ctx context.Context, identity collectionsync.Identity, bookID, text string, format notes.Format) (*MutationResult, error) {
	if !format.Valid() {
		return nil, errors.Validationf("invalid notes format %q", format)
	}

	converted, err := notes.ToMarkdown(text, format)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "could not convert notes")
	}

	return s.mutate(ctx, identity, bookID, func(book domain.Book) domain.Book {
		book.Notes = converted
		return book
	}), nil
}

// AddQuote appends a quote to the book.
func (s *LibraryService) AddQuote(ctx context.Context, identity collectionsync.Identity, bookID, text string) (*MutationResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Validation("quote text is required")
	}

	quoteID, err := id.Generate(id.PrefixQuote)
	if err != nil {
		return nil, fmt.Errorf("generate quote id: %w", err)
	}
	quote := domain.Quote{ID: quoteID, Text: text, Date: s.now().UTC()}

	return s.mutate(ctx, identity, bookID, func(book domain.Book) domain.Book {
		book.Quotes = append(book.Quotes, quote)
		return book
	}), nil
}

// DeleteQuote removes a quote. A missing quote leaves the book unchanged.
func (s *LibraryService) DeleteQuote(ctx context.Context, identity collectionsync.Identity, bookID, quoteID string) (*MutationResult, error) {
	return s.mutate(ctx, identity, bookID, func(book domain.Book) domain.Book {
		if i := book.FindQuote(quoteID); i >= 0 {
			book.Quotes = slices.Delete(book.Quotes, i, i+1)
		}
		return book
	}), nil
}

// DeleteBook removes a book from the collection.
func (s *LibraryService) DeleteBook(ctx context.Context, identity collectionsync.Identity, bookID string) (*MutationResult, error) {
	var book domain.Book
	found, synced := s.collections.Update(ctx, identity, func(c *domain.Collection) bool {
		var ok bool
		if book, ok = c.Find(bookID); !ok {
			return false
		}
		c.Remove(bookID)
		return true
	})
	if !found {
		return &MutationResult{}, nil
	}

	s.logger.Info("book deleted",
		"book_id", bookID,
		"user_id", identity.UserID,
		"synced", synced,
	)

	return &MutationResult{Book: book, Found: true, Synced: synced}, nil
}

// mutate runs fn against one book under the owner's lock and saves the
// collection if the book exists.
func (s *LibraryService) mutate(
	ctx context.Context,
	identity collectionsync.Identity,
	bookID string,
	fn func(domain.Book) domain.Book,
) *MutationResult {
	var updated domain.Book
	found, synced := s.collections.Update(ctx, identity, func(c *domain.Collection) bool {
		book, ok := c.Find(bookID)
		if !ok {
			return false
		}
		updated = fn(book.Clone())
		c.Replace(updated)
		return true
	})
	if !found {
		s.logger.Debug("mutation skipped, book not found",
			"book_id", bookID,
			"user_id", identity.UserID,
		)
		return &MutationResult{}
	}

	return &MutationResult{Book: updated, Found: true, Synced: synced}
}

func sortBooks(books []domain.Book, order SortOrder) {
	switch order {
	case SortDateDesc:
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return b.DateAdded.Compare(a.DateAdded)
		})
	case SortDateAsc:
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return a.DateAdded.Compare(b.DateAdded)
		})
	case SortTitle:
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	case SortAuthor:
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return cmp.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
		})
	case SortProgress:
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return cmp.Compare(progress.Percent(b), progress.Percent(a))
		})
	}
}

func categoryOrDefault(category string) string {
	if c := strings.TrimSpace(category); c != "" {
		return c
	}
	return domain.UncategorizedCategory
}

// placeholderCover gives new books a stable generated cover.
func placeholderCover(seed string) string {
	return "https://picsum.photos/seed/" + seed + "/200/300"
}
