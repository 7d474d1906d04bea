package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

const (
	booksKeyPrefix = "books:"
	// savedAtKey records the latest write for any owner.
	savedAtKey = "meta:books_saved_at"
)

// booksKey is the cache entry for one owner's collection. The empty owner
// is the anonymous, local-only collection.
func booksKey(ownerID string) []byte {
	return []byte(booksKeyPrefix + ownerID)
}

// LoadBooks returns the owner's cached collection. found is false if nothing
// was ever saved for them, which callers treat differently from a saved empty
// collection.
func (s *Store) LoadBooks(ctx context.Context, ownerID string) (books []domain.Book, found bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	if err := s.get(booksKey(ownerID), &books); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load books: %w", err)
	}
	return books, true, nil
}

// SaveBooks overwrites the owner's cached collection.
func (s *Store) SaveBooks(ctx context.Context, ownerID string, books []domain.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if books == nil {
		books = []domain.Book{}
	}

	if err := s.setAll(map[string]any{
		string(booksKey(ownerID)): books,
		savedAtKey:                time.Now(),
	}); err != nil {
		return fmt.Errorf("save books: %w", err)
	}
	return nil
}

// LastSaved returns when any collection was last written.
// ok is false if the cache has never been written.
func (s *Store) LastSaved(ctx context.Context) (at time.Time, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, false, err
	}

	present, err := s.exists([]byte(savedAtKey))
	if err != nil || !present {
		return time.Time{}, false, err
	}
	if err := s.get([]byte(savedAtKey), &at); err != nil {
		return time.Time{}, false, fmt.Errorf("load saved-at: %w", err)
	}
	return at, true, nil
}
