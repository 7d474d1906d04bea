package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "user-1"

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "cache"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadBooks_NeverSaved(t *testing.T) {
	s := setupTestStore(t)

	books, found, err := s.LoadBooks(context.Background(), owner)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, books)
}

func TestSaveBooks_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	ts := time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)
	books := []domain.Book{{
		ID:          "book-1",
		Title:       "The Hobbit",
		Author:      "J.R.R. Tolkien",
		TotalPages:  310,
		CurrentPage: 120,
		Status:      domain.StatusReading,
		DateAdded:   ts,
		Quotes:      []domain.Quote{{ID: "quote-1", Text: "Not all who wander are lost", Date: ts}},
		ReadingHistory: []domain.ReadingSession{
			{Date: "2024-02-03", PagesRead: 120, Timestamp: ts},
		},
	}}

	require.NoError(t, s.SaveBooks(ctx, owner, books))
	got, found, err := s.LoadBooks(ctx, owner)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, books, got)
}

func TestSaveBooks_EmptyIsFound(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveBooks(ctx, owner, nil))
	got, found, err := s.LoadBooks(ctx, owner)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, got)
}

func TestSaveBooks_Overwrites(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveBooks(ctx, owner, []domain.Book{{ID: "book-1"}, {ID: "book-2"}}))
	require.NoError(t, s.SaveBooks(ctx, owner, []domain.Book{{ID: "book-3"}}))

	got, _, err := s.LoadBooks(ctx, owner)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "book-3", got[0].ID)
}

func TestBooks_IsolatedPerOwner(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveBooks(ctx, "user-alice", []domain.Book{{ID: "book-1", Title: "Sapiens"}}))
	require.NoError(t, s.SaveBooks(ctx, "", []domain.Book{{ID: "book-2", Title: "Offline"}}))

	got, found, err := s.LoadBooks(ctx, "user-bob")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)

	got, found, err = s.LoadBooks(ctx, "")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Offline", got[0].Title)

	got, _, err = s.LoadBooks(ctx, "user-alice")
	require.NoError(t, err)
	assert.Equal(t, "Sapiens", got[0].Title)
}

func TestLastSaved(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, ok, err := s.LastSaved(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	before := time.Now()
	require.NoError(t, s.SaveBooks(ctx, owner, []domain.Book{{ID: "book-1"}}))

	at, ok, err := s.LastSaved(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, at.Before(before.Truncate(time.Second)))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache")
	ctx := context.Background()

	s, err := New(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveBooks(ctx, owner, []domain.Book{{ID: "book-1", Title: "Kept"}}))
	require.NoError(t, s.Close())

	s, err = New(path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, found, err := s.LoadBooks(ctx, owner)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Kept", got[0].Title)
}

func TestLoadBooks_CanceledContext(t *testing.T) {
	s, err := NewInMemory(nil)
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = s.LoadBooks(ctx, owner)
	assert.ErrorIs(t, err, context.Canceled)
}
