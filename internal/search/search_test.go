package search

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pagetrail/pagetrail-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooks() []domain.Book {
	return []domain.Book{
		{ID: "book-1", Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Description: "Jazz age excess"},
		{ID: "book-2", Title: "Sapiens", Author: "Yuval Noah Harari", Description: "A brief history of humankind"},
		{ID: "book-3", Title: "Atomic Habits", Author: "James Clear"},
		{ID: "book-4", Title: "Café au lait", Author: "Zoë Müller"},
	}
}

func ids(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns all", "", []string{"book-1", "book-2", "book-3", "book-4"}},
		{"whitespace query returns all", "   ", []string{"book-1", "book-2", "book-3", "book-4"}},
		{"title substring", "gats", []string{"book-1"}},
		{"case insensitive", "SAPIENS", []string{"book-2"}},
		{"author substring", "clear", []string{"book-3"}},
		{"description substring", "humankind", []string{"book-2"}},
		{"spans words", "great gat", []string{"book-1"}},
		{"matches several in order", "a", []string{"book-1", "book-2", "book-3", "book-4"}},
		{"unicode", "zoë", []string{"book-4"}},
		{"wildcards are literal", "*", []string{"book-1", "book-2", "book-3", "book-4"}},
		{"regexp characters are literal", "f.", []string{"book-1"}},
		{"no match", "tolkien", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(context.Background(), testBooks(), tt.query, logger)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestBookIndex_Match(t *testing.T) {
	idx, err := NewBookIndex(testBooks(), nil)
	require.NoError(t, err)
	defer idx.Close()

	got, err := idx.Match(context.Background(), "harari")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"book-2": true}, got)
}

func TestBookIndex_Empty(t *testing.T) {
	idx, err := NewBookIndex(nil, nil)
	require.NoError(t, err)
	defer idx.Close()

	got, err := idx.Match(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
}
