package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_AddPrepends(t *testing.T) {
	var c Collection
	c.Add(Book{ID: "book-1"})
	c.Add(Book{ID: "book-2"})

	require.Equal(t, 2, c.Len())
	assert.Equal(t, "book-2", c.Books[0].ID)
	assert.Equal(t, "book-1", c.Books[1].ID)
}

func TestCollection_MissingIDIsNoop(t *testing.T) {
	c := NewCollection([]Book{{ID: "book-1", Title: "Dune"}})

	assert.False(t, c.Replace(Book{ID: "book-x", Title: "Other"}))
	assert.False(t, c.Remove("book-x"))
	_, ok := c.Find("book-x")
	assert.False(t, ok)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Dune", c.Books[0].Title)
}

func TestCollection_ReplaceAndRemove(t *testing.T) {
	c := NewCollection([]Book{{ID: "book-1"}, {ID: "book-2"}, {ID: "book-3"}})

	assert.True(t, c.Replace(Book{ID: "book-2", Title: "Updated"}))
	b, ok := c.Find("book-2")
	require.True(t, ok)
	assert.Equal(t, "Updated", b.Title)

	assert.True(t, c.Remove("book-2"))
	assert.Equal(t, []string{"book-1", "book-3"}, []string{c.Books[0].ID, c.Books[1].ID})
}

func TestCollection_CloneIsDeep(t *testing.T) {
	c := NewCollection([]Book{{
		ID:             "book-1",
		ReadingHistory: []ReadingSession{{Date: "2024-01-01", PagesRead: 10}},
	}})

	clone := c.Clone()
	clone.Books[0].ReadingHistory[0].PagesRead = 99
	clone.Books[0].Title = "changed"

	assert.Equal(t, 10, c.Books[0].ReadingHistory[0].PagesRead)
	assert.Empty(t, c.Books[0].Title)
}

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusToRead, true},
		{StatusReading, true},
		{StatusFinished, true},
		{"", false},
		{"paused", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
		})
	}
}
