// Package search matches books against a free-text query.
//
// A query matches a book when it appears, ignoring case, anywhere in the
// title, author, or description. Collections are small and change on every
// write, so each search builds a throwaway in-memory Bleve index over the
// caller's snapshot instead of maintaining one on disk.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"golang.org/x/text/unicode/norm"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

// BookIndex is an in-memory index over one collection snapshot.
type BookIndex struct {
	index  bleve.Index
	size   int
	logger *slog.Logger
}

// NewBookIndex indexes books. Close the index when done.
func NewBookIndex(books []domain.Book, logger *slog.Logger) (*BookIndex, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m, err := buildIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("build mapping: %w", err)
	}

	index, err := bleve.NewMemOnly(m)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	batch := index.NewBatch()
	for _, b := range books {
		doc := map[string]any{
			"title":       normalize(b.Title),
			"author":      normalize(b.Author),
			"description": normalize(b.Description),
		}
		if err := batch.Index(b.ID, doc); err != nil {
			index.Close()
			return nil, fmt.Errorf("index book %s: %w", b.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return &BookIndex{index: index, size: len(books), logger: logger}, nil
}

// Close releases the index.
func (i *BookIndex) Close() error {
	return i.index.Close()
}

// Match returns the IDs of books matching q.
func (i *BookIndex) Match(ctx context.Context, q string) (map[string]bool, error) {
	term := queryTerm(q)
	if term == "" || i.size == 0 {
		return map[string]bool{}, nil
	}

	pattern := "*" + term + "*"
	fieldQueries := make([]query.Query, len(searchableFields))
	for n, field := range searchableFields {
		wq := bleve.NewWildcardQuery(pattern)
		wq.SetField(field)
		fieldQueries[n] = wq
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(fieldQueries...), i.size, 0, false)
	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	ids := make(map[string]bool, len(res.Hits))
	for _, hit := range res.Hits {
		ids[hit.ID] = true
	}

	i.logger.Debug("search executed", "query", q, "hits", len(ids), "took", res.Took)
	return ids, nil
}

// Filter returns the books matching q in their original order.
// An empty query returns books unchanged.
func Filter(ctx context.Context, books []domain.Book, q string, logger *slog.Logger) ([]domain.Book, error) {
	if queryTerm(q) == "" {
		return books, nil
	}

	idx, err := NewBookIndex(books, logger)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	ids, err := idx.Match(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Book, 0, len(ids))
	for _, b := range books {
		if ids[b.ID] {
			out = append(out, b)
		}
	}
	return out, nil
}

// queryTerm normalizes user input into a literal wildcard body.
// Wildcard metacharacters are dropped so input is always matched literally.
func queryTerm(q string) string {
	q = strings.NewReplacer("*", "", "?", "").Replace(q)
	return strings.TrimSpace(normalize(q))
}

func normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
