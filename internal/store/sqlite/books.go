package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

const booksTable = "books"

// SQLite caps bound parameters per statement; 8 columns x 500 rows stays well under.
const insertBatchSize = 500

// ListBooks returns the owner's books in saved order.
func (s *Store) ListBooks(ctx context.Context, ownerID string) ([]domain.Book, error) {
	query, args, err := qb.Select("book_data").
		From(booksTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		var b domain.Book
		if err := json.Unmarshal([]byte(data), &b); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

// ReplaceBooks deletes every row for the owner and inserts books in their
// place. Both steps run in one transaction, so readers never see a partial
// collection.
func (s *Store) ReplaceBooks(ctx context.Context, ownerID string, books []domain.Book) error {
	if id, ok := duplicateID(books); ok {
		return fmt.Errorf("replace books: duplicate book id %q", id)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args, err := qb.Delete(booksTable).Where(sq.Eq{"owner_id": ownerID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete books: %w", err)
	}

	now := formatTime(time.Now())
	position := 0
	for batch := range slices.Chunk(books, insertBatchSize) {
		insert := qb.Insert(booksTable).
			Columns("id", "owner_id", "book_id", "position", "title", "author", "book_data", "created_at")
		for _, b := range batch {
			data, err := json.Marshal(b)
			if err != nil {
				return fmt.Errorf("encode book %s: %w", b.ID, err)
			}
			insert = insert.Values(uuid.NewString(), ownerID, b.ID, position, b.Title, b.Author, string(data), now)
			position++
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert books: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Debug("replaced remote collection", "owner_id", ownerID, "books", len(books))
	return nil
}

func duplicateID(books []domain.Book) (string, bool) {
	seen := make(map[string]bool, len(books))
	for _, b := range books {
		if seen[b.ID] {
			return b.ID, true
		}
		seen[b.ID] = true
	}
	return "", false
}

// CountBooks returns how many books the owner has stored.
func (s *Store) CountBooks(ctx context.Context, ownerID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From(booksTable).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}
