// Package collectionsync persists a reader's book collection to two tiers: a
// fast local cache and a durable remote store.
//
// Reads prefer the remote store and mirror it locally. Writes go to the
// local cache first and then replace the remote copy wholesale, so the last
// writer wins. Neither Load nor Save returns an error: remote failures
// degrade to local-only behavior and are logged.
package collectionsync

import (
	"context"
	"log/slog"

	"github.com/pagetrail/pagetrail-server/internal/domain"
)

// LocalCache is the fast tier. Collections are kept per owner; the empty
// owner ID holds the anonymous, local-only collection. found is false when
// nothing has ever been written for the owner.
type LocalCache interface {
	LoadBooks(ctx context.Context, ownerID string) (books []domain.Book, found bool, err error)
	SaveBooks(ctx context.Context, ownerID string, books []domain.Book) error
}

// RemoteStore is the durable per-owner tier.
type RemoteStore interface {
	ListBooks(ctx context.Context, ownerID string) ([]domain.Book, error)
	// ReplaceBooks atomically swaps the owner's rows for books.
	ReplaceBooks(ctx context.Context, ownerID string, books []domain.Book) error
}

// Identity is the caller as established by a verified access token.
// The zero value is an anonymous, local-only caller.
type Identity struct {
	UserID string
}

// Authenticated reports whether the identity may use the remote store.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// Syncer reconciles a collection between the two tiers.
type Syncer struct {
	local  LocalCache
	remote RemoteStore
	logger *slog.Logger
}

// New creates a Syncer.
func New(local LocalCache, remote RemoteStore, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		local:  local,
		remote: remote,
		logger: logger,
	}
}

// Load returns the identity's collection.
//
// Anonymous callers get the anonymous cache entry. Authenticated callers get
// the remote collection, mirrored into their own cache entry. When the remote
// is empty but the caller's cache entry is not, that entry is pushed up once
// and returned; when the remote cannot be read, it is returned instead. One
// owner's cache entry is never served to, or migrated for, another.
func (s *Syncer) Load(ctx context.Context, id Identity) domain.Collection {
	if !id.Authenticated() {
		return domain.NewCollection(s.loadLocal(ctx, id))
	}

	remote, err := s.remote.ListBooks(ctx, id.UserID)
	if err != nil {
		s.logger.Warn("remote load failed, using local cache",
			"user_id", id.UserID,
			"error", err,
		)
		return domain.NewCollection(s.loadLocal(ctx, id))
	}

	if len(remote) > 0 {
		if err := s.local.SaveBooks(ctx, id.UserID, remote); err != nil {
			s.logger.Warn("failed to mirror remote collection locally",
				"user_id", id.UserID,
				"books", len(remote),
				"error", err,
			)
		}
		return domain.NewCollection(remote)
	}

	local := s.loadLocal(ctx, id)
	if len(local) > 0 {
		if err := s.remote.ReplaceBooks(ctx, id.UserID, local); err != nil {
			s.logger.Warn("failed to migrate local collection to remote",
				"user_id", id.UserID,
				"books", len(local),
				"error", err,
			)
		} else {
			s.logger.Info("migrated local collection to remote",
				"user_id", id.UserID,
				"books", len(local),
			)
		}
	}
	return domain.NewCollection(local)
}

// Save writes the collection to the identity's cache entry and, for
// authenticated callers, replaces the remote copy. It reports whether the
// collection is stored in both tiers; anonymous saves therefore return false.
// The collection is copied before any I/O.
func (s *Syncer) Save(ctx context.Context, id Identity, c domain.Collection) bool {
	books := c.Clone().Books
	if books == nil {
		books = []domain.Book{}
	}

	localOK := true
	if err := s.local.SaveBooks(ctx, id.UserID, books); err != nil {
		localOK = false
		s.logger.Error("failed to write local cache",
			"user_id", id.UserID,
			"books", len(books),
			"error", err,
		)
	}

	if !id.Authenticated() {
		return false
	}

	if err := s.remote.ReplaceBooks(ctx, id.UserID, books); err != nil {
		s.logger.Warn("remote save failed",
			"user_id", id.UserID,
			"books", len(books),
			"error", err,
		)
		return false
	}
	return localOK
}

// loadLocal reads the identity's cache entry. Entries written by older
// clients may repeat a book ID; only the first occurrence is kept.
func (s *Syncer) loadLocal(ctx context.Context, id Identity) []domain.Book {
	books, found, err := s.local.LoadBooks(ctx, id.UserID)
	if err != nil {
		s.logger.Warn("failed to read local cache", "user_id", id.UserID, "error", err)
		return []domain.Book{}
	}
	if !found || books == nil {
		return []domain.Book{}
	}

	books, dropped := dedupeByID(books)
	if len(dropped) > 0 {
		s.logger.Warn("dropped duplicate books from local cache",
			"user_id", id.UserID,
			"book_ids", dropped,
		)
	}
	return books
}

// dedupeByID keeps the first book for each ID and reports the IDs of the
// books it dropped.
func dedupeByID(books []domain.Book) (kept []domain.Book, dropped []string) {
	seen := make(map[string]bool, len(books))
	kept = make([]domain.Book, 0, len(books))
	for _, b := range books {
		if seen[b.ID] {
			dropped = append(dropped, b.ID)
			continue
		}
		seen[b.ID] = true
		kept = append(kept, b)
	}
	return kept, dropped
}
