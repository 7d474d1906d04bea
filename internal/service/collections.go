package service

import (
	"context"

	"github.com/pagetrail/pagetrail-server/internal/collectionsync"
	"github.com/pagetrail/pagetrail-server/internal/domain"
)

// Collections serializes access to each owner's collection across services.
// Loading is not read-only (it mirrors the remote copy into the cache and may
// migrate the cache up), so reads take the same per-owner lock as updates.
type Collections struct {
	syncer *collectionsync.Syncer
	locks  *keyedMutex
}

// NewCollections creates the shared collection gateway.
func NewCollections(syncer *collectionsync.Syncer) *Collections {
	return &Collections{
		syncer: syncer,
		locks:  newKeyedMutex(),
	}
}

// Load returns a snapshot of the owner's collection.
func (c *Collections) Load(ctx context.Context, identity collectionsync.Identity) domain.Collection {
	unlock := c.locks.Lock(identity.UserID)
	defer unlock()
	return c.syncer.Load(ctx, identity)
}

// Update runs fn on the owner's collection and saves it when fn reports a
// change. Load, fn and Save happen under one lock, so concurrent updates for
// the same owner never overwrite each other.
func (c *Collections) Update(
	ctx context.Context,
	identity collectionsync.Identity,
	fn func(*domain.Collection) bool,
) (changed, synced bool) {
	unlock := c.locks.Lock(identity.UserID)
	defer unlock()

	collection := c.syncer.Load(ctx, identity)
	if !fn(&collection) {
		return false, false
	}
	return true, c.syncer.Save(ctx, identity, collection)
}
