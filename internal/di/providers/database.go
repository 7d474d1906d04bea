package providers

import (
	"github.com/samber/do/v2"

	"github.com/pagetrail/pagetrail-server/internal/collectionsync"
	"github.com/pagetrail/pagetrail-server/internal/config"
	"github.com/pagetrail/pagetrail-server/internal/logger"
	"github.com/pagetrail/pagetrail-server/internal/store"
	"github.com/pagetrail/pagetrail-server/internal/store/sqlite"
)

// LocalCacheHandle wraps the Badger cache with shutdown capability.
type LocalCacheHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *LocalCacheHandle) Shutdown() error {
	return h.Close()
}

// ProvideLocalCache provides the device-local collection cache.
func ProvideLocalCache(i do.Injector) (*LocalCacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := store.New(cfg.Data.CachePath, log.Component("cache"))
	if err != nil {
		return nil, err
	}

	log.Info("Local cache initialized", "path", cfg.Data.CachePath)

	return &LocalCacheHandle{Store: db}, nil
}

// RemoteStoreHandle wraps the SQLite store with shutdown capability.
type RemoteStoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *RemoteStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideRemoteStore provides the durable per-owner store.
func ProvideRemoteStore(i do.Injector) (*RemoteStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := sqlite.Open(cfg.Data.RemoteDBPath, log.Component("remote"))
	if err != nil {
		return nil, err
	}

	version, err := db.SchemaVersion()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("Remote store initialized",
		"path", cfg.Data.RemoteDBPath,
		"schema_version", version,
	)

	return &RemoteStoreHandle{Store: db}, nil
}

// ProvideSyncer provides the two-tier collection syncer.
func ProvideSyncer(i do.Injector) (*collectionsync.Syncer, error) {
	local := do.MustInvoke[*LocalCacheHandle](i)
	remote := do.MustInvoke[*RemoteStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return collectionsync.New(local.Store, remote.Store, log.Component("sync")), nil
}
