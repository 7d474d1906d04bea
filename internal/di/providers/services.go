package providers

import (
	"github.com/samber/do/v2"

	"github.com/pagetrail/pagetrail-server/internal/collectionsync"
	"github.com/pagetrail/pagetrail-server/internal/logger"
	"github.com/pagetrail/pagetrail-server/internal/service"
	"github.com/pagetrail/pagetrail-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideCollections provides per-owner serialized access to collections,
// shared by every service that loads them.
func ProvideCollections(i do.Injector) (*service.Collections, error) {
	syncer := do.MustInvoke[*collectionsync.Syncer](i)
	return service.NewCollections(syncer), nil
}

// ProvideLibraryService provides the library service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	collections := do.MustInvoke[*service.Collections](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(collections, validator, log.Component("library")), nil
}

// ProvideAnalyticsService provides the analytics service.
func ProvideAnalyticsService(i do.Injector) (*service.AnalyticsService, error) {
	collections := do.MustInvoke[*service.Collections](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAnalyticsService(collections, log.Component("analytics")), nil
}
