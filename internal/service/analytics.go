package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/analytics"
	"github.com/pagetrail/pagetrail-server/internal/collectionsync"
	"github.com/pagetrail/pagetrail-server/internal/domain"
	"github.com/pagetrail/pagetrail-server/internal/errors"
)

// AnalyticsService computes reading statistics over a caller's collection.
type AnalyticsService struct {
	collections *Collections
	now         func() time.Time
	logger      *slog.Logger
}

// NewAnalyticsService creates a new analytics service. It shares collections
// with the library service so its loads are serialized with mutations.
func NewAnalyticsService(collections *Collections, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		collections: collections,
		now:         time.Now,
		logger:      logger,
	}
}

// Dashboard returns every statistic the analytics page shows.
func (s *AnalyticsService) Dashboard(ctx context.Context, identity collectionsync.Identity, rng domain.StatsRange) (*domain.Dashboard, error) {
	if !rng.Valid() {
		return nil, errors.Validationf("invalid range %q", rng)
	}

	collection := s.collections.Load(ctx, identity)
	dashboard := analytics.Dashboard(collection.Books, rng, s.now())

	s.logger.Debug("dashboard computed",
		"user_id", identity.UserID,
		"range", rng,
		"books", collection.Len(),
		"streak", dashboard.CurrentStreak,
	)

	return &dashboard, nil
}

// Series returns only the pages-per-bucket chart for the range.
func (s *AnalyticsService) Series(ctx context.Context, identity collectionsync.Identity, rng domain.StatsRange) ([]domain.SeriesPoint, error) {
	if !rng.Valid() {
		return nil, errors.Validationf("invalid range %q", rng)
	}

	collection := s.collections.Load(ctx, identity)
	return slices.Collect(analytics.Series(collection.Books, rng, s.now())), nil
}
