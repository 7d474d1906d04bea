package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pagetrail/pagetrail-server/internal/domain"
	domainerrors "github.com/pagetrail/pagetrail-server/internal/errors"
)

func (s *Server) registerAnalyticsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getAnalytics",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics",
		Summary:     "Reading dashboard",
		Description: "Returns the pages-read chart, categories, recent sessions, totals and streaks",
		Tags:        []string{"Analytics"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetAnalytics)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAnalyticsSeries",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/series",
		Summary:     "Pages-read chart",
		Description: "Returns pages read per bucket for the range, oldest first",
		Tags:        []string{"Analytics"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSeries)
}

// AnalyticsInput contains parameters for analytics queries.
type AnalyticsInput struct {
	Authorization string `header:"Authorization"`
	Range         string `query:"range" doc:"week, month or year; defaults to week"`
}

// DashboardOutput wraps the dashboard for Huma.
type DashboardOutput struct {
	Body domain.Dashboard
}

// SeriesResponse contains the chart buckets.
type SeriesResponse struct {
	Range  domain.StatsRange    `json:"range" doc:"Range the buckets cover"`
	Points []domain.SeriesPoint `json:"points" doc:"Buckets, oldest first"`
}

// SeriesOutput wraps the series response for Huma.
type SeriesOutput struct {
	Body SeriesResponse
}

func (s *Server) handleGetAnalytics(ctx context.Context, input *AnalyticsInput) (*DashboardOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	rng, err := parseRange(input.Range)
	if err != nil {
		return nil, err
	}

	dashboard, err := s.services.Analytics.Dashboard(ctx, identity, rng)
	if err != nil {
		return nil, err
	}

	return &DashboardOutput{Body: *dashboard}, nil
}

func (s *Server) handleGetSeries(ctx context.Context, input *AnalyticsInput) (*SeriesOutput, error) {
	identity, err := s.identify(input.Authorization)
	if err != nil {
		return nil, err
	}

	rng, err := parseRange(input.Range)
	if err != nil {
		return nil, err
	}

	points, err := s.services.Analytics.Series(ctx, identity, rng)
	if err != nil {
		return nil, err
	}

	return &SeriesOutput{Body: SeriesResponse{Range: rng, Points: points}}, nil
}

func parseRange(s string) (domain.StatsRange, error) {
	rng, err := domain.ParseStatsRange(s)
	if err != nil {
		return "", domainerrors.Validation(err.Error())
	}
	return rng, nil
}
