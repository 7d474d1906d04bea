package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// CacheProbe reports on the local cache tier.
type CacheProbe interface {
	LastSaved(ctx context.Context) (at time.Time, ok bool, err error)
}

// RemoteProbe reports on the remote store tier.
type RemoteProbe interface {
	Ping(ctx context.Context) error
}

// Health statuses.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Health check",
		Description: "Returns server health with a status for each storage tier",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	cache := s.checkCache(ctx)
	remote := s.checkRemote(ctx)

	// The server keeps working from the local cache when the remote is down,
	// so a remote failure only degrades it.
	overall := statusHealthy
	switch {
	case cache.Status == statusUnhealthy:
		overall = statusUnhealthy
	case cache.Status != statusHealthy || remote.Status != statusHealthy:
		overall = statusDegraded
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status: overall,
			Components: map[string]ComponentHealth{
				"cache":  cache,
				"remote": remote,
			},
		},
	}, nil
}

func (s *Server) checkCache(ctx context.Context) ComponentHealth {
	if s.cache == nil {
		return ComponentHealth{Status: statusDegraded, Message: "cache not configured"}
	}

	start := time.Now()
	savedAt, ok, err := s.cache.LastSaved(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  statusUnhealthy,
			Latency: latency.String(),
			Message: "cache read failed",
		}
	}

	message := "no collection saved yet"
	if ok {
		message = "last saved " + savedAt.UTC().Format(time.RFC3339)
	}
	return ComponentHealth{
		Status:  statusHealthy,
		Latency: latency.String(),
		Message: message,
	}
}

func (s *Server) checkRemote(ctx context.Context) ComponentHealth {
	if s.remote == nil {
		return ComponentHealth{Status: statusDegraded, Message: "remote store not configured"}
	}

	start := time.Now()
	err := s.remote.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  statusUnhealthy,
			Latency: latency.String(),
			Message: "remote store unreachable",
		}
	}
	return ComponentHealth{Status: statusHealthy, Latency: latency.String()}
}
