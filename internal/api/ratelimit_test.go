package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagetrail/pagetrail-server/internal/ratelimit"
)

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.New(1, 2)
	defer limiter.Stop()

	ts := setupTestServer(t, func(o *Options) {
		o.Limiter = limiter
	})

	get := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		ts.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, get("10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, get("10.0.0.1:2222").Code)

	rec := get("10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	env := decode[any](t, rec.Body.Bytes())
	assert.Equal(t, "RATE_LIMITED", env.Code)

	// Other clients have their own budget.
	assert.Equal(t, http.StatusOK, get("10.0.0.2:1111").Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.168.1.5:5000"
	assert.Equal(t, "192.168.1.5", clientIP(req))

	req.RemoteAddr = "192.168.1.5"
	assert.Equal(t, "192.168.1.5", clientIP(req))
}
