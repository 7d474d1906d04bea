package api

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/pagetrail/pagetrail-server/internal/http/response"
	"github.com/pagetrail/pagetrail-server/internal/ratelimit"
)

// RateLimitMiddleware limits requests per client IP and answers 429 once a
// client's bucket is empty. It runs after middleware.RealIP, so RemoteAddr
// already reflects forwarding headers.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)

			if !limiter.Allow(key) {
				logger.Warn("rate limit exceeded",
					"ip", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Retry-After", "1")
				response.TooManyRequests(w, "Too many requests. Please try again later.", logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the request's remote address without its port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
