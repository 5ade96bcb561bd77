package middleware

import (
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"webperf/internal/metrics"
)

// MetricsConfig holds configuration for the metrics middleware
type MetricsConfig struct {
	// SkipPaths are paths that should not be recorded
	SkipPaths []string
}

// DefaultMetricsConfig returns the default metrics configuration
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		SkipPaths: []string{"/metrics", "/healthz", "/livez", "/readyz"},
	}
}

// Metrics returns a middleware that records Prometheus request metrics.
// It observes only; status and body pass through untouched.
func Metrics(config MetricsConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range config.SkipPaths {
				if r.URL.Path == skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			wrapped := newResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			label := normalizePath(r.URL.Path)
			status := strconv.Itoa(wrapped.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, label, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, label).Observe(duration)
		})
	}
}

// normalizePath maps a request path to a bounded label set. API routes keep
// their first two segments; static paths collapse to their extension so
// arbitrary URLs cannot explode label cardinality.
func normalizePath(p string) string {
	if p == "/api" || strings.HasPrefix(p, "/api/") {
		parts := strings.SplitN(strings.TrimPrefix(p, "/"), "/", 3)
		if len(parts) > 2 {
			parts = parts[:2]
		}
		return "/" + strings.Join(parts, "/")
	}

	if p == "" || strings.HasSuffix(p, "/") {
		return "/"
	}
	ext := strings.ToLower(path.Ext(p))
	if ext == "" || len(ext) > 8 {
		return "/{page}"
	}
	return "/{file}" + ext
}
