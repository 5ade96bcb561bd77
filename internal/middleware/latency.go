package middleware

import (
	"net/http"
	"time"

	"webperf/internal/logging"
	"webperf/internal/metrics"
)

// Latency returns a stage that holds each request for delay before passing
// it on. Each request waits on its own timer, so concurrent requests overlap.
// A zero or negative delay forwards immediately. If the client goes away
// while waiting, the timer is stopped and the rest of the chain is skipped.
func Latency(delay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if delay <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			timer := time.NewTimer(delay)

			select {
			case <-timer.C:
				metrics.SimulatedDelaySeconds.Observe(time.Since(start).Seconds())
				next.ServeHTTP(w, r)
			case <-r.Context().Done():
				timer.Stop()
				metrics.SimulatedDelayCancelled.Inc()
				logging.Debug("request %s %s abandoned after %v of simulated delay: %v",
					sanitizeLogField(r.Method), sanitizeLogField(r.URL.Path), time.Since(start), r.Context().Err())
			}
		})
	}
}
