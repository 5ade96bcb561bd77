// Package middleware provides the HTTP stages of the webperf request pipeline.
//
// It includes:
//   - Protocol logging: one line per request naming the negotiated HTTP version
//   - Simulated latency: a cancellable per-request delay
//   - Response compression: brotli or gzip, negotiated from Accept-Encoding
//   - Prometheus request metrics
//
// Every stage has the same shape, func(http.Handler) http.Handler, and
// [Chain] composes them in the order given.
package middleware
