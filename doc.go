// Package main provides the entry point for webperf.
//
// webperf is a small demonstration server for web performance work. It
// serves a static site through a fixed request pipeline whose behaviour is
// switched by configuration, so the effect of each knob can be observed in
// a browser's network panel.
//
// # Request Pipeline
//
// Every request on the application port passes, in order, through:
//
//  1. Protocol logger: one line per request naming the HTTP version
//  2. Request metrics: Prometheus counters and latency histograms
//  3. Latency simulator: an artificial, per-request, cancellable delay
//  4. Compression: brotli or gzip, negotiated from Accept-Encoding
//  5. Dispatch: /api to the JSON router, everything else to static files
//
// # Protocols
//
// Without TLS the server accepts HTTP/1.0, HTTP/1.1 and, unless
// http2_cleartext is off, HTTP/2 over cleartext (h2c). With tls_cert_file
// and tls_key_file set, HTTP/2 is negotiated with ALPN.
//
// # Configuration
//
// Settings come from defaults, then performance-config.yaml (or the file
// given with --config), then environment variables:
//
//	SERVER_DURATION=500            # ms added to every request
//	ENABLE_GZIP_COMPRESSION=true
//	ENABLE_BROTLI_COMPRESSION=true
//	ENABLE_304_CACHING_HEADERS=true
//	ENABLE_BROWSER_CACHE=true      # Cache-Control max-age=7200
//
// Any malformed value stops the server before it listens.
//
// # Metrics
//
// Prometheus metrics are served on a separate port (default 9090) at
// /metrics, together with a /health liveness probe.
package main
