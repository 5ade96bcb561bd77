// Package startup handles configuration loading and startup/shutdown logging.
//
// # Configuration
//
// [LoadConfig] builds an immutable [Config] with viper, layering defaults,
// an optional performance-config file (YAML, JSON or TOML, searched in "."
// and "./config" unless a path is given) and environment variables:
//
//   - PORT: application port (default: 8080)
//   - METRICS_PORT: Prometheus metrics port (default: 9090)
//   - METRICS_ENABLED: run the metrics server (default: true)
//   - STATIC_DIR: directory served for non-API paths (default: ./public)
//   - ETAG_MODE: weak (size and mtime) or strong (content digest) (default: weak)
//   - HTTP2_CLEARTEXT: accept HTTP/2 without TLS (default: true)
//   - TLS_CERT_FILE, TLS_KEY_FILE: serve HTTPS when both are set
//   - SHUTDOWN_TIMEOUT: graceful shutdown bound (default: 30s)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - SERVER_DURATION: simulated delay in milliseconds (default: 0)
//   - ENABLE_GZIP_COMPRESSION: allow gzip responses (default: false)
//   - ENABLE_BROTLI_COMPRESSION: allow brotli responses (default: false)
//   - ENABLE_304_CACHING_HEADERS: emit ETag and Last-Modified (default: false)
//   - ENABLE_BROWSER_CACHE: emit a long max-age (default: false)
//
// Malformed values (non-numeric durations, unparseable booleans, unknown
// ETag modes, a missing static directory) are returned as errors so the
// process can stop before serving.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
//   - [PrintBanner]: version, build and system details
//   - [LogConfig]: effective configuration
//   - [LogHTTPRoutes]: pipeline order and API routes (debug level)
//   - [LogServerStarted]: endpoints, protocols and startup duration
//   - [LogShutdownInitiated], [LogShutdownStep], [LogShutdownComplete]
package startup
