// Package metrics provides Prometheus instrumentation for webperf.
//
// All metrics are prefixed with "webperf_" and registered on the default
// registry through promauto, so they are exported by promhttp.Handler on
// the metrics server.
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: requests by method, normalized path and status
//   - HTTPRequestDuration: request duration by method and normalized path,
//     including any simulated delay
//   - HTTPRequestsInFlight: requests currently being processed
//   - HTTPRequestsByProtocol: requests by negotiated protocol label
//
// ## Latency Simulation Metrics
//
//   - SimulatedDelaySeconds: delay actually waited per request
//   - SimulatedDelayCancelled: requests whose client went away mid-delay
//
// ## Compression Metrics
//
//   - CompressedResponsesTotal: responses by applied content encoding
//
// ## Static Asset Metrics
//
//   - StaticRequestsTotal: static lookups by outcome (served, html_fallback,
//     index, not_modified, not_found, redirect, error)
//
// ## Filesystem Metrics
//
//   - FilesystemOperationDuration: stat/open latency
//   - FilesystemOperationErrors: stat/open failures other than not-exist
//
// Call [InitializeMetrics] once at startup so every label combination is
// present from the first scrape.
package metrics
