package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webperf_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webperf_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, including simulated delay",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "webperf_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	HTTPRequestsByProtocol = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webperf_http_requests_by_protocol_total",
			Help: "Total number of HTTP requests by negotiated protocol",
		},
		[]string{"protocol"},
	)
)

// Latency simulation metrics
var (
	SimulatedDelaySeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "webperf_simulated_delay_seconds",
			Help:    "Artificial delay applied before a request was forwarded",
			Buckets: []float64{0, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	SimulatedDelayCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webperf_simulated_delay_cancelled_total",
			Help: "Requests abandoned by the client while the simulated delay was pending",
		},
	)
)

// Compression metrics
var (
	CompressedResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webperf_compressed_responses_total",
			Help: "Total number of responses by applied content encoding",
		},
		[]string{"encoding"},
	)
)

// Static asset metrics
var (
	StaticRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webperf_static_requests_total",
			Help: "Total number of static asset lookups by outcome",
		},
		[]string{"result"},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webperf_filesystem_operation_duration_seconds",
			Help:    "Duration of filesystem operations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webperf_filesystem_operation_errors_total",
			Help: "Total number of failed filesystem operations",
		},
		[]string{"operation"},
	)
)

// Static lookup outcomes
const (
	StaticServed       = "served"
	StaticHTMLFallback = "html_fallback"
	StaticIndex        = "index"
	StaticNotModified  = "not_modified"
	StaticNotFound     = "not_found"
	StaticRedirect     = "redirect"
	StaticError        = "error"
)
