package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup.
func InitializeMetrics() {
	for _, protocol := range []string{"HTTP/1.0", "HTTP/1.1", "HTTP/2", "unknown"} {
		HTTPRequestsByProtocol.WithLabelValues(protocol)
	}

	for _, encoding := range []string{"br", "gzip", "identity"} {
		CompressedResponsesTotal.WithLabelValues(encoding)
	}

	for _, result := range []string{
		StaticServed, StaticHTMLFallback, StaticIndex, StaticNotModified,
		StaticNotFound, StaticRedirect, StaticError,
	} {
		StaticRequestsTotal.WithLabelValues(result)
	}

	for _, op := range []string{"stat", "open"} {
		FilesystemOperationDuration.WithLabelValues(op)
		FilesystemOperationErrors.WithLabelValues(op)
	}
}
