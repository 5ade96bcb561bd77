package metrics

import (
	"errors"
	"io/fs"

	"webperf/internal/filesystem"
)

// filesystemObserver implements filesystem.Observer using the Prometheus
// metrics declared in this package.
type filesystemObserver struct{}

// NewFilesystemObserver creates an observer that records static directory
// access into the filesystem histograms and counters.
func NewFilesystemObserver() filesystem.Observer {
	return &filesystemObserver{}
}

func (o *filesystemObserver) ObserveOperation(operation string, durationSeconds float64, err error) {
	FilesystemOperationDuration.WithLabelValues(operation).Observe(durationSeconds)
	// A missing file is an ordinary 404, not an I/O failure.
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		FilesystemOperationErrors.WithLabelValues(operation).Inc()
	}
}
