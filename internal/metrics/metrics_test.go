package metrics

import (
	"errors"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"HTTPRequestDuration", HTTPRequestDuration},
		{"HTTPRequestsInFlight", HTTPRequestsInFlight},
		{"HTTPRequestsByProtocol", HTTPRequestsByProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestPipelineMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"SimulatedDelaySeconds", SimulatedDelaySeconds},
		{"SimulatedDelayCancelled", SimulatedDelayCancelled},
		{"CompressedResponsesTotal", CompressedResponsesTotal},
		{"StaticRequestsTotal", StaticRequestsTotal},
		{"FilesystemOperationDuration", FilesystemOperationDuration},
		{"FilesystemOperationErrors", FilesystemOperationErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestInitializeMetrics(t *testing.T) {
	InitializeMetrics()

	if got := testutil.CollectAndCount(HTTPRequestsByProtocol); got < 4 {
		t.Errorf("expected at least 4 protocol series, got %d", got)
	}
	if got := testutil.CollectAndCount(CompressedResponsesTotal); got < 3 {
		t.Errorf("expected at least 3 encoding series, got %d", got)
	}
	if got := testutil.CollectAndCount(StaticRequestsTotal); got < 7 {
		t.Errorf("expected at least 7 static result series, got %d", got)
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()

	before := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("open"))

	obs.ObserveOperation("open", 0.001, nil)
	obs.ObserveOperation("open", 0.001, os.ErrNotExist)
	if got := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("open")); got != before {
		t.Errorf("not-exist and success must not count as errors: got %v, want %v", got, before)
	}

	obs.ObserveOperation("open", 0.001, errors.New("io failure"))
	if got := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("open")); got != before+1 {
		t.Errorf("errors = %v, want %v", got, before+1)
	}
}
