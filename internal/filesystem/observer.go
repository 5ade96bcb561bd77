package filesystem

// Observer records filesystem operation metrics. Implementations are provided
// by the metrics package so this package stays free of Prometheus.
type Observer interface {
	// ObserveOperation records duration and error status for a filesystem
	// operation. operation is "stat" or "open".
	ObserveOperation(operation string, durationSeconds float64, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, float64, error) {}
