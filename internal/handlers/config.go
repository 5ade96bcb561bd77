package handlers

import (
	"net/http"

	"webperf/internal/startup"
)

// ConfigResponse describes the performance settings the server runs with.
type ConfigResponse struct {
	startup.Performance
	ETagMode            string `json:"etagMode"`
	BrowserCacheSeconds int64  `json:"browserCacheSeconds"`
}

// GetConfig returns the active performance configuration so demo pages
// can show which knobs are turned on.
func (h *Handlers) GetConfig(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, ConfigResponse{
		Performance:         h.performance,
		ETagMode:            h.etagMode,
		BrowserCacheSeconds: int64(h.performance.MaxAge().Seconds()),
	})
}
