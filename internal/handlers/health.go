package handlers

import (
	"net/http"
)

const statusAlive = "alive"

// HealthCheck is a liveness probe: it answers 200 whenever the server is
// running.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSONStatus(w, r, statusAlive)
}
