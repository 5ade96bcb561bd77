package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Prefix is the path namespace owned by the API router.
const Prefix = "/api"

// NewRouter builds the /api router.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc(Prefix+"/health", h.HealthCheck).Methods("GET", "HEAD")
	r.HandleFunc(Prefix+"/version", h.GetVersion).Methods("GET")
	r.HandleFunc(Prefix+"/config", h.GetConfig).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowed)

	return r
}

// NotFound answers unmatched API paths.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSONError(w, "not found", http.StatusNotFound)
}

// MethodNotAllowed answers API paths requested with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
}
