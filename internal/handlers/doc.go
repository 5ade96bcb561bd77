// Package handlers provides the JSON handlers behind the /api namespace.
//
// It includes handlers for:
//   - Liveness (GET /api/health)
//   - Build information (GET /api/version)
//   - The active performance settings (GET /api/config)
//
// NewRouter registers them on a gorilla/mux router whose not-found and
// method-not-allowed responses are JSON as well, so an /api request is
// always answered here and never falls through to static file serving.
package handlers
