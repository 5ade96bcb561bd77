package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webperf/internal/startup"
)

func newTestHandlers() *Handlers {
	return New(&startup.Config{
		ETagMode: startup.ETagStrong,
		Performance: startup.Performance{
			ServerDurationMS:        250,
			EnableGzipCompression:   true,
			EnableBrotliCompression: false,
			Enable304CachingHeaders: true,
			EnableBrowserCache:      true,
		},
	})
}

// =============================================================================
// writeJSON Tests
// =============================================================================

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"Simple map", map[string]string{"status": "ok"}, `{"status":"ok"}`},
		{"String slice", []string{"a", "b", "c"}, `["a","b","c"]`},
		{"Number", 42, `42`},
		{"Null", nil, `null`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			writeJSON(w, tt.input)

			got := strings.TrimSpace(w.Body.String())
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	writeJSONError(w, "boom", http.StatusTeapot)

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status 418, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"boom"}` {
		t.Errorf("Unexpected body %s", got)
	}
}

// =============================================================================
// Handler Tests
// =============================================================================

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	h := newTestHandlers()
	w := httptest.NewRecorder()
	h.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/api/health", http.NoBody))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"status":"alive"}` {
		t.Errorf("Expected alive status, got %s", got)
	}
}

func TestHealthCheckHead(t *testing.T) {
	t.Parallel()

	h := newTestHandlers()
	w := httptest.NewRecorder()
	h.HealthCheck(w, httptest.NewRequest(http.MethodHead, "/api/health", http.NoBody))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body for HEAD, got %q", w.Body.String())
	}
}

func TestGetVersion(t *testing.T) {
	t.Parallel()

	h := &Handlers{}
	w := httptest.NewRecorder()
	h.GetVersion(w, httptest.NewRequest(http.MethodGet, "/api/version", http.NoBody))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Expected Cache-Control no-cache, got %q", cc)
	}

	var response startup.BuildInfo
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Version != startup.Version {
		t.Errorf("Expected version %q, got %q", startup.Version, response.Version)
	}
	if response.GoVersion == "" {
		t.Error("Expected goVersion to be set")
	}
}

func TestGetConfig(t *testing.T) {
	t.Parallel()

	h := newTestHandlers()
	w := httptest.NewRecorder()
	h.GetConfig(w, httptest.NewRequest(http.MethodGet, "/api/config", http.NoBody))

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	expected := map[string]interface{}{
		"serverDuration":          float64(250),
		"enableGzipCompression":   true,
		"enableBrotliCompression": false,
		"enable304CachingHeaders": true,
		"enableBrowserCache":      true,
		"etagMode":                "strong",
		"browserCacheSeconds":     float64(7200),
	}
	for key, want := range expected {
		if got, ok := body[key]; !ok || got != want {
			t.Errorf("Expected %s=%v, got %v", key, want, got)
		}
	}
}

// =============================================================================
// Router Tests
// =============================================================================

func TestNewRouter(t *testing.T) {
	t.Parallel()

	router := NewRouter(newTestHandlers())

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"health", http.MethodGet, "/api/health", http.StatusOK, `"alive"`},
		{"version", http.MethodGet, "/api/version", http.StatusOK, `"version"`},
		{"config", http.MethodGet, "/api/config", http.StatusOK, `"serverDuration"`},
		{"bare prefix", http.MethodGet, "/api", http.StatusNotFound, `{"error":"not found"}`},
		{"unknown endpoint", http.MethodGet, "/api/missing", http.StatusNotFound, `{"error":"not found"}`},
		{"nested unknown", http.MethodGet, "/api/a/b/c.html", http.StatusNotFound, `{"error":"not found"}`},
		{"wrong method", http.MethodPost, "/api/health", http.StatusMethodNotAllowed, `{"error":"method not allowed"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, bytes.NewReader(nil)))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("Expected body to contain %s, got %s", tt.wantBody, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON content type, got %q", ct)
			}
		})
	}
}
