package startup

import (
	"testing"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.GoVersion == "" {
		t.Error("Expected GoVersion to be set")
	}
	if info.OS == "" {
		t.Error("Expected OS to be set")
	}
	if info.Arch == "" {
		t.Error("Expected Arch to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
}

func TestGetRoutes(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", nil).Methods("GET")
	r.HandleFunc("/api/config", nil).Methods("GET", "HEAD")
	r.PathPrefix("/static/").Handler(nil)

	routes, err := GetRoutes(r)
	if err != nil {
		t.Fatalf("GetRoutes: %v", err)
	}

	if len(routes) != 4 {
		t.Fatalf("expected 4 routes, got %d: %+v", len(routes), routes)
	}

	seen := map[string]bool{}
	for _, route := range routes {
		seen[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{"GET /api/health", "GET /api/config", "HEAD /api/config", "* /static/"} {
		if !seen[want] {
			t.Errorf("missing route %q in %v", want, seen)
		}
	}
}

func TestEnabledString(t *testing.T) {
	if enabledString(true) != "ENABLED" {
		t.Error("enabledString(true) should be ENABLED")
	}
	if enabledString(false) != "DISABLED" {
		t.Error("enabledString(false) should be DISABLED")
	}
}

func TestLoggingHelpersDoNotPanic(t *testing.T) {
	cfg := &Config{
		Port:            "8080",
		MetricsPort:     "9090",
		MetricsEnabled:  true,
		StaticDir:       t.TempDir(),
		ETagMode:        ETagWeak,
		ShutdownTimeout: 1,
		Performance:     Performance{EnableBrowserCache: true},
	}

	LogConfig(cfg)
	LogHTTPRoutes(mux.NewRouter(), []string{"a", "b"})
	LogServerStarted(ServerConfig{Port: "8080", TLS: true})
	LogServerStarted(ServerConfig{Port: "8080", HTTP2Cleartext: true, MetricsEnabled: true, MetricsPort: "9090"})
	LogShutdownInitiated("test")
	LogShutdownStep("step")
	LogShutdownStepComplete("step")
	LogShutdownComplete()
}
