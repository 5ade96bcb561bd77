package startup

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"webperf/internal/logging"

	"github.com/gorilla/mux"
	"golang.org/x/term"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"buildTime" yaml:"build_time"`
	GoVersion string `json:"goVersion" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// PrintBanner writes the startup banner and build details. The ASCII art is
// skipped when stdout is not a terminal so container logs stay compact.
func PrintBanner() {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(`
------------------------------------------------------------
                 __                     ____
 _      _____  / /_  ____  ___  _____/ __/
| | /| / / _ \/ __ \/ __ \/ _ \/ ___/ /_
| |/ |/ /  __/ /_/ / /_/ /  __/ /  / __/
|__/|__/\___/_.___/ .___/\___/_/  /_/
                 /_/
------------------------------------------------------------`)
	}
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
	logSystemInfo()
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

// LogConfig logs the effective configuration.
func LogConfig(config *Config) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	if config.ConfigFile != "" {
		logging.Info("  Config file:                 %s", config.ConfigFile)
	} else {
		logging.Info("  Config file:                 (none, defaults and environment)")
	}
	logging.Info("  PORT:                        %s", config.Port)
	logging.Info("  METRICS_PORT:                %s", config.MetricsPort)
	logging.Info("  METRICS_ENABLED:             %v", config.MetricsEnabled)
	logging.Info("  STATIC_DIR:                  %s", config.StaticDir)
	logging.Info("  ETAG_MODE:                   %s", config.ETagMode)
	logging.Info("  HTTP2_CLEARTEXT:             %v", config.HTTP2Cleartext)
	logging.Info("  TLS:                         %s", enabledString(config.TLSEnabled()))
	logging.Info("  SHUTDOWN_TIMEOUT:            %v", config.ShutdownTimeout)
	logging.Info("  LOG_LEVEL:                   %s", logging.GetLevel())
	logging.Info("")
	logging.Info("  Performance settings:")
	logging.Info("    Simulated server duration: %v", config.ServerDuration())
	logging.Info("    Gzip compression:          %s", enabledString(config.EnableGzipCompression))
	logging.Info("    Brotli compression:        %s", enabledString(config.EnableBrotliCompression))
	logging.Info("    304 caching headers:       %s", enabledString(config.Enable304CachingHeaders))
	if config.EnableBrowserCache {
		logging.Info("    Browser cache:             ENABLED (max-age=%d)", int64(config.MaxAge()/time.Second))
	} else {
		logging.Info("    Browser cache:             DISABLED (max-age=0)")
	}
	logging.Info("")
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs the API routes at debug level and the pipeline order at info.
func LogHTTPRoutes(router *mux.Router, stages []string) {
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Request pipeline: %s", strings.Join(stages, " -> "))

	if !logging.IsDebugEnabled() {
		return
	}

	routes, err := GetRoutes(router)
	if err != nil {
		logging.Warn("error walking routes: %v", err)
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	logging.Debug("  Registered API routes (%d total):", len(routes))
	for _, route := range routes {
		logging.Debug("    %-6s %s", route.Method, route.Path)
	}
	logging.Debug("")
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	TLS             bool
	HTTP2Cleartext  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	scheme := "http"
	if config.TLS {
		scheme = "https"
	}

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Application:   %s://0.0.0.0:%s", scheme, config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	switch {
	case config.TLS:
		logging.Info("  Protocols:       HTTP/1.1, HTTP/2 (ALPN)")
	case config.HTTP2Cleartext:
		logging.Info("  Protocols:       HTTP/1.0, HTTP/1.1, HTTP/2 (h2c)")
	default:
		logging.Info("  Protocols:       HTTP/1.0, HTTP/1.1")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(reason string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (%s)", reason)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}
