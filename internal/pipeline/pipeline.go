package pipeline

import (
	"io"
	"net/http"
	"strings"

	"webperf/internal/filesystem"
	"webperf/internal/handlers"
	"webperf/internal/metrics"
	"webperf/internal/middleware"
	"webperf/internal/startup"
	"webperf/internal/static"

	"github.com/gorilla/mux"
)

// Stage names in execution order, for startup logging.
var stageNames = []string{
	"protocol-logger",
	"metrics",
	"latency",
	"compression",
	"dispatch(api|static)",
}

// Stages returns the names of the pipeline stages in execution order.
func Stages() []string {
	out := make([]string, len(stageNames))
	copy(out, stageNames)
	return out
}

// Pipeline is the assembled application handler.
type Pipeline struct {
	handler   http.Handler
	apiRouter *mux.Router
}

// New builds the application handler from cfg. Protocol lines are written
// to out.
func New(cfg *startup.Config, out io.Writer) *Pipeline {
	apiRouter := handlers.NewRouter(handlers.New(cfg))

	dir := filesystem.NewDir(cfg.StaticDir, metrics.NewFilesystemObserver())
	assets := static.NewHandler(cfg, dir)

	compression := middleware.DefaultCompressionConfig()
	compression.EnableGzip = cfg.EnableGzipCompression
	compression.EnableBrotli = cfg.EnableBrotliCompression

	h := middleware.Chain(
		Dispatch(apiRouter, assets),
		middleware.ProtocolLogger(out),
		middleware.Metrics(middleware.DefaultMetricsConfig()),
		middleware.Latency(cfg.ServerDuration()),
		middleware.Compression(compression),
	)

	return &Pipeline{handler: h, apiRouter: apiRouter}
}

func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.handler.ServeHTTP(w, r)
}

// APIRouter returns the router behind the /api namespace.
func (p *Pipeline) APIRouter() *mux.Router {
	return p.apiRouter
}

// IsAPIPath reports whether path belongs to the API namespace.
func IsAPIPath(path string) bool {
	return path == handlers.Prefix || strings.HasPrefix(path, handlers.Prefix+"/")
}

// Dispatch sends API paths to api and everything else to assets.
func Dispatch(api, assets http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsAPIPath(r.URL.Path) {
			api.ServeHTTP(w, r)
			return
		}
		assets.ServeHTTP(w, r)
	})
}
