package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webperf/internal/handlers"
	"webperf/internal/logging"
	"webperf/internal/metrics"
	"webperf/internal/pipeline"
	"webperf/internal/serverutil"
	"webperf/internal/startup"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// serveCmd starts the application and metrics servers.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo server",
	Long: `Start the webperf application server and, unless disabled, the
Prometheus metrics server.

The application server runs every request through the protocol logger,
the latency simulator and the compression stage, then answers it from the
/api router or the static directory.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	startTime := time.Now()

	config, err := startup.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if level, ok := logging.ParseLevel(config.LogLevel); ok {
		logging.SetLevel(level)
	}

	startup.PrintBanner()
	startup.LogConfig(config)

	metrics.InitializeMetrics()

	app := pipeline.New(config, os.Stdout)
	startup.LogHTTPRoutes(app.APIRouter(), pipeline.Stages())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			startup.LogShutdownInitiated(sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	started := func() {
		startup.LogServerStarted(startup.ServerConfig{
			Port:            config.Port,
			MetricsPort:     config.MetricsPort,
			MetricsEnabled:  config.MetricsEnabled,
			TLS:             config.TLSEnabled(),
			HTTP2Cleartext:  config.HTTP2Cleartext,
			StartupDuration: time.Since(startTime),
		})
	}

	if err := runServers(ctx, config, app, started, nil); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	startup.LogShutdownStepComplete("HTTP servers stopped")
	startup.LogShutdownComplete()
	return nil
}

// newMetricsRouter serves Prometheus metrics and a liveness probe.
func newMetricsRouter(config *startup.Config) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", handlers.New(config).HealthCheck).Methods("GET", "HEAD")
	return r
}

// runServers runs the application server and, when enabled, the metrics
// server until ctx is cancelled or one of them fails, which stops the
// other. started is called once every server is listening; listening, when
// set, receives each bound address.
func runServers(ctx context.Context, config *startup.Config, app http.Handler, started func(), listening func(name string, addr net.Addr)) error {
	g, gctx := errgroup.WithContext(ctx)

	type server struct {
		name string
		cfg  serverutil.Config
	}
	servers := []server{{
		name: "application",
		cfg: serverutil.Config{
			Server: &http.Server{
				Addr:              ":" + config.Port,
				Handler:           app,
				ReadHeaderTimeout: 15 * time.Second,
				IdleTimeout:       60 * time.Second,
			},
			TLS: serverutil.TLSConfig{
				CertFile: config.TLSCertFile,
				KeyFile:  config.TLSKeyFile,
			},
			H2C:             config.HTTP2Cleartext,
			ShutdownTimeout: config.ShutdownTimeout,
		},
	}}
	if config.MetricsEnabled {
		servers = append(servers, server{
			name: "metrics",
			cfg: serverutil.Config{
				Server: &http.Server{
					Addr:              ":" + config.MetricsPort,
					Handler:           newMetricsRouter(config),
					ReadHeaderTimeout: 15 * time.Second,
				},
				ShutdownTimeout: config.ShutdownTimeout,
			},
		})
	}

	readies := make([]chan struct{}, 0, len(servers))
	for _, s := range servers {
		s := s
		ready := make(chan struct{})
		readies = append(readies, ready)
		s.cfg.Ready = ready
		if listening != nil {
			s.cfg.OnListen = func(addr net.Addr) { listening(s.name, addr) }
		}
		g.Go(func() error {
			if err := serverutil.Run(gctx, s.cfg); err != nil {
				return fmt.Errorf("%s server: %w", s.name, err)
			}
			logging.Debug("%s server stopped", s.name)
			return nil
		})
	}

	g.Go(func() error {
		for _, ready := range readies {
			select {
			case <-ready:
			case <-gctx.Done():
				return nil
			}
		}
		if started != nil {
			started()
		}
		<-gctx.Done()
		startup.LogShutdownStep("Shutting down HTTP servers")
		return nil
	})

	return g.Wait()
}
