// Package serverutil runs an http.Server until its context is cancelled
// and then shuts it down gracefully.
package serverutil

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// TLSConfig defines certificate and key paths for enabling TLS listeners.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether a key pair is configured.
func (c TLSConfig) Enabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// Config controls the HTTP server runtime behaviour.
type Config struct {
	Server *http.Server
	TLS    TLSConfig
	// H2C serves HTTP/2 without TLS (prior knowledge or Upgrade: h2c).
	// Ignored when TLS is configured, where h2 is negotiated via ALPN.
	H2C             bool
	ShutdownTimeout time.Duration
	Ready           chan<- struct{}
	// OnListen, when set, receives the bound address before Ready is closed.
	OnListen func(net.Addr)
}

// DefaultShutdownTimeout bounds graceful shutdown when the context is cancelled.
const DefaultShutdownTimeout = 10 * time.Second

// Run starts the provided HTTP server and blocks until it stops. If TLS
// certificate and key files are provided, the server will listen with TLS.
// When the context is cancelled, Run attempts a graceful shutdown bounded by
// ShutdownTimeout.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Server == nil {
		return fmt.Errorf("server is required")
	}

	if (cfg.TLS.CertFile == "") != (cfg.TLS.KeyFile == "") {
		return fmt.Errorf("both TLS cert file and key file must be provided")
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Addr, err)
	}

	if cfg.TLS.Enabled() {
		cert, err := tls.LoadX509KeyPair(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			ln.Close()
			return fmt.Errorf("load TLS key pair: %w", err)
		}

		tlsCfg := cfg.Server.TLSConfig
		if tlsCfg == nil {
			tlsCfg = &tls.Config{MinVersion: tls.VersionTLS12}
		} else {
			tlsCfg = tlsCfg.Clone()
		}
		tlsCfg.Certificates = append([]tls.Certificate{cert}, tlsCfg.Certificates...)
		if len(tlsCfg.NextProtos) == 0 {
			tlsCfg.NextProtos = []string{http2.NextProtoTLS, "http/1.1"}
		}
		cfg.Server.TLSConfig = tlsCfg
		if err := http2.ConfigureServer(cfg.Server, nil); err != nil {
			ln.Close()
			return fmt.Errorf("configure http2: %w", err)
		}
		ln = tls.NewListener(ln, tlsCfg)
	} else if cfg.H2C {
		handler := cfg.Server.Handler
		if handler == nil {
			handler = http.DefaultServeMux
		}
		cfg.Server.Handler = h2c.NewHandler(handler, &http2.Server{})
	}

	if cfg.OnListen != nil {
		cfg.OnListen(ln.Addr())
	}
	if cfg.Ready != nil {
		close(cfg.Ready)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- cfg.Server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shutdownErr := cfg.Server.Shutdown(shutdownCtx)

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-shutdownCtx.Done():
		if shutdownErr != nil {
			return shutdownErr
		}
		return shutdownCtx.Err()
	}

	return shutdownErr
}
