package middleware

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"webperf/internal/metrics"
)

// Protocol labels
const (
	ProtocolHTTP2   = "HTTP/2"
	ProtocolHTTP11  = "HTTP/1.1"
	ProtocolHTTP10  = "HTTP/1.0"
	ProtocolUnknown = "unknown"
)

// isoMillis matches the millisecond UTC form used by JavaScript's toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

// ProtocolVersion returns the request's "major.minor" version string, or ""
// when the request carries none.
func ProtocolVersion(r *http.Request) string {
	if r.ProtoMajor == 0 && r.ProtoMinor == 0 {
		return ""
	}
	return fmt.Sprintf("%d.%d", r.ProtoMajor, r.ProtoMinor)
}

// ProtocolLabel maps a raw version string to its display label.
func ProtocolLabel(raw string) string {
	switch raw {
	case "2.0":
		return ProtocolHTTP2
	case "1.1":
		return ProtocolHTTP11
	case "1.0":
		return ProtocolHTTP10
	default:
		return ProtocolUnknown
	}
}

// sanitizeLogField removes control characters that could be used for log injection.
// This includes newlines, carriage returns, tabs, null bytes, and ANSI escape sequences.
func sanitizeLogField(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			b.WriteRune(' ')
		case r == '\x00', r == '\x1b':
			continue
		case r < 0x20 && r != '\t':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ProtocolLogger returns the first pipeline stage. For every request it
// writes one line to out (stdout when nil):
//
//	[2024-05-01T10:00:00.000Z] GET /index.html - Protocol: HTTP/2 (2.0)
//
// then hands the request on untouched.
func ProtocolLogger(out io.Writer) Middleware {
	if out == nil {
		out = os.Stdout
	}
	logger := log.New(out, "", 0)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ProtocolVersion(r)
			label := ProtocolLabel(raw)
			if raw == "" {
				raw = ProtocolUnknown
			}

			logger.Printf("[%s] %s %s - Protocol: %s (%s)",
				time.Now().UTC().Format(isoMillis),
				sanitizeLogField(r.Method),
				sanitizeLogField(r.URL.Path),
				label,
				sanitizeLogField(raw),
			)
			metrics.HTTPRequestsByProtocol.WithLabelValues(label).Inc()

			next.ServeHTTP(w, r)
		})
	}
}
