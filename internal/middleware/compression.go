package middleware

import (
	"compress/gzip"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"webperf/internal/logging"
	"webperf/internal/metrics"

	"github.com/andybalholm/brotli"
)

// Content encodings
const (
	EncodingBrotli   = "br"
	EncodingGzip     = "gzip"
	EncodingIdentity = "identity"
)

// CompressionConfig holds configuration for the compression middleware
type CompressionConfig struct {
	EnableGzip   bool
	EnableBrotli bool
	// MinSize is the number of body bytes that must be buffered before
	// compression starts; smaller bodies are sent as-is.
	MinSize int
	// GzipLevel is the gzip compression level (gzip.BestSpeed to gzip.BestCompression)
	GzipLevel int
	// BrotliLevel is the brotli quality (0 to 11)
	BrotliLevel int
	// CompressibleTypes lists media types worth compressing in addition to
	// text/* and +json/+xml structured suffixes.
	CompressibleTypes []string
}

// DefaultCompressionConfig returns the demo defaults: both encodings off and
// a one byte threshold so every non-empty eligible body is compressed once
// an encoding is turned on.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:     1,
		GzipLevel:   gzip.DefaultCompression,
		BrotliLevel: brotli.DefaultCompression,
		CompressibleTypes: []string{
			"application/json",
			"application/javascript",
			"application/xml",
			"application/xhtml+xml",
			"application/rss+xml",
			"application/atom+xml",
			"application/manifest+json",
			"application/wasm",
			"image/svg+xml",
			"image/x-icon",
			"font/ttf",
			"font/otf",
		},
	}
}

// encoder is the subset shared by *gzip.Writer and *brotli.Writer.
type encoder interface {
	io.WriteCloser
	Flush() error
	Reset(io.Writer)
}

// negotiateEncoding picks the encoding for a response. Brotli wins whenever
// it is enabled and acceptable, then gzip, else identity ("").
func negotiateEncoding(acceptEncoding string, enableBrotli, enableGzip bool) string {
	if acceptEncoding == "" || (!enableBrotli && !enableGzip) {
		return ""
	}

	qualities := parseAcceptEncoding(acceptEncoding)
	acceptable := func(enc string) bool {
		if q, ok := qualities[enc]; ok {
			return q > 0
		}
		if q, ok := qualities["*"]; ok {
			return q > 0
		}
		return false
	}

	if enableBrotli && acceptable(EncodingBrotli) {
		return EncodingBrotli
	}
	if enableGzip && acceptable(EncodingGzip) {
		return EncodingGzip
	}
	return ""
}

// parseAcceptEncoding returns the q-value of every listed coding. Codings
// without a q parameter, or with an unparseable one, get 1.
func parseAcceptEncoding(header string) map[string]float64 {
	qualities := make(map[string]float64)
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		name := strings.ToLower(strings.TrimSpace(fields[0]))
		if name == "" {
			continue
		}
		q := 1.0
		for _, param := range fields[1:] {
			param = strings.TrimSpace(param)
			if !strings.HasPrefix(strings.ToLower(param), "q=") {
				continue
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(param[2:]), 64); err == nil {
				q = v
			}
		}
		qualities[name] = q
	}
	return qualities
}

func (c CompressionConfig) isCompressible(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	if strings.HasPrefix(mediaType, "text/") ||
		strings.HasSuffix(mediaType, "+json") ||
		strings.HasSuffix(mediaType, "+xml") {
		return mediaType != "text/event-stream"
	}
	for _, compressible := range c.CompressibleTypes {
		if mediaType == compressible {
			return true
		}
	}
	return false
}

// skipStatus reports statuses whose bodies must not be re-encoded.
func skipStatus(code int) bool {
	return code < http.StatusOK ||
		code == http.StatusNoContent ||
		code == http.StatusPartialContent ||
		code == http.StatusNotModified
}

// compressWriter buffers the first MinSize bytes of a response, then
// decides whether to stream the rest through an encoder.
type compressWriter struct {
	http.ResponseWriter
	config   *CompressionConfig
	encoding string
	pool     *sync.Pool

	enc        encoder
	buffer     []byte
	statusCode int
	// headerSet is true once the handler has called WriteHeader.
	headerSet bool
	// headerSent is true once WriteHeader reached the underlying writer.
	headerSent bool
	decided    bool
	compress   bool
}

func (cw *compressWriter) WriteHeader(code int) {
	if cw.headerSet || cw.headerSent {
		return
	}
	cw.headerSet = true
	cw.statusCode = code

	if skipStatus(code) || cw.Header().Get("Content-Encoding") != "" {
		cw.decide(false)
	}
}

func (cw *compressWriter) Write(data []byte) (int, error) {
	if !cw.headerSet {
		cw.WriteHeader(http.StatusOK)
	}

	if cw.decided {
		if cw.compress {
			return cw.enc.Write(data)
		}
		return cw.ResponseWriter.Write(data)
	}

	cw.buffer = append(cw.buffer, data...)
	if len(cw.buffer) >= cw.config.MinSize {
		if err := cw.decideAndFlushBuffer(); err != nil {
			return 0, err
		}
	}
	return len(data), nil
}

// decideAndFlushBuffer settles the encoding from what is buffered and
// writes the buffer out.
func (cw *compressWriter) decideAndFlushBuffer() error {
	if cw.Header().Get("Content-Type") == "" && len(cw.buffer) > 0 {
		cw.Header().Set("Content-Type", http.DetectContentType(cw.buffer))
	}

	ok := len(cw.buffer) > 0 &&
		len(cw.buffer) >= cw.config.MinSize &&
		cw.Header().Get("Content-Encoding") == "" &&
		cw.config.isCompressible(cw.Header().Get("Content-Type"))
	cw.decide(ok)

	buf := cw.buffer
	cw.buffer = nil
	if len(buf) == 0 {
		return nil
	}
	var err error
	if cw.compress {
		_, err = cw.enc.Write(buf)
	} else {
		_, err = cw.ResponseWriter.Write(buf)
	}
	return err
}

// decide fixes the encoding for the rest of the response and sends headers.
func (cw *compressWriter) decide(compress bool) {
	if cw.decided {
		return
	}
	cw.decided = true
	cw.compress = compress

	if compress {
		h := cw.Header()
		h.Del("Content-Length")
		h.Set("Content-Encoding", cw.encoding)

		cw.enc = cw.pool.Get().(encoder)
		cw.enc.Reset(cw.ResponseWriter)
		metrics.CompressedResponsesTotal.WithLabelValues(cw.encoding).Inc()
	} else {
		metrics.CompressedResponsesTotal.WithLabelValues(EncodingIdentity).Inc()
	}

	if cw.headerSet && !cw.headerSent {
		cw.headerSent = true
		cw.ResponseWriter.WriteHeader(cw.statusCode)
	}
}

// Flush implements http.Flusher
func (cw *compressWriter) Flush() {
	if !cw.decided && len(cw.buffer) > 0 {
		if err := cw.decideAndFlushBuffer(); err != nil {
			logging.Debug("compression flush failed: %v", err)
			return
		}
	}
	if cw.compress && cw.enc != nil {
		if err := cw.enc.Flush(); err != nil {
			logging.Debug("compression flush failed: %v", err)
			return
		}
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (cw *compressWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

// Close writes anything still buffered and returns the encoder to its pool.
func (cw *compressWriter) Close() error {
	if !cw.decided {
		if len(cw.buffer) > 0 {
			if err := cw.decideAndFlushBuffer(); err != nil {
				return err
			}
		} else if cw.headerSet {
			// Empty body: headers only, never encoded.
			cw.decide(false)
		}
	}

	if cw.enc == nil {
		return nil
	}
	err := cw.enc.Close()
	cw.enc.Reset(io.Discard)
	cw.pool.Put(cw.enc)
	cw.enc = nil
	return err
}

// Compression returns a middleware that encodes eligible response bodies
// with brotli or gzip according to config and the client's Accept-Encoding.
// Exactly one encoding, or none, is applied per response. When neither
// encoding is enabled the stage is a pass-through.
func Compression(config CompressionConfig) Middleware {
	if config.MinSize < 1 {
		config.MinSize = 1
	}

	gzipPool := &sync.Pool{
		New: func() interface{} {
			w, err := gzip.NewWriterLevel(io.Discard, config.GzipLevel)
			if err != nil {
				w = gzip.NewWriter(io.Discard)
			}
			return w
		},
	}
	brotliPool := &sync.Pool{
		New: func() interface{} {
			return brotli.NewWriterLevel(io.Discard, config.BrotliLevel)
		},
	}

	return func(next http.Handler) http.Handler {
		if !config.EnableGzip && !config.EnableBrotli {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Encoding")

			encoding := negotiateEncoding(r.Header.Get("Accept-Encoding"), config.EnableBrotli, config.EnableGzip)
			if encoding == "" || r.Header.Get("Upgrade") != "" {
				next.ServeHTTP(w, r)
				return
			}

			pool := gzipPool
			if encoding == EncodingBrotli {
				pool = brotliPool
			}

			cw := &compressWriter{
				ResponseWriter: w,
				config:         &config,
				encoding:       encoding,
				pool:           pool,
				statusCode:     http.StatusOK,
			}
			defer func() {
				if err := cw.Close(); err != nil {
					logging.Debug("compression finalization failed for %s: %v", sanitizeLogField(r.URL.Path), err)
				}
			}()

			next.ServeHTTP(cw, r)
		})
	}
}
