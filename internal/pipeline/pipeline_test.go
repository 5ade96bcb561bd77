package pipeline

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"webperf/internal/startup"

	"github.com/andybalholm/brotli"
)

func newTestConfig(t *testing.T, mutate func(*startup.Config)) *startup.Config {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"index.html":    "<html><body>" + strings.Repeat("home page ", 100) + "</body></html>",
		"about.html":    "<html><body>about</body></html>",
		"api.html":      "<p>not the api</p>",
		"api/data.json": `{"static":true}`,
		"css/site.css":  "body { margin: 0; }",
	}
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	cfg := &startup.Config{StaticDir: root, ETagMode: startup.ETagWeak}
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

func TestStages(t *testing.T) {
	stages := Stages()
	want := "protocol-logger,metrics,latency,compression,dispatch(api|static)"
	if got := strings.Join(stages, ","); got != want {
		t.Errorf("Expected stages %q, got %q", want, got)
	}

	stages[0] = "mutated"
	if Stages()[0] != "protocol-logger" {
		t.Error("Expected Stages to return a copy")
	}
}

func TestIsAPIPath(t *testing.T) {
	tests := map[string]bool{
		"/api":          true,
		"/api/":         true,
		"/api/health":   true,
		"/api/x/y":      true,
		"/apis":         false,
		"/api.html":     false,
		"/":             false,
		"/static/api/x": false,
	}
	for p, want := range tests {
		if got := IsAPIPath(p); got != want {
			t.Errorf("IsAPIPath(%q) = %v, want %v", p, got, want)
		}
	}
}

func TestAPINeverFallsThroughToStatic(t *testing.T) {
	p := New(newTestConfig(t, nil), io.Discard)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/api/health", http.StatusOK, `"alive"`},
		{"/api", http.StatusNotFound, `{"error":"not found"}`},
		{"/api/data.json", http.StatusNotFound, `{"error":"not found"}`},
		{"/api.html", http.StatusOK, "not the api"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		p.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

		if w.Code != tt.wantStatus {
			t.Errorf("%s: expected status %d, got %d", tt.path, tt.wantStatus, w.Code)
		}
		if !strings.Contains(w.Body.String(), tt.wantBody) {
			t.Errorf("%s: expected body containing %q, got %q", tt.path, tt.wantBody, w.Body.String())
		}
	}
}

func TestStaticResolutionThroughPipeline(t *testing.T) {
	p := New(newTestConfig(t, nil), io.Discard)

	w := httptest.NewRecorder()
	p.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/about", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "about") {
		t.Errorf("Expected about.html content, got %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	p.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestProtocolLineWrittenForEveryRequest(t *testing.T) {
	var buf bytes.Buffer
	p := New(newTestConfig(t, nil), &buf)

	for _, path := range []string{"/", "/api/health", "/nope"} {
		p.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 protocol lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[1], "GET /api/health - Protocol: HTTP/1.1 (1.1)") {
		t.Errorf("Unexpected protocol line %q", lines[1])
	}
}

func TestCompressionThroughPipeline(t *testing.T) {
	tests := []struct {
		name   string
		gzip   bool
		brotli bool
		want   string
	}{
		{"brotli preferred", true, true, "br"},
		{"gzip only", true, false, "gzip"},
		{"disabled", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t, func(c *startup.Config) {
				c.EnableGzipCompression = tt.gzip
				c.EnableBrotliCompression = tt.brotli
			})
			p := New(cfg, io.Discard)

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set("Accept-Encoding", "gzip, deflate, br")
			w := httptest.NewRecorder()
			p.ServeHTTP(w, req)

			if got := w.Header().Get("Content-Encoding"); got != tt.want {
				t.Fatalf("Expected Content-Encoding %q, got %q", tt.want, got)
			}

			var r io.Reader = w.Body
			switch tt.want {
			case "br":
				r = brotli.NewReader(w.Body)
			case "gzip":
				gr, err := gzip.NewReader(w.Body)
				if err != nil {
					t.Fatalf("Failed to create gzip reader: %v", err)
				}
				defer gr.Close()
				r = gr
			}
			body, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("Failed to read body: %v", err)
			}
			if !strings.Contains(string(body), "home page") {
				t.Errorf("Expected index content, got %q", body)
			}
		})
	}
}

func TestCompressedNotModifiedHasNoEncoding(t *testing.T) {
	cfg := newTestConfig(t, func(c *startup.Config) {
		c.EnableGzipCompression = true
		c.Enable304CachingHeaders = true
	})
	p := New(cfg, io.Discard)

	first := httptest.NewRecorder()
	p.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/css/site.css", http.NoBody))
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("Expected ETag with caching headers enabled")
	}

	req := httptest.NewRequest(http.MethodGet, "/css/site.css", http.NoBody)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("If-None-Match", etag)
	w := httptest.NewRecorder()
	p.ServeHTTP(w, req)

	if w.Code != http.StatusNotModified {
		t.Fatalf("Expected 304, got %d", w.Code)
	}
	if w.Header().Get("Content-Encoding") != "" {
		t.Error("Expected no Content-Encoding on 304")
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %d bytes", w.Body.Len())
	}
}

func TestConcurrentDelayedRequests(t *testing.T) {
	delay := 150 * time.Millisecond
	p := New(newTestConfig(t, func(c *startup.Config) { c.ServerDurationMS = int(delay / time.Millisecond) }), io.Discard)

	const n = 8
	var wg sync.WaitGroup
	codes := make([]int, n)
	start := time.Now()
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			p.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/about", http.NoBody))
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	if elapsed < delay {
		t.Errorf("Expected at least %v, got %v", delay, elapsed)
	}
	if elapsed > 4*delay {
		t.Errorf("Expected concurrent delays to overlap, took %v", elapsed)
	}
	for i, code := range codes {
		if code != http.StatusOK {
			t.Errorf("request %d: expected 200, got %d", i, code)
		}
	}
}
