package static

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"syscall"
	"time"

	"webperf/internal/filesystem"
	"webperf/internal/logging"
	"webperf/internal/metrics"
	"webperf/internal/startup"
)

const indexFile = "index.html"

// htmlExtension is tried for extensionless paths that match nothing.
const htmlExtension = ".html"

// Handler serves files from a filesystem.Dir.
type Handler struct {
	dir          *filesystem.Dir
	conditional  bool
	etagMode     string
	cacheControl string
}

// NewHandler creates a static Handler for dir using the caching switches
// in cfg.
func NewHandler(cfg *startup.Config, dir *filesystem.Dir) *Handler {
	return &Handler{
		dir:          dir,
		conditional:  cfg.Enable304CachingHeaders,
		etagMode:     cfg.ETagMode,
		cacheControl: cacheControlValue(cfg.MaxAge()),
	}
}

func cacheControlValue(maxAge time.Duration) string {
	return fmt.Sprintf("public, max-age=%d", int64(maxAge/time.Second))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.notFound(w, r)
		return
	}

	upath := r.URL.Path
	if !strings.HasPrefix(upath, "/") {
		upath = "/" + upath
	}
	if hasHiddenSegment(upath) {
		h.notFound(w, r)
		return
	}

	info, err := h.dir.Stat(upath)
	switch {
	case err == nil:
	case isNotFound(err):
		if path.Ext(upath) == "" && !strings.HasSuffix(upath, "/") {
			h.tryHTMLFallback(w, r, upath)
			return
		}
		h.notFound(w, r)
		return
	default:
		h.serverError(w, r, upath, err)
		return
	}

	if info.IsDir() {
		if !strings.HasSuffix(upath, "/") {
			h.redirectToDir(w, r, upath)
			return
		}
		h.serveIndex(w, r, upath)
		return
	}

	if !info.Mode().IsRegular() || strings.HasSuffix(upath, "/") {
		h.notFound(w, r)
		return
	}
	h.serveFile(w, r, upath, metrics.StaticServed)
}

// hasHiddenSegment reports whether any path segment starts with a dot,
// which covers both dotfiles and "." / ".." traversal.
func hasHiddenSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, filesystem.ErrInvalidPath) ||
		errors.Is(err, fs.ErrInvalid) ||
		errors.Is(err, syscall.ENOTDIR)
}

func (h *Handler) tryHTMLFallback(w http.ResponseWriter, r *http.Request, upath string) {
	candidate := upath + htmlExtension
	info, err := h.dir.Stat(candidate)
	if err != nil {
		if isNotFound(err) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, candidate, err)
		return
	}
	if !info.Mode().IsRegular() {
		h.notFound(w, r)
		return
	}
	h.serveFile(w, r, candidate, metrics.StaticHTMLFallback)
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request, dirPath string) {
	candidate := dirPath + indexFile
	info, err := h.dir.Stat(candidate)
	if err != nil {
		if isNotFound(err) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, candidate, err)
		return
	}
	if !info.Mode().IsRegular() {
		h.notFound(w, r)
		return
	}
	h.serveFile(w, r, candidate, metrics.StaticIndex)
}

func (h *Handler) redirectToDir(w http.ResponseWriter, r *http.Request, upath string) {
	// Cleaning keeps a leading "//host" from turning into an off-site redirect.
	target := path.Clean(upath) + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	metrics.StaticRequestsTotal.WithLabelValues(metrics.StaticRedirect).Inc()
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, name, result string) {
	f, err := h.dir.Open(name)
	if err != nil {
		if isNotFound(err) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, name, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.serverError(w, r, name, err)
		return
	}

	header := w.Header()
	header.Set("Cache-Control", h.cacheControl)

	var modTime time.Time
	if h.conditional {
		etag, err := computeETag(h.etagMode, f, info)
		if err != nil {
			h.serverError(w, r, name, err)
			return
		}
		header.Set("ETag", etag)
		modTime = info.ModTime()
	} else {
		r = withoutConditionals(r)
	}

	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	http.ServeContent(sw, r, path.Base(name), modTime, f)

	if sw.status == http.StatusNotModified {
		result = metrics.StaticNotModified
	}
	metrics.StaticRequestsTotal.WithLabelValues(result).Inc()
}

// withoutConditionals strips validators from the request so that
// http.ServeContent never answers 304 or 412.
func withoutConditionals(r *http.Request) *http.Request {
	if r.Header.Get("If-None-Match") == "" &&
		r.Header.Get("If-Modified-Since") == "" &&
		r.Header.Get("If-Match") == "" &&
		r.Header.Get("If-Unmodified-Since") == "" &&
		r.Header.Get("If-Range") == "" {
		return r
	}
	r = r.Clone(r.Context())
	for _, k := range []string{"If-None-Match", "If-Modified-Since", "If-Match", "If-Unmodified-Since", "If-Range"} {
		r.Header.Del(k)
	}
	return r
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	metrics.StaticRequestsTotal.WithLabelValues(metrics.StaticNotFound).Inc()
	http.NotFound(w, r)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, name string, err error) {
	metrics.StaticRequestsTotal.WithLabelValues(metrics.StaticError).Inc()
	logging.Error("static: failed to serve %s for %s: %v", name, r.URL.Path, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// statusWriter records the status http.ServeContent chose.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
