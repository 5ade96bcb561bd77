package filesystem

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrInvalidPath is returned for request paths that cannot be mapped into
// the root, such as those containing a NUL byte or an OS separator other
// than '/'.
var ErrInvalidPath = errors.New("invalid path")

// Dir is a read-only view of a directory tree.
type Dir struct {
	root     string
	observer Observer
}

// NewDir returns a Dir rooted at root. A nil observer disables recording.
func NewDir(root string, observer Observer) *Dir {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Dir{root: root, observer: observer}
}

// Root returns the directory this Dir is rooted at.
func (d *Dir) Root() string {
	return d.root
}

// Resolve maps a slash-separated request path to an OS path under the root.
func (d *Dir) Resolve(name string) (string, error) {
	if strings.IndexByte(name, 0) >= 0 {
		return "", ErrInvalidPath
	}
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		return "", ErrInvalidPath
	}
	root := d.root
	if root == "" {
		root = "."
	}
	return filepath.Join(root, filepath.FromSlash(path.Clean("/"+name))), nil
}

// Stat returns file info for name.
func (d *Dir) Stat(name string) (os.FileInfo, error) {
	full, err := d.Resolve(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	info, err := os.Stat(full)
	d.observer.ObserveOperation("stat", time.Since(start).Seconds(), err)
	return info, err
}

// Open opens name for reading.
func (d *Dir) Open(name string) (*os.File, error) {
	full, err := d.Resolve(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	f, err := os.Open(full)
	d.observer.ObserveOperation("open", time.Since(start).Seconds(), err)
	return f, err
}
