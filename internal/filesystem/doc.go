/*
Package filesystem provides instrumented, root-confined access to the static
asset directory.

# Purpose

[Dir] resolves slash-separated request paths against a root directory the
same way net/http's Dir does (clean, reject separators that are not '/',
never escape the root) and wraps os.Stat and os.Open so that every call is
timed and reported to an [Observer]. The metrics package supplies the
Prometheus-backed observer; tests and tools may pass nil.

# Usage

	dir := filesystem.NewDir("./public", metrics.NewFilesystemObserver())

	info, err := dir.Stat("/css/site.css")
	if errors.Is(err, fs.ErrNotExist) {
	    // 404
	}

	f, err := dir.Open("/css/site.css")
	if err != nil {
	    return err
	}
	defer f.Close()

Errors are returned unchanged; no retry is attempted.
*/
package filesystem
