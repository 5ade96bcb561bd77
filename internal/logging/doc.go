// Package logging provides the leveled operator log used by webperf for
// lifecycle and error messages.
//
// Levels, from most to least verbose:
//   - DEBUG: route tables, per-step shutdown detail
//   - INFO: configuration, startup and shutdown progress
//   - WARN: recoverable problems
//   - ERROR: failed requests or server errors
//
// The initial level comes from the DEBUG and LOG_LEVEL environment
// variables and may be replaced at startup with [SetLevel] once the
// configuration file has been read. Per-request protocol lines are not
// written through this package; see internal/middleware.
package logging
