// Package static serves the demo's public asset tree.
//
// Lookups follow the conventions of a typical static site host: a
// directory request is redirected to its trailing-slash form and then
// served from its index.html, and an extensionless path that matches no
// file is retried with ".html" appended, so /about serves about.html.
// Hidden files and anything under a hidden directory are never served.
//
// Caching behaviour is driven by the performance configuration. With
// conditional caching headers enabled every response carries an ETag and
// a Last-Modified header and conditional requests are answered with 304.
// With them disabled neither header is sent and conditional request
// headers are ignored. Cache-Control always carries a max-age, which is
// zero unless browser caching is enabled.
package static
