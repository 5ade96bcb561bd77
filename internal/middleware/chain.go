package middleware

import "net/http"

// Middleware wraps a handler with one pipeline stage.
type Middleware func(http.Handler) http.Handler

// Chain wraps final with stages so that stages[0] runs first.
func Chain(final http.Handler, stages ...Middleware) http.Handler {
	h := final
	for i := len(stages) - 1; i >= 0; i-- {
		if stages[i] == nil {
			continue
		}
		h = stages[i](h)
	}
	return h
}
