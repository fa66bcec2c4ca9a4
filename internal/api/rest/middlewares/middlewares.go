package middlewares

import "net/http"

// Middleware wraps an http.Handler with additional request processing.
type Middleware interface {
	Handle(next http.Handler) http.Handler
}
