// package server contains routing, middleware & handlers for the playback
// command webhook and the OAuth callback flow
package server

import (
	"encoding/json"
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with
// additional behavior (API key verification, request logging).
type Middleware func(http.Handler) http.Handler

// Handler is an http.Handler that knows its own route patterns, so a single
// implementation can register everything it serves.
type Handler interface {
	http.Handler
	Routes() []string // path patterns this handler serves
}

// Router registers handlers, applies middleware, and serves the whole route
// table as one http.Handler.
type Router interface {
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error envelope: {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
