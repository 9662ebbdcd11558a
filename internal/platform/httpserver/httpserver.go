package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server tuned for the reading API. WriteTimeout stays
// unset: interpretation requests may legitimately hold the connection while
// the synthesis floor elapses, and the router already enforces a per-request
// timeout.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
