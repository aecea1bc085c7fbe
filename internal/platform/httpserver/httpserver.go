// Package httpserver builds the process's HTTP server with timeouts suited
// to a small JSON API.
package httpserver

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
)

// New builds the server for addr. Per-request deadlines come from the
// timeout middleware, so only connection-level timeouts are set here.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
}
