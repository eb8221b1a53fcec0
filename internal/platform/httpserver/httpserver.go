// Package httpserver constructs the API server. Per-request deadlines come
// from the timeout middleware; only the header read is bounded here.
package httpserver

import (
	"net/http"
	"time"
)

const readHeaderTimeout = 5 * time.Second

// New builds the http.Server serving the case and account routes.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
