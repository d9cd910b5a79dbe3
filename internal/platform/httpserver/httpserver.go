package httpserver

import (
	"net/http"
	"time"
)

// New builds the HTTP server. No WriteTimeout: an evaluation can legitimately
// block for the full advisory poll window (up to a minute) before responding.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
