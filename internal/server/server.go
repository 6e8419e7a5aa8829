package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
)

// Server wraps the HTTP listener for the dashboard API.
type Server struct {
	httpServer *http.Server
}

// New creates a Server serving handler on addr.
func New(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[INFO] HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("[INFO] shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
