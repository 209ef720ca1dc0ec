// Package server exposes the compile and render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz   liveness and build version
//	POST /compile   outline text in, compiled graph (JSON or YAML) out
//	POST /render    outline text in, one rendered artifact out
//
// Both POST routes take the outline as the raw request body and options as
// query parameters: fold and hide (comma-separated or repeated), strict,
// no_prune, refresh; /render also takes format, rankdir and detailed.
// Errors are returned as JSON objects with the error code and message.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/outlinegraph/pkg/pipeline"
)

// MaxBodyBytes caps the size of an uploaded outline.
const MaxBodyBytes = 4 << 20

// Server is an HTTP server bound to one pipeline runner.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New creates a server listening on addr.
func New(addr string, runner *pipeline.Runner, indentWidth int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(runner, indentWidth, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
