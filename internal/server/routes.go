package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/outlinegraph/pkg/observability"
	"github.com/matzehuels/outlinegraph/pkg/pipeline"
)

// NewRouter builds the HTTP handler.
func NewRouter(runner *pipeline.Runner, indentWidth int, logger *log.Logger) http.Handler {
	h := &handler{runner: runner, indent: indentWidth, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", h.health)
	r.Post("/compile", h.compile)
	r.Post("/render", h.render)

	return r
}

// requestLogger logs each request and reports it to the server hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hooks := observability.Server()
			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			duration := time.Since(start)

			hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", duration,
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
