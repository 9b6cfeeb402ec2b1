// Package api serves word cloud layouts and renders over HTTP.
//
// Endpoints:
//
//	GET  /healthz                  liveness and build info
//	POST /v1/layout                place tokens, returns the layout document with an id
//	GET  /v1/layout/{id}           fetch a stored layout
//	GET  /v1/layout/{id}/{format}  render a stored layout
//	POST /v1/render/{format}       place and render in one call
//
// Errors are JSON objects {"error": {"code", "message"}, "request_id"} with
// the status derived from the error code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/techcloud/pkg/pipeline"
)

// Options configures a [Server].
type Options struct {
	// Timeout bounds each request. Zero disables the limit.
	Timeout time.Duration

	// MaxBodyBytes limits request bodies. Zero disables the limit.
	MaxBodyBytes int64

	// Defaults are the pipeline options requests are overlaid on.
	Defaults pipeline.Options

	// Layouts stores layouts by id. Nil stores them in the runner's cache.
	Layouts *LayoutStore

	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	layouts *LayoutStore
	opts    Options
	logger  *log.Logger
}

// New creates a server that runs requests through runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = runner.Logger
	}
	layouts := opts.Layouts
	if layouts == nil {
		layouts = NewLayoutStore(runner.Cache, DefaultLayoutTTL)
	}
	return &Server{runner: runner, layouts: layouts, opts: opts, logger: logger}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(observe)
	r.Use(middleware.Recoverer)
	if s.opts.Timeout > 0 {
		r.Use(middleware.Timeout(s.opts.Timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/layout/{id}", s.handleGetLayout)
		r.Get("/layout/{id}/{format}", s.handleRenderLayout)
		r.Post("/render/{format}", s.handleRender)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
