// Package server exposes the evaluation pipeline over HTTP.
//
// The API is a small JSON surface intended for local editors and batch
// tooling: one endpoint evaluates a parcel, one lists the regulation table,
// and a health endpoint supports container probes.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/jinwoohan/plotgrid/pkg/pipeline"
	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

// Default timeouts for the HTTP server.
const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server serves the evaluation API.
type Server struct {
	runner *pipeline.Runner
	table  zoning.Table
	logger *log.Logger
	addr   string
}

// New creates a server. A nil runner gets a cache-less default; a nil logger
// uses the package default.
func New(runner *pipeline.Runner, table zoning.Table, logger *log.Logger, addr string) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if table.Len() == 0 {
		table = zoning.DefaultTable()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		table:  table,
		logger: logger,
		addr:   addr,
	}
}

// Router builds the HTTP handler. Exposed separately from Start so tests can
// drive it through httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Get("/zones", s.handleZones)
		r.Get("/zones/{zone}", s.handleZone)
	})

	return r
}

// Start runs the server until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
