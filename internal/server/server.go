// Package server exposes the catalog over HTTP: the public menu page and
// the admin pages for creating, editing and deleting products.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jacksmith/menu/internal/ops"
	"github.com/jacksmith/menu/internal/render"
)

// Config holds runtime options for the HTTP server.
type Config struct {
	Addr string

	// MaxImageBytes bounds the multipart body of a product submission.
	MaxImageBytes int64

	// RequestTimeout cancels handlers that run longer, including image
	// decodes in flight.
	RequestTimeout time.Duration
}

// Server wires the catalog store, the shared form and the HTML renderer
// into a chi router.
type Server struct {
	store  *ops.Store
	form   *ops.Form
	html   *render.HTML
	logger *zap.Logger
	cfg    Config
}

// New returns a server. The store should already render into html.
func New(store *ops.Store, form *ops.Form, html *render.HTML, logger *zap.Logger, cfg Config) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = 5 << 20
	}
	return &Server{store: store, form: form, html: html, logger: logger, cfg: cfg}
}

// Handler builds the router with its middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.healthz)
	r.Get("/", s.menu)

	r.Route("/admin", func(r chi.Router) {
		r.Use(noStore)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, listPath, http.StatusFound)
		})
		r.Get("/products", s.list)
		r.Post("/products", s.submit)
		r.Get("/products/{id}/edit", s.edit)
		r.Get("/products/{id}/delete", s.confirmDelete)
		r.Post("/products/{id}/delete", s.delete)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
