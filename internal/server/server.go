// Package server exposes the card catalog and saved decks over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mikecinchan/tcg-deck-editor/pkg/auth"
	"github.com/mikecinchan/tcg-deck-editor/pkg/cache"
	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
	"github.com/mikecinchan/tcg-deck-editor/pkg/decks"
)

// Options configures a [Server].
type Options struct {
	Catalog  *catalog.Service // Required
	Decks    *decks.Service   // Required
	Verifier auth.Verifier    // Nil rejects every authenticated route
	Cache    cache.Cache      // Response cache emptied by the admin endpoint (optional)
	Seed     *catalog.Seed    // Snapshot seed emptied by the admin endpoint (optional)
	Logger   *log.Logger      // Request and error logs (default: discard)

	ReadTimeout     time.Duration // default: 15s
	WriteTimeout    time.Duration // default: 60s
	ShutdownTimeout time.Duration // default: 10s
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 15 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return opts
}

// Server is the HTTP API.
type Server struct {
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New builds the server and its routes.
func New(opts Options) *Server {
	opts = opts.WithDefaults()
	s := &Server{opts: opts, logger: opts.Logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/cards", s.listCards)
		r.Get("/cards/{id}", s.getCard)
		r.Get("/groups", s.listGroups)
		r.Get("/catalog/status", s.catalogStatus)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Route("/decks", func(r chi.Router) {
				r.Get("/", s.listDecks)
				r.Post("/", s.createDeck)
				r.Get("/{id}", s.getDeck)
				r.Put("/{id}", s.updateDeck)
				r.Delete("/{id}", s.deleteDeck)
			})

			r.With(s.requireRole(auth.RoleAdmin)).Post("/admin/cache/clear", s.clearCache)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNoRoute)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
