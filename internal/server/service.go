// Package server exposes projections over a small read-only HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/theirongolddev/sipcalc/internal/plot"
	"github.com/theirongolddev/sipcalc/internal/sip"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"
)

// Config controls the API runtime behavior.
type Config struct {
	Addr           string
	AllowedOrigins []string

	// Parameters used when a request omits them.
	Monthly  float64
	Years    int
	Rates    []float64
	Currency string

	ChartWidth  int
	ChartHeight int

	Logger *slog.Logger
}

// Service provides the HTTP API.
type Service struct {
	cfg    Config
	log    *slog.Logger
	router chi.Router
}

// New returns a new API service with the provided config. Default parameters
// that requests could never satisfy are replaced: years are clamped to the
// allowed range, and an invalid contribution or rate set falls back to the
// built-in default.
func New(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if sip.CheckContribution(cfg.Monthly) != nil {
		cfg.Monthly = sip.DefaultContribution
	}
	if cfg.Years <= 0 {
		cfg.Years = sip.DefaultYears
	}
	cfg.Years = sip.ClampYears(cfg.Years)
	if _, err := sip.Project(cfg.Monthly, cfg.Years, cfg.Rates); err != nil {
		cfg.Rates = append([]float64(nil), sip.DefaultRates...)
	}
	if cfg.Currency == "" {
		cfg.Currency = "₹"
	}
	if cfg.Logger == nil {
		cfg.Logger = NewLogger(io.Discard, "http")
	}

	s := &Service{cfg: cfg, log: cfg.Logger}
	s.router = s.routes()
	return s
}

// Handler returns the routed HTTP handler.
func (s *Service) Handler() http.Handler {
	return s.router
}

func (s *Service) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))
	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/projection", s.handleProjection)
		r.Get("/projection/final", s.handleFinal)
		r.Get("/chart.png", s.handleChart(plot.PNG))
		r.Get("/chart.svg", s.handleChart(plot.SVG))
	})
	return r
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", "addr", s.cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
