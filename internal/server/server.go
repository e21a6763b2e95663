// Package server provides the HTTP API for the relevance service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/campushare/relevance/internal/auth"
	"github.com/campushare/relevance/internal/config"
	"github.com/campushare/relevance/internal/corpus"
	"github.com/campushare/relevance/internal/metrics"
	"github.com/campushare/relevance/internal/search"
	"github.com/campushare/relevance/internal/suggest"
)

// Server is the HTTP server for the relevance API.
type Server struct {
	engine    *search.Engine
	suggester *suggest.Suggester
	provider  corpus.Provider
	validator auth.Validator
	config    *config.ServerConfig
	logger    *zap.Logger
	metrics   *metrics.Metrics
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	suggester *suggest.Suggester,
	provider corpus.Provider,
	validator auth.Validator,
	cfg *config.ServerConfig,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Server {
	if m == nil {
		m = metrics.New()
	}
	return &Server{
		engine:    engine,
		suggester: suggester,
		provider:  provider,
		validator: validator,
		config:    cfg,
		logger:    logger,
		metrics:   m,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(s.metrics.Middleware)

	r.Group(func(r chi.Router) {
		r.Use(auth.Require(s.validator))
		r.Get("/api/v1/search", s.handleSearch)
		r.Post("/api/v1/search", s.handleSearch)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.Optional(s.validator))
		r.Get("/api/v1/suggestions", s.handleSuggestions)
	})
	r.Get("/api/v1/labels", s.handleLabels)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Handle("/metrics", s.metrics.Handler())

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
