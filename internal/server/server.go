// Package server provides the HTTP API for kotoba.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/kotoba/internal/config"
	"github.com/hyperjump/kotoba/internal/service"
)

// Server is the HTTP server for the kotoba API.
type Server struct {
	svc    *service.Service
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(svc *service.Service, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		svc:    svc,
		config: cfg,
		logger: logger,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/embeddings", s.handleEmbeddings)
	r.Post("/api/v1/tfidf", s.handleTfidf)
	r.Post("/api/v1/visualizations", s.handleVisualize)
	r.Get("/api/v1/visualizations", s.handleListVisualizations)
	r.Get("/api/v1/visualizations/{id}", s.handleGetVisualization)
	r.Post("/api/v1/visualizations/cleanup", s.handleCleanup)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
