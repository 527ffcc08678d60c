// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/recallai/recall/internal/api/handler"
	"github.com/recallai/recall/internal/api/middleware"
	"github.com/recallai/recall/internal/metrics"
)

// Server represents the Recall HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host   string
	Port   int
	APIKey string
}

// Deps holds the services the API exposes. Metrics may be nil when
// metrics are disabled.
type Deps struct {
	Chat      handler.ChatService
	Providers handler.ProviderDirectory
	Cache     handler.CacheAdmin
	Logs      handler.LogReader
	Metrics   *metrics.Registry
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, deps Deps, logger *zap.Logger) (*Server, error) {
	if deps.Chat == nil {
		return nil, fmt.Errorf("chat service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)

	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, deps Deps) {
	chatHandler := handler.NewChatHandler(deps.Chat)
	adminHandler := handler.NewAdminHandler(deps.Providers, deps.Cache, deps.Logs, deps.Metrics)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/chat", chatHandler.Chat)
	apiMux.HandleFunc("/api/providers", adminHandler.Providers)
	apiMux.HandleFunc("/api/cache/stats", adminHandler.CacheStats)
	apiMux.HandleFunc("/api/cache", adminHandler.CachePurge)
	apiMux.HandleFunc("/api/logs", adminHandler.Logs)
	apiMux.HandleFunc("/api/logs/stats", adminHandler.LogStats)

	var protected http.Handler = apiMux
	protected = middleware.APIKeyAuth(cfg.APIKey)(protected)
	if deps.Metrics != nil {
		protected = metrics.HTTPMiddleware(deps.Metrics)(protected)
	}
	s.mux.Handle("/api/", protected)

	// Health and metrics stay outside auth so probes and scrapers work
	// without credentials.
	s.mux.HandleFunc("/api/health", s.handleHealth)
	if deps.Metrics != nil {
		s.mux.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the root mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
