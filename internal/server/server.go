// Package server exposes the public HTTP API: account management, API
// key issuance, and the match analysis endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sportology/internal/auth"
	"github.com/yourusername/sportology/internal/config"
	"github.com/yourusername/sportology/internal/metrics"
	"github.com/yourusername/sportology/internal/ratelimit"
	"github.com/yourusername/sportology/internal/repository"
	"github.com/yourusername/sportology/internal/service"
)

// Server wires the router, handlers and their dependencies
type Server struct {
	cfg         *config.Config
	logger      *logrus.Logger
	repos       *repository.Repositories
	jwt         *auth.JWTManager
	analysis    *service.AnalysisService
	players     *service.PlayerService
	demoLimiter *ratelimit.DemoLimiter
	validate    *validator.Validate
	upgrader    websocket.Upgrader

	httpServer *http.Server

	allowedSports map[string]bool
}

// New creates the API server
func New(
	cfg *config.Config,
	logger *logrus.Logger,
	repos *repository.Repositories,
	jwtManager *auth.JWTManager,
	analysisService *service.AnalysisService,
	playerService *service.PlayerService,
	demoLimiter *ratelimit.DemoLimiter,
) *Server {
	allowed := make(map[string]bool, len(cfg.Server.AllowedSports))
	for _, sport := range cfg.Server.AllowedSports {
		allowed[sport] = true
	}

	s := &Server{
		cfg:         cfg,
		logger:      logger,
		repos:       repos,
		jwt:         jwtManager,
		analysis:    analysisService,
		players:     playerService,
		demoLimiter: demoLimiter,
		validate:    validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		allowedSports: allowed,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	return s
}

// Routes builds the chi router with the full middleware stack
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(httprate.LimitByIP(s.cfg.Server.RequestsPerMinute, time.Minute))

	r.Get("/health", s.handleHealth)

	if s.cfg.Metrics.Enabled {
		r.Method(http.MethodGet, s.cfg.Metrics.Path, metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.With(s.requireJWT).Get("/me", s.handleMe)
	})

	r.Route("/api-keys", func(r chi.Router) {
		r.Use(s.requireJWT)
		r.Post("/", s.handleCreateAPIKey)
		r.Get("/", s.handleListAPIKeys)
		r.Delete("/{keyID}", s.handleDeleteAPIKey)
		r.Post("/{keyID}/revoke", s.handleRevokeAPIKey)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.With(s.requireAPIKey).Post("/analyze-match", s.handleAnalyzeMatch)
		r.Post("/demo-analyze", s.handleDemoAnalyze)
		r.Get("/players", s.handleSearchPlayers)
	})

	r.Get("/ws/analyze", s.handleAnalyzeStream)

	return r
}

// Start runs the HTTP server until it is shut down
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("Starting API server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "sports-numerology-api",
	})
}
