// Package httpapi exposes the compliance engine over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/adapters/metrics"
	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/infrastructure/config"
)

// Server routes HTTP requests to the mediator
type Server struct {
	mediator    mediator.Mediator
	cfg         config.ServerConfig
	router      *mux.Router
	limiter     *RateLimiter
	logger      zerolog.Logger
	httpMetrics *metrics.HTTPMetricsCollector
	metricsPath string
}

// Option configures optional server collaborators
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics records request metrics and serves the registry at path
func WithMetrics(collector *metrics.HTTPMetricsCollector, path string) Option {
	return func(s *Server) {
		s.httpMetrics = collector
		s.metricsPath = path
	}
}

// NewServer creates a server and registers all endpoints
func NewServer(m mediator.Mediator, cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		mediator: m,
		cfg:      cfg,
		router:   mux.NewRouter(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Burst)
	s.registerRoutes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.Use(s.loggingMiddleware, s.metricsMiddleware)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.metricsPath != "" && metrics.IsEnabled() {
		s.router.Handle(s.metricsPath, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).
			Methods(http.MethodGet)
	}

	api := s.router.PathPrefix("/").Subrouter()
	api.Use(s.rateLimitMiddleware)

	api.HandleFunc("/routes", s.handleListRoutes).Methods(http.MethodGet)
	api.HandleFunc("/routes/compare", s.handleCompareRoutes).Methods(http.MethodGet)
	api.HandleFunc("/routes/comparison", s.handleGetComparison).Methods(http.MethodGet)
	api.HandleFunc("/routes/set-baseline", s.handleSetBaseline).Methods(http.MethodPost)
	api.HandleFunc("/routes/{id}/metrics", s.handleComputeRouteMetrics).Methods(http.MethodPost)

	api.HandleFunc("/compliance/cb", s.handleComputeCB).Methods(http.MethodPost)
	api.HandleFunc("/compliance/adjusted-cb", s.handleGetAdjustedCB).Methods(http.MethodGet)
	api.HandleFunc("/compliance/snapshots", s.handleListSnapshots).Methods(http.MethodGet)

	api.HandleFunc("/banking/records", s.handleGetBankRecords).Methods(http.MethodGet)
	api.HandleFunc("/banking/bank", s.handleBankSurplus).Methods(http.MethodPost)
	api.HandleFunc("/banking/apply", s.handleApplyBank).Methods(http.MethodPost)

	api.HandleFunc("/pools", s.handleCreatePool).Methods(http.MethodPost)
	api.HandleFunc("/pools/ship", s.handleGetPoolForShip).Methods(http.MethodGet)
	api.HandleFunc("/pools/{id}/members", s.handleGetPoolMembers).Methods(http.MethodGet)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return s.logger.WithContext(context.Background()) },
	}

	stopCleanup := s.limiter.StartCleanup(time.Minute, 10*time.Minute)
	defer stopCleanup()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("HTTP API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Msg("Shutting down HTTP API")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
