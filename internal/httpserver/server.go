package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillcoder/cni-repair-controller/internal/infra/appstate"
	"github.com/skillcoder/cni-repair-controller/internal/infra/shutdown"
)

// Server is the admin server exposing liveness, readiness, status and metrics.
type Server struct {
	logger     *slog.Logger
	appState   appstater
	gatherer   prometheus.Gatherer
	port       string
	server     *http.Server
	addr       atomic.Pointer[string]
	ready      chan struct{}
	inShutdown atomic.Bool
}

// New creates a new admin server instance. Only metrics of gatherer are exposed.
func New(
	logger *slog.Logger,
	appState appstater,
	gatherer prometheus.Gatherer,
	port string,
) *Server {
	if port == "" {
		port = defaultPort
	}

	return &Server{
		logger:   logger.With("component", "admin-server"),
		appState: appState,
		gatherer: gatherer,
		port:     port,
		ready:    make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Server)(nil)

// Name returns the name of the server component
func (s *Server) Name() string {
	return "admin-server"
}

// PingerReadyCritical keeps a broken admin server from failing readiness,
// the kubelet notices it through the probes anyway.
func (s *Server) PingerReadyCritical() bool {
	return false
}

// Ping returns nil when the server is ready to serve.
func (s *Server) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
		return nil
	default:
		return fmt.Errorf("admin server is not ready")
	}
}

// Addr returns the bound listen address, empty before Start.
func (s *Server) Addr() string {
	if addr := s.addr.Load(); addr != nil {
		return *addr
	}

	return ""
}

// Handler builds the admin router.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/live", appstate.HandleLive(s.logger, s.appState))
	router.Get("/ready", appstate.HandleReady(s.logger, s.appState))
	router.Get("/-/status", appstate.HandleStatus(s.logger, s.appState))
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}))

	return router
}

// Start binds the listener and serves in a goroutine. A bind failure is returned.
func (s *Server) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "admin server is shutting down, skipping start")

		return nil
	}

	addr := ":" + s.port

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}

	lc := &net.ListenConfig{
		KeepAliveConfig: net.KeepAliveConfig{
			Enable: true,
		},
	}

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen admin tcp: %w", err)
	}

	bound := listener.Addr().String()
	s.addr.Store(&bound)

	s.logger.InfoContext(ctx, "admin server listening", "addr", bound)

	go func() {
		close(s.ready)

		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "admin server error", "reason", err)
		}
	}()

	return nil
}

// Ready returns a channel that is closed when the server is ready to serve requests
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown gracefully shuts down the admin server
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "admin server is already shutting down, skipping shutdown")

		return nil
	}

	s.logger.InfoContext(ctx, "shutting down admin server")

	if s.server == nil {
		return nil
	}

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("admin server shutdown: %w", err)
	}

	s.logger.InfoContext(ctx, "admin server closed properly")

	return nil
}
