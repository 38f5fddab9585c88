package pinger

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/skillcoder/cni-repair-controller/internal/infra/shutdown"
)

const (
	// defaultPingTimeout is the default timeout for ping operations
	defaultPingTimeout = 1 * time.Second
)

// Optional interface types for type assertions
type readyCriticalPinger interface {
	PingerReadyCritical() bool
}

type healthCriticalPinger interface {
	PingerCritical() bool
}

type timeoutPinger interface {
	PingerTimeout() time.Duration
}

// pingerInfo holds pinger instance and its configuration
type pingerInfo struct {
	pinger         Pinger
	readyCritical  bool
	healthCritical bool
	timeout        time.Duration
}

// Service manages health check pingers and tracks their statistics
type Service struct {
	logger     *slog.Logger
	interval   time.Duration
	pingers    map[string]*pingerInfo
	stats      map[string]*Stats
	latency    *prometheus.HistogramVec
	up         *prometheus.GaugeVec
	mu         sync.RWMutex
	ready      chan struct{}
	inShutdown atomic.Bool
	started    atomic.Bool
	doneCh     chan struct{}
	wg         sync.WaitGroup
}

// New creates a new pinger service with the specified interval. Ping results
// are exported on reg under namespace.
func New(
	logger *slog.Logger,
	interval time.Duration,
	reg prometheus.Registerer,
	namespace string,
) *Service {
	factory := promauto.With(reg)

	return &Service{
		logger:   logger.With("component", "pinger"),
		interval: interval,
		pingers:  make(map[string]*pingerInfo),
		stats:    make(map[string]*Stats),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ping_latency_seconds",
			Help:      "Latency of component health pings",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		}, []string{"name"}),
		up: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "component_up",
			Help:      "Whether the last health ping of a component succeeded",
		}, []string{"name"}),
		ready:  make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Service)(nil)

// Name returns the name of the pinger service component
func (s *Service) Name() string {
	return "pinger-service"
}

// Register registers a pinger under its name
func (s *Service) Register(pinger Pinger) error {
	if pinger == nil {
		return fmt.Errorf("register pinger: %w", ErrNilPinger)
	}

	name := pinger.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pingers[name]; exists {
		return fmt.Errorf("register pinger %s: %w", name, ErrPingerAlreadyRegistered)
	}

	readyCritical := true

	if rc, ok := pinger.(readyCriticalPinger); ok {
		readyCritical = rc.PingerReadyCritical()
	}

	healthCritical := true

	if hc, ok := pinger.(healthCriticalPinger); ok {
		healthCritical = hc.PingerCritical()
	}

	timeout := defaultPingTimeout

	if tp, ok := pinger.(timeoutPinger); ok {
		customTimeout := tp.PingerTimeout()
		if customTimeout > 0 {
			timeout = customTimeout
		}
	}

	s.pingers[name] = &pingerInfo{
		pinger:         pinger,
		readyCritical:  readyCritical,
		healthCritical: healthCritical,
		timeout:        timeout,
	}
	s.stats[name] = NewPingerStats(name)

	s.logger.Info("pinger registered",
		"name", name,
		"readyCritical", readyCritical,
		"healthCritical", healthCritical,
		"timeout", timeout,
	)

	return nil
}

// Start starts the pinger service in a goroutine
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "pinger service is shutting down, skipping start")

		return nil
	}

	s.started.Store(true)

	go s.run(ctx)

	return nil
}

// Ready returns a channel that is closed after the first round of pings
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown waits for the ping loop and in-flight pings to finish
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "pinger service is already shutting down, skipping shutdown")

		return nil
	}

	s.logger.InfoContext(ctx, "shutting down pinger service")

	if !s.started.Load() {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before pinger loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "pinger loop exited")
	}

	s.wg.Wait()

	return nil
}

// GetStats returns statistics for a specific pinger
func (s *Service) GetStats(name string) (*Statistics, error) {
	s.mu.RLock()
	info, infoExists := s.pingers[name]
	stats, statsExists := s.stats[name]
	s.mu.RUnlock()

	if !infoExists || !statsExists {
		return nil, fmt.Errorf("get stats: %w: %s", ErrPingerNotFound, name)
	}

	return stats.snapshot(info), nil
}

// GetAllStats returns a snapshot of all pinger statistics
func (s *Service) GetAllStats() map[string]*Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Statistics, len(s.stats))
	for name, stats := range s.stats {
		result[name] = stats.snapshot(s.pingers[name])
	}

	return result
}

func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runPingers(ctx)

	close(s.ready)

	for {
		if s.inShutdown.Load() {
			s.logger.InfoContext(ctx, "terminating pinger loop")

			return
		}

		select {
		case <-ticker.C:
			s.runPingers(ctx)
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "terminating pinger loop")

			return
		}
	}
}

// runPingers executes all registered pingers in parallel and waits for them
func (s *Service) runPingers(ctx context.Context) {
	s.mu.RLock()
	pingers := make(map[string]*pingerInfo, len(s.pingers))
	maps.Copy(pingers, s.pingers)
	s.mu.RUnlock()

	var wg sync.WaitGroup

	for name, info := range pingers {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		s.wg.Add(1)

		go func() {
			defer wg.Done()
			defer s.wg.Done()

			s.ping(ctx, name, info)
		}()
	}

	wg.Wait()
}

func (s *Service) ping(ctx context.Context, name string, info *pingerInfo) {
	pingCtx, cancel := context.WithTimeout(ctx, info.timeout)
	defer cancel()

	start := time.Now()
	err := info.pinger.Ping(pingCtx)
	latency := time.Since(start)

	s.mu.RLock()
	stats := s.stats[name]
	s.mu.RUnlock()

	stats.record(start, latency, err)
	s.latency.WithLabelValues(name).Observe(latency.Seconds())

	if err != nil {
		s.up.WithLabelValues(name).Set(0)
		s.logger.DebugContext(ctx, "pinger error",
			"name", name,
			"latency", latency,
			"reason", err,
		)

		return
	}

	s.up.WithLabelValues(name).Set(1)
	s.logger.DebugContext(ctx, "pinger success",
		"name", name,
		"latency", latency,
	)
}
