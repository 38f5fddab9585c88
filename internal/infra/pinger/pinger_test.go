package pinger

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	shouldError atomic.Bool
	delay       time.Duration
	name        string
}

func (m *mockPinger) Name() string {
	if m.name != "" {
		return m.name
	}

	return "mock-pinger"
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.delay):
		}
	}

	if m.shouldError.Load() {
		return errors.New("mock pinger error")
	}

	return nil
}

// optionalPinger opts out of readiness and overrides the ping timeout
type optionalPinger struct {
	mockPinger
	timeout time.Duration
}

func (p *optionalPinger) PingerReadyCritical() bool {
	return false
}

func (p *optionalPinger) PingerTimeout() time.Duration {
	return p.timeout
}

func newService(t *testing.T, interval time.Duration) *Service {
	t.Helper()

	return New(slog.Default(), interval, prometheus.NewPedanticRegistry(), "test")
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("register valid pinger", func(t *testing.T) {
		t.Parallel()

		service := newService(t, time.Second)
		require.NoError(t, service.Register(&mockPinger{name: "test1"}))
	})

	t.Run("register nil pinger", func(t *testing.T) {
		t.Parallel()

		service := newService(t, time.Second)
		require.ErrorIs(t, service.Register(nil), ErrNilPinger)
	})

	t.Run("register duplicate pinger", func(t *testing.T) {
		t.Parallel()

		service := newService(t, time.Second)
		require.NoError(t, service.Register(&mockPinger{name: "test3"}))
		require.ErrorIs(t, service.Register(&mockPinger{name: "test3"}), ErrPingerAlreadyRegistered)
	})

	t.Run("optional interfaces are detected", func(t *testing.T) {
		t.Parallel()

		service := newService(t, time.Second)
		require.NoError(t, service.Register(&optionalPinger{
			mockPinger: mockPinger{name: "optional"},
			timeout:    50 * time.Millisecond,
		}))

		info := service.pingers["optional"]
		require.False(t, info.readyCritical)
		require.True(t, info.healthCritical)
		require.Equal(t, 50*time.Millisecond, info.timeout)
	})
}

func TestService_GetStats(t *testing.T) {
	t.Parallel()

	service := newService(t, time.Second)
	require.NoError(t, service.Register(&mockPinger{name: "test"}))

	stats, err := service.GetStats("test")
	require.NoError(t, err)
	require.True(t, stats.IsReady)
	require.True(t, stats.IsHealthy)
	require.True(t, stats.LastRun.IsZero())

	_, err = service.GetStats("nonexistent")
	require.ErrorIs(t, err, ErrPingerNotFound)
}

func TestService_runPingers(t *testing.T) {
	t.Parallel()

	service := newService(t, time.Second)

	healthy := &mockPinger{name: "healthy"}
	failing := &mockPinger{name: "failing"}
	failing.shouldError.Store(true)
	slow := &optionalPinger{
		mockPinger: mockPinger{name: "slow", delay: time.Second},
		timeout:    20 * time.Millisecond,
	}

	require.NoError(t, service.Register(healthy))
	require.NoError(t, service.Register(failing))
	require.NoError(t, service.Register(slow))

	service.runPingers(t.Context())

	all := service.GetAllStats()
	require.Len(t, all, 3)

	require.True(t, all["healthy"].IsHealthy)
	require.Equal(t, uint64(1), all["healthy"].SuccessCount)
	require.Empty(t, all["healthy"].LastError)

	require.False(t, all["failing"].IsHealthy)
	require.False(t, all["failing"].IsReady)
	require.Equal(t, uint64(1), all["failing"].ErrorCount)
	require.Equal(t, "mock pinger error", all["failing"].LastError)

	require.False(t, all["slow"].IsHealthy)
	require.True(t, all["slow"].IsReady, "not ready critical")
	require.Contains(t, all["slow"].LastError, context.DeadlineExceeded.Error())

	require.InDelta(t, 1, testutil.ToFloat64(service.up.WithLabelValues("healthy")), 0)
	require.InDelta(t, 0, testutil.ToFloat64(service.up.WithLabelValues("failing")), 0)

	failing.shouldError.Store(false)
	service.runPingers(t.Context())

	stats, err := service.GetStats("failing")
	require.NoError(t, err)
	require.True(t, stats.IsHealthy)
	require.Equal(t, uint64(1), stats.SuccessCount)
	require.Equal(t, uint64(1), stats.ErrorCount)
}

func TestService_StartShutdown(t *testing.T) {
	t.Parallel()

	service := newService(t, 10*time.Millisecond)
	require.NoError(t, service.Register(&mockPinger{name: "test"}))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	require.NoError(t, service.Start(ctx))

	select {
	case <-service.Ready():
	case <-time.After(time.Second):
		t.Fatal("pinger service did not become ready")
	}

	require.Eventually(t, func() bool {
		stats, err := service.GetStats("test")

		return err == nil && stats.SuccessCount >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()

	require.NoError(t, service.Shutdown(shutdownCtx))
	require.NoError(t, service.Shutdown(shutdownCtx), "second shutdown is a no-op")
}
