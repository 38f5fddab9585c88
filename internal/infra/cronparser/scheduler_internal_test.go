package cronparser

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewScheduler(t *testing.T) {
	t.Parallel()

	_, err := NewScheduler(slog.Default(), "not a cron", "UTC")
	require.Error(t, err)

	s, err := NewScheduler(slog.Default(), "*/5 * * * *", "UTC")
	require.NoError(t, err)
	require.Equal(t, "resync-scheduler", s.Name())
}

func TestScheduler_Run(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler(slog.Default(), "* * * * *", "UTC")
	require.NoError(t, err)

	// every evaluation happens a millisecond before the next minute
	s.now = func() time.Time {
		return time.Now().Truncate(time.Minute).Add(time.Minute - time.Millisecond)
	}

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	go s.Run(ctx)

	select {
	case <-s.Ticks():
	case <-time.After(time.Second):
		t.Fatal("no tick received")
	}

	// ticks are coalesced while nobody receives
	require.Eventually(t, func() bool {
		return len(s.ticks) == 1
	}, time.Second, time.Millisecond)

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()

	require.NoError(t, s.Shutdown(shutdownCtx))
	require.GreaterOrEqual(t, s.Fired(), uint64(2))
}
