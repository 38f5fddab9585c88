package cronparser

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	cron "github.com/netresearch/go-cron"
)

// Scheduler emits a tick on every occurrence of a cron schedule. Ticks are
// coalesced: while a tick is pending, further occurrences are dropped.
type Scheduler struct {
	logger     *slog.Logger
	spec       string
	schedule   cron.Schedule
	now        func() time.Time
	ticks      chan struct{}
	ready      chan struct{}
	doneCh     chan struct{}
	inShutdown atomic.Bool
	fired      atomic.Uint64
}

// NewScheduler validates spec and creates a scheduler evaluated in tz.
func NewScheduler(logger *slog.Logger, spec, tz string) (*Scheduler, error) {
	schedule, err := Parse(spec, tz)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		logger:   logger.With("component", "resync-scheduler", "schedule", spec, "tz", tz),
		spec:     spec,
		schedule: schedule,
		now:      time.Now,
		ticks:    make(chan struct{}, 1),
		ready:    make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Name returns the name of the scheduler component
func (s *Scheduler) Name() string {
	return "resync-scheduler"
}

// Ticks returns the channel receiving schedule occurrences.
func (s *Scheduler) Ticks() <-chan struct{} {
	return s.ticks
}

// Fired returns the number of occurrences delivered so far.
func (s *Scheduler) Fired() uint64 {
	return s.fired.Load()
}

// Ready returns a channel that is closed once the schedule loop started.
func (s *Scheduler) Ready() <-chan struct{} {
	return s.ready
}

// Run waits for schedule occurrences until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	defer close(s.doneCh)

	close(s.ready)

	for {
		now := s.now()
		next := s.schedule.Next(now)

		if next.IsZero() {
			s.logger.WarnContext(ctx, "schedule has no future occurrence, stopping")

			return
		}

		s.logger.DebugContext(ctx, "next resync scheduled", "at", next)

		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.InfoContext(ctx, "terminating resync scheduler")

			return
		case <-timer.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	select {
	case s.ticks <- struct{}{}:
		s.fired.Add(1)
	default:
		s.logger.DebugContext(ctx, "previous resync still pending, skipping")
	}
}

// Shutdown waits for the schedule loop to exit.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		return nil
	}

	select {
	case <-s.ready:
	default:
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before scheduler loop exited: %w", ctx.Err())
	case <-s.doneCh:
	}

	return nil
}
