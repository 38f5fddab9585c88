package repair

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Worker drains the queue and remediates one target at a time.
type Worker struct {
	logger         *slog.Logger
	queue          *Queue
	remover        PodRemover
	publisher      EventPublisher
	metrics        metricsRecorder
	mode           Mode
	instance       string
	removeTimeout  time.Duration
	publishTimeout time.Duration
	ready          chan struct{}
	doneCh         chan struct{}
	inShutdown     atomic.Bool
	processed      atomic.Uint64
}

// NewWorker creates the consumer side of the remediation pipeline. instance is
// the name of the controller's own pod, reported on published events.
func NewWorker(
	logger *slog.Logger,
	queue *Queue,
	remover PodRemover,
	publisher EventPublisher,
	metrics metricsRecorder,
	mode Mode,
	instance string,
) *Worker {
	return &Worker{
		logger:         logger.With("component", "worker", "mode", string(mode)),
		queue:          queue,
		remover:        remover,
		publisher:      publisher,
		metrics:        metrics,
		mode:           mode,
		instance:       instance,
		removeTimeout:  RemoveTimeout,
		publishTimeout: PublishTimeout,
		ready:          make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// WithTimeouts overrides the remove and publish timeouts.
func (w *Worker) WithTimeouts(remove, publish time.Duration) *Worker {
	w.removeTimeout = remove
	w.publishTimeout = publish

	return w
}

// Name returns the name of the worker component
func (w *Worker) Name() string {
	return "remediation-worker"
}

// Ready returns a channel that is closed once the worker loop started.
func (w *Worker) Ready() <-chan struct{} {
	return w.ready
}

// Ping reports whether the worker loop is running.
func (w *Worker) Ping(ctx context.Context) error {
	select {
	case <-w.doneCh:
		return fmt.Errorf("remediation worker exited")
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.ready:
		return nil
	default:
		return fmt.Errorf("remediation worker is not ready")
	}
}

// Processed returns the number of targets taken from the queue so far.
func (w *Worker) Processed() uint64 {
	return w.processed.Load()
}

// Run drains the queue until the sender closed it and it is empty, or ctx is done.
// Targets still queued on cancellation are left unprocessed.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.doneCh)
	defer w.queue.CloseReceiver()

	close(w.ready)

	for {
		target, ok := w.queue.Receive(ctx)
		if !ok {
			w.logger.InfoContext(ctx, "terminating worker loop")

			return
		}

		w.Process(ctx, target)
	}
}

// Process removes a single target and publishes an event about it. Failures are
// counted and logged; nothing is retried.
func (w *Worker) Process(ctx context.Context, target RemediationTarget) {
	w.processed.Add(1)

	logger := w.logger.With("namespace", target.Namespace, "pod", target.Name)

	// in-flight calls are bounded by their own timeouts, not by shutdown
	callCtx := context.WithoutCancel(ctx)

	start := time.Now()

	err := RunWithTimeout(callCtx, w.removeTimeout, func(ctx context.Context) error {
		return w.remover.RemovePodCommand(ctx, target.Namespace, target.Name)
	})
	if err != nil {
		w.recordRemoveFailure(ctx, logger, err)

		return
	}

	w.metrics.IncPodsRemoved()
	w.metrics.ObserveRemoveLatency(time.Since(start))
	logger.InfoContext(ctx, "pod removed", "action", w.mode.Action())

	event := Event{
		Action:              w.mode.Action(),
		Reason:              EventReason,
		Note:                w.mode.Note(),
		ReportingController: w.mode.ReportingController(),
		ReportingInstance:   w.instance,
	}

	start = time.Now()

	err = RunWithTimeout(callCtx, w.publishTimeout, func(ctx context.Context) error {
		return w.publisher.PublishEventCommand(ctx, target, event)
	})
	if err != nil {
		// the pod is already gone, the event is best effort
		if errors.Is(err, ErrTimeout) {
			logger.WarnContext(ctx, "event publishing timed out")
			w.metrics.IncPublishTimeouts()

			return
		}

		logger.WarnContext(ctx, "error publishing event", "reason", err)
		w.metrics.IncPublishErrors()

		return
	}

	w.metrics.ObservePublishLatency(time.Since(start))
}

func (w *Worker) recordRemoveFailure(ctx context.Context, logger *slog.Logger, err error) {
	if errors.Is(err, ErrTimeout) {
		logger.WarnContext(ctx, "pod removal timed out")
		w.metrics.IncRemoveTimeouts()

		return
	}

	var (
		notFoundTarget        notFound
		tooManyRequestsTarget tooManyRequests
	)

	switch {
	case errors.As(err, &notFoundTarget):
		logger.WarnContext(ctx, "pod already gone", "reason", err)
	case errors.As(err, &tooManyRequestsTarget):
		logger.WarnContext(ctx, "pod removal refused, will retry on next failure", "reason", err)
	default:
		logger.WarnContext(ctx, "error removing pod", "reason", err)
	}

	w.metrics.IncRemoveErrors()
}

// Shutdown waits for the worker loop to exit.
func (w *Worker) Shutdown(ctx context.Context) error {
	if !w.inShutdown.CompareAndSwap(false, true) {
		w.logger.ErrorContext(ctx, "worker is already shutting down, skipping shutdown")

		return nil
	}

	w.logger.InfoContext(ctx, "shutting down remediation worker")

	select {
	case <-w.ready:
	default:
		// never started
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before worker loop exited: %w", ctx.Err())
	case <-w.doneCh:
		w.logger.InfoContext(ctx, "worker loop exited")
	}

	return nil
}
