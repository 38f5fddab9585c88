package repair

import (
	"context"
	"fmt"
	"log/slog"
)

// Enqueuer filters pod observations and schedules broken pods for remediation.
type Enqueuer struct {
	logger  *slog.Logger
	queue   *Queue
	metrics metricsRecorder
}

// NewEnqueuer creates the producer side of the remediation pipeline.
func NewEnqueuer(
	logger *slog.Logger,
	queue *Queue,
	metrics metricsRecorder,
) *Enqueuer {
	return &Enqueuer{
		logger:  logger.With("component", "enqueuer"),
		queue:   queue,
		metrics: metrics,
	}
}

// Observe evaluates a single observation. It returns ErrQueueClosed when the
// worker is gone; every other outcome is absorbed into logs and metrics.
func (e *Enqueuer) Observe(ctx context.Context, pod PodObservation) error {
	logger := e.logger.With("namespace", pod.Namespace, "pod", pod.Name)

	if !pod.HasStatus {
		logger.DebugContext(ctx, "skipped, no status")

		return nil
	}

	if !HasFailedValidator(pod) || IsBeingRemediated(pod) {
		return nil
	}

	switch e.queue.Offer(TargetFor(pod)) {
	case OfferAccepted:
		logger.DebugContext(ctx, "pod scheduled for remediation")
	case OfferFull:
		// a crash looping pod is reported again on its next restart
		logger.DebugContext(ctx, "dropped event (queue full)")
		e.metrics.IncQueueOverflow()
	case OfferClosed:
		return fmt.Errorf("enqueue %s/%s: %w", pod.Namespace, pod.Name, ErrQueueClosed)
	}

	return nil
}

// Run consumes observations until ctx is done, the stream ends or the queue is
// closed by the worker. The queue's sender side is closed on return.
func (e *Enqueuer) Run(ctx context.Context, pods <-chan PodObservation) error {
	defer e.queue.CloseSender()

	for {
		select {
		case <-ctx.Done():
			e.logger.InfoContext(ctx, "terminating enqueuer loop")

			return nil
		case pod, ok := <-pods:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}

				e.logger.ErrorContext(ctx, "pod watch stream ended")

				return ErrWatchStreamEnded
			}

			err := e.Observe(ctx, pod)
			if err != nil {
				e.logger.ErrorContext(ctx, "stopping enqueuer", "reason", err)

				return err
			}
		}
	}
}
