package repair

//go:generate mockery --config ../../../.mockery.yaml

import (
	"context"
	"time"
)

// PodRemover removes a pod so that its owner recreates it.
// Implementations are provided by adapters in the outbound layer.
type PodRemover interface {
	RemovePodCommand(
		ctx context.Context,
		namespace,
		name string,
	) error
}

// EventPublisher publishes a Kubernetes event about a pod.
type EventPublisher interface {
	PublishEventCommand(
		ctx context.Context,
		target RemediationTarget,
		event Event,
	) error
}

// metricsRecorder is the subset of the metrics registry updated by the pipeline.
type metricsRecorder interface {
	IncQueueOverflow()
	IncPodsRemoved()
	IncRemoveErrors()
	IncRemoveTimeouts()
	ObserveRemoveLatency(d time.Duration)
	IncPublishErrors()
	IncPublishTimeouts()
	ObservePublishLatency(d time.Duration)
}

// notFound is a private interface for checking "not found" errors
// without importing the adapter package.
type notFound interface {
	IsNotFound()
}

// tooManyRequests is a private interface for checking refused evictions
// without importing the adapter package.
type tooManyRequests interface {
	IsTooManyRequests()
}
