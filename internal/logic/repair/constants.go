package repair

import "time"

const (
	// DataPlaneLabel marks pods that were injected with the proxy and its init containers.
	DataPlaneLabel = "linkerd.io/control-plane-ns"

	// ValidatorContainerName is the init container that validates traffic redirection.
	ValidatorContainerName = "linkerd-network-validator"

	// UnsuccessfulExitCode is the validator's exit code when redirection is not set up
	// (ERRNO 95, operation not supported).
	UnsuccessfulExitCode int32 = 95

	// EvictedConditionReason is set on a pod condition once the eviction API accepted its eviction.
	EvictedConditionReason = "EvictionByEvictionAPI"

	// EventReason is the reason of every event published after a remediation.
	EventReason = "LinkerdCNINotConfigured"

	// QueueCapacity bounds the number of targets waiting for the worker. A dropped target
	// is observed again on the pod's next crash loop iteration.
	QueueCapacity = 32

	// RemoveTimeout bounds a single delete or evict call.
	RemoveTimeout = 1 * time.Second

	// PublishTimeout bounds a single event publish call.
	PublishTimeout = 1 * time.Second
)
