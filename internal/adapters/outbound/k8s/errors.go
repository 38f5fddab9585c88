package k8s

import "errors"

// TooManyRequestsError is returned when an eviction is refused, typically by a
// pod disruption budget.
type TooManyRequestsError struct{}

func (e *TooManyRequestsError) Error() string {
	return "too many requests"
}

func (e *TooManyRequestsError) IsTooManyRequests() {}

var errTooManyRequests = &TooManyRequestsError{}

// PodNotFoundError is returned when the pod is already gone.
type PodNotFoundError struct{}

func (e *PodNotFoundError) Error() string {
	return "pod not found"
}

func (e *PodNotFoundError) IsNotFound() {}

var errPodNotFound = &PodNotFoundError{}

// ErrCacheSync is returned when the pod informer cache could not be synced.
var ErrCacheSync = errors.New("pod cache did not sync")
