package repair

import "slices"

// HasFailedValidator reports whether the validator init container's last run
// terminated with UnsuccessfulExitCode. The current state is ignored since the
// container may already be restarting when the pod is observed.
func HasFailedValidator(pod PodObservation) bool {
	for _, status := range pod.InitContainerStatuses {
		if status.Name != ValidatorContainerName {
			continue
		}

		return status.LastTerminatedExitCode != nil &&
			*status.LastTerminatedExitCode == UnsuccessfulExitCode
	}

	return false
}

// IsBeingRemediated reports whether the pod is already being deleted or evicted.
func IsBeingRemediated(pod PodObservation) bool {
	return pod.Deleting || slices.Contains(pod.ConditionReasons, EvictedConditionReason)
}
