package repair

// PodObservation is a snapshot of a pod taken from a single watch event.
type PodObservation struct {
	Namespace       string
	Name            string
	UID             string
	ResourceVersion string
	// HasStatus is false when the pod carried no status block at all.
	HasStatus             bool
	Deleting              bool
	InitContainerStatuses []ContainerStatus
	ConditionReasons      []string
}

// ContainerStatus is the part of an init container status the controller looks at.
type ContainerStatus struct {
	Name string
	// LastTerminatedExitCode is nil unless the previous run of the container terminated.
	LastTerminatedExitCode *int32
}

// RemediationTarget references a pod scheduled for removal. It carries enough
// metadata to attach an event to the pod after it is gone.
type RemediationTarget struct {
	Namespace       string
	Name            string
	UID             string
	ResourceVersion string
}

// TargetFor builds the remediation target of an observed pod.
func TargetFor(pod PodObservation) RemediationTarget {
	return RemediationTarget{
		Namespace:       pod.Namespace,
		Name:            pod.Name,
		UID:             pod.UID,
		ResourceVersion: pod.ResourceVersion,
	}
}

// Event is a Kubernetes event describing a remediation.
type Event struct {
	Action              string
	Reason              string
	Note                string
	ReportingController string
	ReportingInstance   string
}
