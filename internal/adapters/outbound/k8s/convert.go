package k8s

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/equality"
	"k8s.io/apimachinery/pkg/types"

	"github.com/skillcoder/cni-repair-controller/internal/logic/repair"
)

const (
	podKind       = "Pod"
	podAPIVersion = "v1"
)

func toDomainPod(pod *corev1.Pod) repair.PodObservation {
	out := repair.PodObservation{
		Namespace:       pod.Namespace,
		Name:            pod.Name,
		UID:             string(pod.UID),
		ResourceVersion: pod.ResourceVersion,
		HasStatus:       !equality.Semantic.DeepEqual(pod.Status, corev1.PodStatus{}),
		Deleting:        pod.DeletionTimestamp != nil,
	}

	if len(pod.Status.InitContainerStatuses) > 0 {
		out.InitContainerStatuses = make([]repair.ContainerStatus, 0, len(pod.Status.InitContainerStatuses))
	}

	for i := range pod.Status.InitContainerStatuses {
		status := &pod.Status.InitContainerStatuses[i]

		cs := repair.ContainerStatus{Name: status.Name}
		if terminated := status.LastTerminationState.Terminated; terminated != nil {
			exitCode := terminated.ExitCode
			cs.LastTerminatedExitCode = &exitCode
		}

		out.InitContainerStatuses = append(out.InitContainerStatuses, cs)
	}

	for i := range pod.Status.Conditions {
		if reason := pod.Status.Conditions[i].Reason; reason != "" {
			out.ConditionReasons = append(out.ConditionReasons, reason)
		}
	}

	return out
}

func toObjectReference(target repair.RemediationTarget) corev1.ObjectReference {
	return corev1.ObjectReference{
		Kind:            podKind,
		APIVersion:      podAPIVersion,
		Namespace:       target.Namespace,
		Name:            target.Name,
		UID:             types.UID(target.UID),
		ResourceVersion: target.ResourceVersion,
	}
}
