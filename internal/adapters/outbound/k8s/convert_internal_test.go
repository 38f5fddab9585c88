package k8s

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/skillcoder/cni-repair-controller/internal/logic/repair"
)

func Test_toDomainPod(t *testing.T) {
	t.Parallel()

	t.Run("pod without status", func(t *testing.T) {
		t.Parallel()

		got := toDomainPod(&corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "pod1", Namespace: "default"},
		})

		require.False(t, got.HasStatus)
		require.False(t, got.Deleting)
		require.Empty(t, got.InitContainerStatuses)
	})

	t.Run("failed validator and eviction condition", func(t *testing.T) {
		t.Parallel()

		now := metav1.NewTime(time.Now())

		got := toDomainPod(&corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{
				Name:              "pod2",
				Namespace:         "emojivoto",
				UID:               "uid-2",
				ResourceVersion:   "42",
				DeletionTimestamp: &now,
			},
			Status: corev1.PodStatus{
				Phase: corev1.PodPending,
				InitContainerStatuses: []corev1.ContainerStatus{
					{
						Name: "linkerd-init",
					},
					{
						Name: repair.ValidatorContainerName,
						LastTerminationState: corev1.ContainerState{
							Terminated: &corev1.ContainerStateTerminated{ExitCode: repair.UnsuccessfulExitCode},
						},
					},
				},
				Conditions: []corev1.PodCondition{
					{Type: corev1.PodReady},
					{Type: corev1.DisruptionTarget, Reason: repair.EvictedConditionReason},
				},
			},
		})

		require.True(t, got.HasStatus)
		require.True(t, got.Deleting)
		require.Equal(t, "uid-2", got.UID)
		require.Equal(t, "42", got.ResourceVersion)
		require.Len(t, got.InitContainerStatuses, 2)
		require.Nil(t, got.InitContainerStatuses[0].LastTerminatedExitCode)
		require.Equal(t, repair.UnsuccessfulExitCode, *got.InitContainerStatuses[1].LastTerminatedExitCode)
		require.Equal(t, []string{repair.EvictedConditionReason}, got.ConditionReasons)
		require.True(t, repair.HasFailedValidator(got))
		require.True(t, repair.IsBeingRemediated(got))
	})
}

func Test_toObjectReference(t *testing.T) {
	t.Parallel()

	ref := toObjectReference(repair.RemediationTarget{
		Namespace:       "default",
		Name:            "pod2",
		UID:             "uid-2",
		ResourceVersion: "7",
	})

	require.Equal(t, "Pod", ref.Kind)
	require.Equal(t, "v1", ref.APIVersion)
	require.Equal(t, "default", ref.Namespace)
	require.Equal(t, "pod2", ref.Name)
	require.Equal(t, "uid-2", string(ref.UID))
	require.Equal(t, "7", ref.ResourceVersion)
}
