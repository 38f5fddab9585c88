package k8s_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/skillcoder/cni-repair-controller/internal/adapters/outbound/k8s"
	"github.com/skillcoder/cni-repair-controller/internal/logic/repair"
)

func TestEventPublisher_PublishEventCommand(t *testing.T) {
	t.Parallel()

	client := fake.NewSimpleClientset()
	publisher := k8s.NewEventPublisher(slog.Default(), client)

	target := repair.RemediationTarget{Namespace: "default", Name: "pod2", UID: "uid-2"}
	event := repair.Event{
		Action:              repair.ModeDelete.Action(),
		Reason:              repair.EventReason,
		Note:                repair.ModeDelete.Note(),
		ReportingController: repair.ModeDelete.ReportingController(),
		ReportingInstance:   "controller-pod-0",
	}

	require.NoError(t, publisher.PublishEventCommand(t.Context(), target, event))

	events, err := client.EventsV1().Events("default").List(t.Context(), metav1.ListOptions{})
	require.NoError(t, err)
	require.Len(t, events.Items, 1)

	got := events.Items[0]
	require.Equal(t, "Deleting", got.Action)
	require.Equal(t, "LinkerdCNINotConfigured", got.Reason)
	require.Equal(t, corev1.EventTypeNormal, got.Type)
	require.Equal(t, "linkerd-cni-repair-controller", got.ReportingController)
	require.Equal(t, "controller-pod-0", got.ReportingInstance)
	require.Equal(t, "Pod", got.Regarding.Kind)
	require.Equal(t, "pod2", got.Regarding.Name)
	require.Equal(t, "uid-2", string(got.Regarding.UID))
	require.Contains(t, got.Name, "pod2.")
	require.False(t, got.EventTime.IsZero())
}
