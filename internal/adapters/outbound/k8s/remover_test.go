package k8s_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/skillcoder/cni-repair-controller/internal/adapters/outbound/k8s"
	"github.com/skillcoder/cni-repair-controller/internal/logic/repair"
)

var podsResource = schema.GroupVersionResource{Group: "", Version: "v1", Resource: "pods"}

func newPod(name string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: "default",
			Labels:    map[string]string{repair.DataPlaneLabel: "linkerd"},
		},
		Spec: corev1.PodSpec{NodeName: "node-1"},
	}
}

func newFakeClientWithEvictionReactor(objects ...runtime.Object) *fake.Clientset {
	client := fake.NewSimpleClientset(objects...)
	client.PrependReactor("create", "pods", func(action k8stesting.Action) (bool, runtime.Object, error) {
		createAction, ok := action.(k8stesting.CreateAction)
		if !ok || createAction.GetSubresource() != "eviction" {
			return false, nil, nil
		}

		ev, ok := createAction.GetObject().(*policyv1.Eviction)
		if !ok {
			return true, nil, errors.New("unexpected eviction body")
		}

		err := client.Tracker().Delete(podsResource, ev.Namespace, ev.Name)

		return true, ev, err
	})

	return client
}

func TestDeleter_RemovePodCommand(t *testing.T) {
	t.Parallel()

	t.Run("deletes pod with zero grace period", func(t *testing.T) {
		t.Parallel()

		client := fake.NewSimpleClientset(newPod("pod1"))

		var gotGrace *int64

		client.PrependReactor("delete", "pods", func(action k8stesting.Action) (bool, runtime.Object, error) {
			deleteAction, ok := action.(k8stesting.DeleteAction)
			if ok {
				gotGrace = deleteAction.GetDeleteOptions().GracePeriodSeconds
			}

			return false, nil, nil
		})

		remover := k8s.NewRemover(slog.Default(), client, repair.ModeDelete)

		require.NoError(t, remover.RemovePodCommand(t.Context(), "default", "pod1"))
		require.NotNil(t, gotGrace)
		require.Equal(t, int64(0), *gotGrace)

		_, err := client.CoreV1().Pods("default").Get(t.Context(), "pod1", metav1.GetOptions{})
		require.True(t, apierrors.IsNotFound(err))
	})

	t.Run("missing pod maps to not found", func(t *testing.T) {
		t.Parallel()

		remover := k8s.NewDeleter(slog.Default(), fake.NewSimpleClientset())

		err := remover.RemovePodCommand(t.Context(), "default", "gone")
		require.Error(t, err)

		var target *k8s.PodNotFoundError
		require.ErrorAs(t, err, &target)
	})
}

func TestEvicter_RemovePodCommand(t *testing.T) {
	t.Parallel()

	t.Run("evicts pod", func(t *testing.T) {
		t.Parallel()

		client := newFakeClientWithEvictionReactor(newPod("pod1"))
		remover := k8s.NewRemover(slog.Default(), client, repair.ModeEvict)

		require.NoError(t, remover.RemovePodCommand(t.Context(), "default", "pod1"))

		_, err := client.CoreV1().Pods("default").Get(t.Context(), "pod1", metav1.GetOptions{})
		require.True(t, apierrors.IsNotFound(err))
	})

	t.Run("disruption budget maps to too many requests", func(t *testing.T) {
		t.Parallel()

		client := fake.NewSimpleClientset(newPod("pod1"))
		client.PrependReactor("create", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
			return true, nil, apierrors.NewTooManyRequests("disruption budget", 10)
		})

		remover := k8s.NewEvicter(slog.Default(), client)

		err := remover.RemovePodCommand(t.Context(), "default", "pod1")

		var target *k8s.TooManyRequestsError
		require.ErrorAs(t, err, &target)
	})

	t.Run("cancelled context is propagated", func(t *testing.T) {
		t.Parallel()

		client := fake.NewSimpleClientset(newPod("pod1"))
		client.PrependReactor("create", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
			return true, nil, context.Canceled
		})

		remover := k8s.NewEvicter(slog.Default(), client)

		err := remover.RemovePodCommand(t.Context(), "default", "pod1")
		require.ErrorIs(t, err, context.Canceled)
	})
}
