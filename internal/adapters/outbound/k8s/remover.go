package k8s

import (
	"context"
	"fmt"
	"log/slog"

	policy "k8s.io/api/policy/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/utils/ptr"

	"github.com/skillcoder/cni-repair-controller/internal/logic/repair"
)

const (
	evictionKind       = "Eviction"
	evictionAPIVersion = "policy/v1"
)

type deleter struct {
	logger    *slog.Logger
	clientset kubernetes.Interface
}

// NewDeleter creates a remover that deletes pods with a zero grace period.
func NewDeleter(logger *slog.Logger, clientset kubernetes.Interface) repair.PodRemover {
	return &deleter{
		logger:    logger,
		clientset: clientset,
	}
}

var _ repair.PodRemover = (*deleter)(nil)

func (d *deleter) RemovePodCommand(
	ctx context.Context,
	namespace,
	name string,
) error {
	err := d.clientset.CoreV1().Pods(namespace).Delete(
		ctx,
		name,
		metav1.DeleteOptions{
			GracePeriodSeconds: ptr.To[int64](0),
		},
	)
	if err != nil {
		return fmt.Errorf("delete pod: %w", mapError(err))
	}

	d.logger.DebugContext(ctx, "pod deleted", "namespace", namespace, "pod", name)

	return nil
}

type evicter struct {
	logger    *slog.Logger
	clientset kubernetes.Interface
}

// NewEvicter creates a remover that evicts pods through the eviction API.
func NewEvicter(logger *slog.Logger, clientset kubernetes.Interface) repair.PodRemover {
	return &evicter{
		logger:    logger,
		clientset: clientset,
	}
}

var _ repair.PodRemover = (*evicter)(nil)

func (e *evicter) RemovePodCommand(
	ctx context.Context,
	namespace,
	name string,
) error {
	eviction := &policy.Eviction{
		TypeMeta: metav1.TypeMeta{
			APIVersion: evictionAPIVersion,
			Kind:       evictionKind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}

	err := e.clientset.PolicyV1().Evictions(eviction.Namespace).Evict(ctx, eviction)
	if err != nil {
		return fmt.Errorf("evict pod: %w", mapError(err))
	}

	e.logger.DebugContext(ctx, "pod evicted", "namespace", namespace, "pod", name)

	return nil
}

// NewRemover returns the remover for the configured mode.
func NewRemover(logger *slog.Logger, clientset kubernetes.Interface, mode repair.Mode) repair.PodRemover {
	if mode == repair.ModeEvict {
		return NewEvicter(logger, clientset)
	}

	return NewDeleter(logger, clientset)
}

func mapError(err error) error {
	switch {
	case apierrors.IsNotFound(err):
		return fmt.Errorf("%w: %w", errPodNotFound, err)
	case apierrors.IsTooManyRequests(err):
		return fmt.Errorf("%w: %w", errTooManyRequests, err)
	}

	return err
}
