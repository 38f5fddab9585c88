package k8s

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	corev1 "k8s.io/api/core/v1"
	eventsv1 "k8s.io/api/events/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/skillcoder/cni-repair-controller/internal/logic/repair"
)

type eventPublisher struct {
	logger    *slog.Logger
	clientset kubernetes.Interface
	now       func() time.Time
}

// NewEventPublisher creates a publisher writing events.k8s.io/v1 events.
func NewEventPublisher(logger *slog.Logger, clientset kubernetes.Interface) repair.EventPublisher {
	return &eventPublisher{
		logger:    logger,
		clientset: clientset,
		now:       time.Now,
	}
}

var _ repair.EventPublisher = (*eventPublisher)(nil)

func (p *eventPublisher) PublishEventCommand(
	ctx context.Context,
	target repair.RemediationTarget,
	event repair.Event,
) error {
	now := p.now()

	ev := &eventsv1.Event{
		ObjectMeta: metav1.ObjectMeta{
			Name:      fmt.Sprintf("%s.%x", target.Name, now.UnixNano()),
			Namespace: target.Namespace,
		},
		EventTime:           metav1.NewMicroTime(now),
		ReportingController: event.ReportingController,
		ReportingInstance:   event.ReportingInstance,
		Action:              event.Action,
		Reason:              event.Reason,
		Note:                event.Note,
		Type:                corev1.EventTypeNormal,
		Regarding:           toObjectReference(target),
	}

	_, err := p.clientset.EventsV1().Events(target.Namespace).Create(ctx, ev, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	p.logger.DebugContext(ctx, "event published",
		"namespace", target.Namespace,
		"pod", target.Name,
		"event", ev.Name,
	)

	return nil
}
