package k8s

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/informers"
	"k8s.io/client-go/kubernetes"
	listersv1 "k8s.io/client-go/listers/core/v1"
	"k8s.io/client-go/tools/cache"

	"github.com/skillcoder/cni-repair-controller/internal/logic/repair"
)

// PodWatcher streams observations of the data plane pods scheduled on one node.
// Relisting and reconnection are handled by the underlying informer.
type PodWatcher struct {
	logger    *slog.Logger
	clientset kubernetes.Interface
	nodeName  string
	resync    <-chan struct{}
	ready     chan struct{}
	doneCh    chan struct{}
	observed  atomic.Uint64
}

// NewPodWatcher creates a watcher scoped to nodeName. Every value received on
// resync re-emits all cached pods; a nil channel disables resync.
func NewPodWatcher(
	logger *slog.Logger,
	clientset kubernetes.Interface,
	nodeName string,
	resync <-chan struct{},
) *PodWatcher {
	return &PodWatcher{
		logger:    logger.With("component", "pod-watcher", "node", nodeName),
		clientset: clientset,
		nodeName:  nodeName,
		resync:    resync,
		ready:     make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Name returns the name of the watcher component
func (w *PodWatcher) Name() string {
	return "pod-watcher"
}

// Ready returns a channel that is closed once the pod cache is synced.
func (w *PodWatcher) Ready() <-chan struct{} {
	return w.ready
}

// Ping reports whether the watch is established and still running.
func (w *PodWatcher) Ping(ctx context.Context) error {
	select {
	case <-w.doneCh:
		return fmt.Errorf("pod watch stream ended")
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.ready:
		return nil
	default:
		return fmt.Errorf("pod watcher is not synced")
	}
}

// Observed returns the number of observations emitted so far. It is never
// behind what a receiver of the stream has already taken.
func (w *PodWatcher) Observed() uint64 {
	return w.observed.Load()
}

// Selectors returns the label and field selectors of the watch.
func (w *PodWatcher) Selectors() (string, string) {
	return repair.DataPlaneLabel, fields.OneTermEqualSelector("spec.nodeName", w.nodeName).String()
}

// Watch starts the informer and returns the stream of observations. Added and
// updated pods are emitted, deletions are ignored. The returned channel is
// closed once ctx is done and the informer stopped.
func (w *PodWatcher) Watch(ctx context.Context) (<-chan repair.PodObservation, error) {
	labelSelector, fieldSelector := w.Selectors()

	factory := informers.NewSharedInformerFactoryWithOptions(
		w.clientset,
		0,
		informers.WithTweakListOptions(func(opts *metav1.ListOptions) {
			opts.LabelSelector = labelSelector
			opts.FieldSelector = fieldSelector
		}),
	)

	podInformer := factory.Core().V1().Pods()
	out := make(chan repair.PodObservation)

	_, err := podInformer.Informer().AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc: func(obj any) {
			w.emit(ctx, out, obj)
		},
		UpdateFunc: func(_, obj any) {
			w.emit(ctx, out, obj)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("add pod event handler: %w", err)
	}

	w.logger.InfoContext(ctx, "starting pod watch",
		"labelSelector", labelSelector,
		"fieldSelector", fieldSelector,
	)

	factory.Start(ctx.Done())

	if !cache.WaitForCacheSync(ctx.Done(), podInformer.Informer().HasSynced) {
		factory.Shutdown()

		return nil, fmt.Errorf("watch pods: %w", ErrCacheSync)
	}

	close(w.ready)

	go w.run(ctx, factory, podInformer.Lister(), out)

	return out, nil
}

func (w *PodWatcher) run(
	ctx context.Context,
	factory informers.SharedInformerFactory,
	lister listersv1.PodLister,
	out chan<- repair.PodObservation,
) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			// handlers are guaranteed to have returned once the factory is shut down
			factory.Shutdown()
			close(out)
			w.logger.InfoContext(ctx, "terminating pod watch")

			return
		case <-w.resync:
			w.resyncPods(ctx, lister, out)
		}
	}
}

func (w *PodWatcher) resyncPods(
	ctx context.Context,
	lister listersv1.PodLister,
	out chan<- repair.PodObservation,
) {
	pods, err := lister.List(labels.Everything())
	if err != nil {
		w.logger.ErrorContext(ctx, "list cached pods", "reason", err)

		return
	}

	w.logger.DebugContext(ctx, "resyncing pods", "count", len(pods))

	for _, pod := range pods {
		if !w.send(ctx, out, toDomainPod(pod)) {
			return
		}
	}
}

func (w *PodWatcher) emit(ctx context.Context, out chan<- repair.PodObservation, obj any) {
	pod, ok := obj.(*corev1.Pod)
	if !ok {
		w.logger.WarnContext(ctx, "unexpected object in pod watch", "type", fmt.Sprintf("%T", obj))

		return
	}

	w.send(ctx, out, toDomainPod(pod))
}

func (w *PodWatcher) send(ctx context.Context, out chan<- repair.PodObservation, pod repair.PodObservation) bool {
	// counted before the handoff so a receiver always sees its own observation
	w.observed.Add(1)

	select {
	case <-ctx.Done():
		w.observed.Add(^uint64(0))

		return false
	case out <- pod:
		return true
	}
}
