package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// latencyBuckets are the client_golang default buckets, 5ms to 10s.
var latencyBuckets = prometheus.DefBuckets

// Metrics holds the remediation pipeline counters. It is created once per process
// and shared by the enqueuer and the worker.
type Metrics struct {
	QueueOverflow        prometheus.Counter
	PodsRemoved          prometheus.Counter
	RemoveLatency        prometheus.Histogram
	RemoveErrors         prometheus.Counter
	RemoveTimeouts       prometheus.Counter
	EventsPublishLatency prometheus.Histogram
	EventsPublishErrors  prometheus.Counter
	EventsPublishTimeout prometheus.Counter
}

// New registers the pipeline metrics on reg under the given namespace
// (e.g. linkerd_cni_repair_controller).
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		QueueOverflow: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_overflow_total",
			Help:      "Incremented whenever the event processing queue overflows.",
		}),
		PodsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pods_deleted_total",
			Help:      "Number of pods deleted or evicted by the controller.",
		}),
		RemoveLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pods_delete_latency_seconds",
			Help:      "Pod deletion latency distribution.",
			Buckets:   latencyBuckets,
		}),
		RemoveErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pods_delete_errors_total",
			Help:      "Incremented whenever the pod deletion call errors out.",
		}),
		RemoveTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pods_delete_timeout_total",
			Help:      "Incremented whenever the pod deletion call times out.",
		}),
		EventsPublishLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "events_publish_latency_seconds",
			Help:      "Events publish latency distribution.",
			Buckets:   latencyBuckets,
		}),
		EventsPublishErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_publish_errors_total",
			Help:      "Incremented whenever the event publishing call errors out.",
		}),
		EventsPublishTimeout: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_publish_timeouts_total",
			Help:      "Incremented whenever the event publishing call times out.",
		}),
	}
}

func (m *Metrics) IncQueueOverflow() {
	m.QueueOverflow.Inc()
}

func (m *Metrics) IncPodsRemoved() {
	m.PodsRemoved.Inc()
}

func (m *Metrics) IncRemoveErrors() {
	m.RemoveErrors.Inc()
}

func (m *Metrics) IncRemoveTimeouts() {
	m.RemoveTimeouts.Inc()
}

func (m *Metrics) ObserveRemoveLatency(d time.Duration) {
	m.RemoveLatency.Observe(d.Seconds())
}

func (m *Metrics) IncPublishErrors() {
	m.EventsPublishErrors.Inc()
}

func (m *Metrics) IncPublishTimeouts() {
	m.EventsPublishTimeout.Inc()
}

func (m *Metrics) ObservePublishLatency(d time.Duration) {
	m.EventsPublishLatency.Observe(d.Seconds())
}
