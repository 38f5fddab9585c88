package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/cni-repair-controller/internal/infra/metrics"
)

func TestNew_RegistersAllMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "linkerd_cni_repair_controller")

	m.IncQueueOverflow()
	m.IncPodsRemoved()
	m.IncRemoveErrors()
	m.IncRemoveTimeouts()
	m.IncPublishErrors()
	m.IncPublishTimeouts()
	m.ObserveRemoveLatency(20 * time.Millisecond)
	m.ObservePublishLatency(30 * time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}

	require.ElementsMatch(t, []string{
		"linkerd_cni_repair_controller_queue_overflow_total",
		"linkerd_cni_repair_controller_pods_deleted_total",
		"linkerd_cni_repair_controller_pods_delete_latency_seconds",
		"linkerd_cni_repair_controller_pods_delete_errors_total",
		"linkerd_cni_repair_controller_pods_delete_timeout_total",
		"linkerd_cni_repair_controller_events_publish_latency_seconds",
		"linkerd_cni_repair_controller_events_publish_errors_total",
		"linkerd_cni_repair_controller_events_publish_timeouts_total",
	}, names)
}

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := metrics.New(prometheus.NewRegistry(), "test")

	for range 3 {
		m.IncQueueOverflow()
	}

	m.IncPodsRemoved()

	require.InDelta(t, 3.0, testutil.ToFloat64(m.QueueOverflow), 0)
	require.InDelta(t, 1.0, testutil.ToFloat64(m.PodsRemoved), 0)
	require.InDelta(t, 0.0, testutil.ToFloat64(m.RemoveErrors), 0)
}

func TestMetrics_Histograms(t *testing.T) {
	t.Parallel()

	m := metrics.New(prometheus.NewRegistry(), "test")

	m.ObserveRemoveLatency(250 * time.Millisecond)
	m.ObserveRemoveLatency(2 * time.Second)

	var out dto.Metric
	require.NoError(t, m.RemoveLatency.Write(&out))
	require.Equal(t, uint64(2), out.GetHistogram().GetSampleCount())
	require.InDelta(t, 2.25, out.GetHistogram().GetSampleSum(), 1e-9)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics.New(reg, "dup")

	require.Panics(t, func() {
		metrics.New(reg, "dup")
	})
}
