package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	ordersCollected *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	snapshotSize    prometheus.Gauge
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ordersCollected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcdata_orders_collected_total",
				Help: "Total orders collected from the upstream feed",
			},
			[]string{"result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcdata_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		snapshotSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "mcdata_snapshot_orders",
				Help: "Number of orders in the current snapshot",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcdata_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordOrdersCollected records collected/rejected order counts.
func (r *Recorder) RecordOrdersCollected(result string, n int) {
	r.ordersCollected.WithLabelValues(result).Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSnapshotSize records the size of the latest snapshot.
func (r *Recorder) RecordSnapshotSize(n int) {
	r.snapshotSize.Set(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
