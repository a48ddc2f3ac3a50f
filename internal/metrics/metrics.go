package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Simulation Metrics
var (
	DrawsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDrawsTotal,
			Help: HelpTextDrawsTotal,
		},
		[]string{LabelSimulator},
	)

	SeeksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSeeksTotal,
			Help: HelpTextSeeksTotal,
		},
		[]string{LabelSimulator, LabelResult},
	)

	SeekAttempts = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSeekAttempts,
			Help:    HelpTextSeekAttempts,
			Buckets: SeekAttemptBuckets,
		},
		[]string{LabelSimulator},
	)

	ActiveSessions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
		[]string{LabelSimulator},
	)

	SessionsEvicted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsEvicted,
			Help: HelpTextSessionsEvicted,
		},
		[]string{LabelSimulator},
	)

	WeightDeviations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWeightDeviations,
			Help: HelpTextWeightDeviations,
		},
		[]string{LabelSimulator},
	)
)

// Tracker Metrics
var (
	RecordsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecordsSaved,
			Help: HelpTextRecordsSaved,
		},
	)

	RecordsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecordsDeleted,
			Help: HelpTextRecordsDeleted,
		},
	)

	ExpLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExpLookups,
			Help: HelpTextExpLookups,
		},
		[]string{LabelOperation},
	)
)

// ObserveSeek records the outcome of one seeking loop
func ObserveSeek(simulator string, found, cancelled bool, attempts int) {
	result := ResultExhausted
	switch {
	case found:
		result = ResultFound
	case cancelled:
		result = ResultCancelled
	}
	SeeksTotal.WithLabelValues(simulator, result).Inc()
	SeekAttempts.WithLabelValues(simulator).Observe(float64(attempts))
}
