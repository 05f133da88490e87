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

// Sync Metrics
var (
	SyncEntriesDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSyncEntriesDelivered,
			Help: HelpTextSyncEntriesDelivered,
		},
	)

	SyncEntriesFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSyncEntriesFailed,
			Help: HelpTextSyncEntriesFailed,
		},
	)

	SyncEntriesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSyncEntriesSkipped,
			Help: HelpTextSyncEntriesSkipped,
		},
	)

	SyncConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncConflicts,
			Help: HelpTextSyncConflicts,
		},
		[]string{LabelTable},
	)

	SyncOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSyncOnline,
			Help: HelpTextSyncOnline,
		},
	)
)

// Alert Metrics
var (
	AlertsRaised = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAlertsRaised,
			Help: HelpTextAlertsRaised,
		},
		[]string{LabelType, LabelPriority},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)
