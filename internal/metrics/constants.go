package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Sync metric names
const (
	MetricNameSyncEntriesDelivered = "sync_entries_delivered_total"
	MetricNameSyncEntriesFailed    = "sync_entries_failed_total"
	MetricNameSyncEntriesSkipped   = "sync_entries_skipped_total"
	MetricNameSyncConflicts        = "sync_conflicts_total"
	MetricNameSyncOnline           = "sync_online"
)

// Alert metric names
const (
	MetricNameAlertsRaised = "alerts_raised_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Sync metric help text
const (
	HelpTextSyncEntriesDelivered = "Total queue entries acknowledged by the authority"
	HelpTextSyncEntriesFailed    = "Total failed delivery attempts"
	HelpTextSyncEntriesSkipped   = "Total entries skipped by the backoff gate"
	HelpTextSyncConflicts        = "Total records flagged conflict"
	HelpTextSyncOnline           = "1 when the sync engine believes it is online"
)

// Alert metric help text
const (
	HelpTextAlertsRaised = "Total alerts raised, by type and priority"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelPriority = "priority"
	LabelTable    = "table"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request
// duration in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Debug log messages
const (
	LogMsgEventPayloadDecode = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded    = "Metrics recorded for event"
)
