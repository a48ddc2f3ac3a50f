package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Simulation metric names
const (
	MetricNameDrawsTotal       = "draws_total"
	MetricNameSeeksTotal       = "seeks_total"
	MetricNameSeekAttempts     = "seek_attempts"
	MetricNameActiveSessions   = "active_sessions"
	MetricNameSessionsEvicted  = "sessions_evicted_total"
	MetricNameWeightDeviations = "weight_deviations_total"
)

// Tracker metric names
const (
	MetricNameRecordsSaved   = "tracking_records_saved_total"
	MetricNameRecordsDeleted = "tracking_records_deleted_total"
	MetricNameExpLookups     = "exp_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Simulation metric help text
const (
	HelpTextDrawsTotal       = "Total number of weighted draws performed"
	HelpTextSeeksTotal       = "Total number of seeking loops by outcome"
	HelpTextSeekAttempts     = "Attempts spent per seeking loop"
	HelpTextActiveSessions   = "Current number of simulator sessions held in memory"
	HelpTextSessionsEvicted  = "Total number of simulator sessions evicted from the cache"
	HelpTextWeightDeviations = "Weighted sets registered with a total off the expected normalization"
)

// Tracker metric help text
const (
	HelpTextRecordsSaved   = "Total number of tracking records saved"
	HelpTextRecordsDeleted = "Total number of tracking records deleted"
	HelpTextExpLookups     = "Experience computations by operation"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelSimulator = "simulator"
	LabelResult    = "result"
	LabelOperation = "operation"
)

// Label values
const (
	SimulatorGacha   = "gacha"
	SimulatorEnchant = "enchant"

	ResultFound     = "found"
	ResultExhausted = "exhausted"
	ResultCancelled = "cancelled"

	OperationAccumulated = "accumulated"
	OperationDifference  = "difference"
	OperationResolve     = "resolve"
	OperationProjection  = "projection"
)

// ============================================================================
// Buckets
// ============================================================================

var (
	HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	SeekAttemptBuckets = []float64{1, 10, 100, 1000, 5000, 20000, 50000, 200000}
)
