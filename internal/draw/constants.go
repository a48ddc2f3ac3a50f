package draw

// Normalization
const (
	FixedPercentTotal       = 100.0
	DefaultDeviationEpsilon = 0.01
)

// Seeking limits
const (
	DefaultMaxAttempts      = 5000
	DefaultComboMaxAttempts = 200000
	DefaultChunkSize        = 100
)

// Wildcard matches any outcome in a combo target list
const Wildcard = "*"

// Log messages
const (
	LogMsgWeightDeviation = "weighted set total deviates from expected normalization"
	LogMsgSeekCancelled   = "seek cancelled between chunks"
)

// Log fields
const (
	LogFieldSetID    = "set_id"
	LogFieldTotal    = "total_weight"
	LogFieldExpected = "expected_weight"
	LogFieldAttempts = "attempts"
)
