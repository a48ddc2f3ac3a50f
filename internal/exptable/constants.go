package exptable

// Log messages
const (
	LogMsgTableLoaded = "experience table loaded"
	LogMsgTableGap    = "experience table has missing levels"
)

// Log fields
const (
	LogFieldCategory = "category"
	LogFieldMissing  = "missing_levels"
	LogFieldSource   = "source"
)

// Error contexts
const (
	ErrContextInvalidEntry = "invalid experience table entry"
	ErrContextGaps         = "experience table is not contiguous"
)

// Source label for the compiled-in table
const SourceEmbedded = "embedded"
