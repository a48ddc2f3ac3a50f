package tracker

// Manual book tiers offered in game (percent bonus)
var ManualBookTiers = []float64{0, 50, 100, 200}

const (
	// DoubleRateFactor applies when the double-rate event flag is set
	DoubleRateFactor = 2.0
	// climbTolerance absorbs float drift when a total lands exactly on a level boundary
	climbTolerance = 1e-9
	// DefaultListLimit caps history listings when the caller sets no limit
	DefaultListLimit = 100
	// MaxListLimit is the largest page a caller may request
	MaxListLimit = 1000
)

// Log messages
const (
	LogMsgRecordSaved   = "tracking record saved"
	LogMsgRecordDeleted = "tracking record deleted"
)

// Log fields
const (
	LogFieldRecordID = "record_id"
	LogFieldMap      = "map"
	LogFieldGained   = "exp_gained"
	LogFieldPerHour  = "exp_per_hour"
)
