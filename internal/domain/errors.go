package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Weighted set errors
	ErrMsgEmptySet         = "weighted set has no outcomes"
	ErrMsgZeroWeight       = "weighted set total weight must be positive"
	ErrMsgNegativeWeight   = "outcome weight must not be negative"
	ErrMsgDuplicateOutcome = "duplicate outcome id"

	// Seeking errors
	ErrMsgAllWildcard    = "at least one concrete target is required"
	ErrMsgTargetMismatch = "target count does not match slot count"
	ErrMsgUnknownTarget  = "target is not an outcome of the set"
	ErrMsgSeekInProgress = "a seek is already running for this session"
	ErrMsgMissingTarget  = "a target outcome is required"

	// Lookup errors
	ErrMsgUnknownCategory = "unknown character category"
	ErrMsgPoolNotFound    = "gacha pool not found"
	ErrMsgSessionNotFound = "session not found"
	ErrMsgProfileNotFound = "enchant profile not found"
	ErrMsgSlotNotFound    = "enchant slot not found"
	ErrMsgRecordNotFound  = "tracking record not found"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrEmptySet         = errors.New(ErrMsgEmptySet)
	ErrZeroWeight       = errors.New(ErrMsgZeroWeight)
	ErrNegativeWeight   = errors.New(ErrMsgNegativeWeight)
	ErrDuplicateOutcome = errors.New(ErrMsgDuplicateOutcome)

	ErrAllWildcard    = errors.New(ErrMsgAllWildcard)
	ErrTargetMismatch = errors.New(ErrMsgTargetMismatch)
	ErrUnknownTarget  = errors.New(ErrMsgUnknownTarget)
	ErrSeekInProgress = errors.New(ErrMsgSeekInProgress)
	ErrMissingTarget  = errors.New(ErrMsgMissingTarget)

	ErrUnknownCategory = errors.New(ErrMsgUnknownCategory)
	ErrPoolNotFound    = errors.New(ErrMsgPoolNotFound)
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)
	ErrSlotNotFound    = errors.New(ErrMsgSlotNotFound)
	ErrRecordNotFound  = errors.New(ErrMsgRecordNotFound)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
)
