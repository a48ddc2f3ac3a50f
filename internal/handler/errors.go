package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgUnauthorized          = "Unauthorized"

	// Parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"
	ErrMsgInvalidSlotID     = "Invalid slot id"

	// Operation error messages
	ErrMsgGetPoolFailed       = "Failed to get pool"
	ErrMsgRegisterPoolFailed  = "Failed to register pool"
	ErrMsgCreateSessionFailed = "Failed to create session"
	ErrMsgGetSessionFailed    = "Failed to get session"
	ErrMsgResetSessionFailed  = "Failed to reset session"
	ErrMsgPullFailed          = "Failed to pull"
	ErrMsgSeekFailed          = "Failed to run seek"
	ErrMsgEnchantFailed       = "Failed to enchant"
	ErrMsgExpLookupFailed     = "Failed to compute experience"
	ErrMsgSaveRecordFailed    = "Failed to save record"
	ErrMsgListRecordsFailed   = "Failed to list records"
	ErrMsgDeleteRecordFailed  = "Failed to delete record"
)

// Success messages for API responses
const (
	MsgRecordDeleted = "Record deleted"
)
