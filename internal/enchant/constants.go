package enchant

import "time"

const (
	DefaultCacheSize  = 1024
	DefaultSessionTTL = 2 * time.Hour
)

// Log messages
const (
	LogMsgProfilesLoaded = "enchant profiles loaded"
	LogMsgSessionCreated = "enchant session created"
	LogMsgSeekStarted    = "enchant combo seek started"
	LogMsgSeekFinished   = "enchant combo seek finished"
)

// Log fields
const (
	LogFieldProfileID = "profile_id"
	LogFieldSessionID = "session_id"
	LogFieldCount     = "count"
	LogFieldTargets   = "targets"
	LogFieldFound     = "found"
	LogFieldAttempts  = "attempts"
	LogFieldCancelled = "cancelled"
)
