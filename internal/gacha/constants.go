package gacha

import "time"

// Session defaults
const (
	DefaultUnitCost   = 49.0
	LogCapacity       = 50
	MaxSeekAttempts   = 50000
	DefaultCacheSize  = 1024
	DefaultSessionTTL = 2 * time.Hour
)

// Item categories inferred from row names
const (
	CategoryCard       = "Card/Item"
	CategoryMaterial   = "Material"
	CategoryEquipment  = "Equipment"
	CategoryConsumable = "Consumable"
)

// Log messages
const (
	LogMsgPoolsLoaded     = "gacha pools loaded"
	LogMsgPoolRegistered  = "gacha pool registered"
	LogMsgSessionCreated  = "gacha session created"
	LogMsgPullCompleted   = "gacha pull completed"
	LogMsgSeekStarted     = "gacha seek started"
	LogMsgSeekFinished    = "gacha seek finished"
	LogMsgRowSkipped      = "skipping pool row without name or rate"
	LogMsgSessionNotFound = "gacha session not found"
)

// Log fields
const (
	LogFieldPoolID    = "pool_id"
	LogFieldSessionID = "session_id"
	LogFieldCount     = "count"
	LogFieldTarget    = "target"
	LogFieldFound     = "found"
	LogFieldAttempts  = "attempts"
	LogFieldCancelled = "cancelled"
	LogFieldRow       = "row"
)
