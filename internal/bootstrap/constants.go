package bootstrap

// Log messages for startup
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting ro-data"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgExpTableLoaded      = "Experience table loaded"
	LogMsgPoolsLoaded         = "Gacha pools loaded"
	LogMsgProfilesLoaded      = "Enchant profiles loaded"
	LogMsgSeededEngine        = "Draw engine seeded for reproducible runs"
	LogMsgRecordStoreReady    = "Record store ready"
)

// Log messages for shutdown
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgClosingRecordStore   = "Closing record store"
	LogMsgRecordStoreCloseErr  = "Record store close failed"
	LogMsgServerStopped        = "Server stopped"
)

// Error messages
const (
	ErrMsgOpenRecordStore = "failed to open record store"
	ErrMsgLoadExpTable    = "failed to load experience table"
	ErrMsgLoadPools       = "failed to load gacha pools"
	ErrMsgLoadProfiles    = "failed to load enchant profiles"
	ErrMsgSetupLogFile    = "failed to set up log file"
)
