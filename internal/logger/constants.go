package logger

// Log Level String Values
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Log Format String Values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Service Configuration Values
const (
	DefaultServiceName = "ro-data"
	DefaultVersion     = "dev"
)

// Environment names that select the production preset
const (
	EnvProduction = "production"
	EnvProd       = "prod"
)

// Log Attribute Keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)

// Rotation defaults for the file sink
const (
	DefaultLogFileName = "ro-data.log"
	DefaultMaxSizeMB   = 50
	DefaultMaxBackups  = 9
	DefaultMaxAgeDays  = 28
)
