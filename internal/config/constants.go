package config

const (
	// Configuration file paths
	ConfigPathGachaPools      = "configs/gacha_pools.yaml"
	ConfigPathEnchantProfiles = "configs/enchant_profiles.yaml"
)

// Defaults
const (
	DefaultPort             = 8080
	DefaultServiceName      = "ro-data"
	DefaultSessionCacheSize = 1024
	DefaultGachaUnitCost    = 49.0
	DefaultSeekChunkSize    = 100
	DefaultSeekHardCap      = 200000
	DefaultDBMaxConns       = 10
)

// Example values shipped in .env.example that must not reach production
const (
	ExamplePasswordValue = "change_this_secure_password"
	ExampleAPIKeyValue   = "generate_with_openssl_rand_hex_32"
)
