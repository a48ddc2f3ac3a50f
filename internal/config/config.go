package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	LogToFile   bool
	ServiceName string
	Version     string
	Environment string
	APIKey      string // optional; when set, mutating routes require it

	TrustedProxies []string

	// Record store
	DBDriver      string // "postgres", "sqlite" or "memory"
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBMaxConns    int
	DBMaxConnIdle time.Duration
	DBMaxConnLife time.Duration
	SQLitePath    string

	// Data files
	GachaPoolsPath      string
	EnchantProfilesPath string
	ExpTablePath        string // empty uses the embedded table
	ExpTableStrict      bool

	// Simulator sessions
	SessionCacheSize int
	SessionTTL       time.Duration
	GachaUnitCost    float64
	SeekChunkSize    int
	SeekHardCap      int
	RandomSeed       int64 // 0 seeds from the runtime

	ShutdownTimeout time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvAsInt("PORT", DefaultPort),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogDir:      getEnv("LOG_DIR", "logs"),
		LogToFile:   getEnvAsBool("LOG_FILE_ENABLED", false),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "rodata"),
		DBMaxConns:    getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdle: getEnvAsDuration("DB_MAX_CONN_IDLE", 5*time.Minute),
		DBMaxConnLife: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		SQLitePath:    getEnv("SQLITE_PATH", "data/records.db"),

		GachaPoolsPath:      getEnv("GACHA_POOLS_PATH", ConfigPathGachaPools),
		EnchantProfilesPath: getEnv("ENCHANT_PROFILES_PATH", ConfigPathEnchantProfiles),
		ExpTablePath:        getEnv("EXP_TABLE_PATH", ""),
		ExpTableStrict:      getEnvAsBool("EXP_TABLE_STRICT", false),

		SessionCacheSize: getEnvAsInt("SESSION_CACHE_SIZE", DefaultSessionCacheSize),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 2*time.Hour),
		GachaUnitCost:    getEnvAsFloat("GACHA_UNIT_COST", DefaultGachaUnitCost),
		SeekChunkSize:    getEnvAsInt("SEEK_CHUNK_SIZE", DefaultSeekChunkSize),
		SeekHardCap:      getEnvAsInt("SEEK_MAX_ATTEMPTS", DefaultSeekHardCap),
		RandomSeed:       int64(getEnvAsInt("RANDOM_SEED", 0)),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
