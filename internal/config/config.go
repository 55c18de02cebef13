package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for ledgerline
type Config struct {
	// HTTP ops server configuration
	HTTP HTTPConfig

	// Database configuration
	Database DatabaseConfig

	// Resilience configuration for the shared executor
	Resilience ResilienceConfig

	// Data directory for the embedded store
	DataDir string

	// Development mode
	DevMode bool
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port        int
	CORSOrigins []string
}

// DatabaseConfig holds SQLite store configuration
type DatabaseConfig struct {
	Path         string
	BusyTimeout  time.Duration
	MaxOpenConns int
}

// ResilienceConfig holds the knobs for the shared resilient executor.
// When Enabled is false the executor runs in degraded mode: operations
// execute synchronously with no breaker, retry, or timeout protection.
type ResilienceConfig struct {
	Enabled              bool
	FailureRateThreshold float64
	MinRequests          int
	CountingInterval     time.Duration
	OpenCooldown         time.Duration
	MaxRetries           int
	RetryBackoff         time.Duration
	CallTimeout          time.Duration
	PoolSize             int
	QueueCapacity        int
	RatePerMinute        int
}

// Load loads configuration from environment variables with sensible defaults.
// Resilience protection is off unless explicitly enabled; a deployment that
// never mentions it gets plain synchronous execution, not a startup failure.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port:        getEnvInt("HTTP_PORT", 8080),
			CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"http://localhost:4200"}),
		},

		Database: DatabaseConfig{
			Path:         getEnv("DATABASE_PATH", "./data/ledgerline.db"),
			BusyTimeout:  getEnvDuration("DATABASE_BUSY_TIMEOUT", 5*time.Second),
			MaxOpenConns: getEnvInt("DATABASE_MAX_OPEN_CONNS", 4),
		},

		Resilience: ResilienceConfig{
			Enabled:              getEnvBool("RESILIENCE_ENABLED", false),
			FailureRateThreshold: getEnvFloat("RESILIENCE_FAILURE_RATE_THRESHOLD", 0.5),
			MinRequests:          getEnvInt("RESILIENCE_MIN_REQUESTS", 10),
			CountingInterval:     getEnvDuration("RESILIENCE_COUNTING_INTERVAL", 60*time.Second),
			OpenCooldown:         getEnvDuration("RESILIENCE_OPEN_COOLDOWN", 30*time.Second),
			MaxRetries:           getEnvInt("RESILIENCE_MAX_RETRIES", 3),
			RetryBackoff:         getEnvDuration("RESILIENCE_RETRY_BACKOFF", 1*time.Second),
			CallTimeout:          getEnvDuration("RESILIENCE_CALL_TIMEOUT", 5*time.Second),
			PoolSize:             getEnvInt("RESILIENCE_POOL_SIZE", 8),
			QueueCapacity:        getEnvInt("RESILIENCE_QUEUE_CAPACITY", 64),
			RatePerMinute:        getEnvInt("RESILIENCE_RATE_PER_MINUTE", 0),
		},

		DataDir: getEnv("DATA_DIR", "./data"),
		DevMode: getEnvBool("LEDGERLINE_DEV", false),
	}

	return cfg, nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return defaultValue
}
