package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// TOMLConfig represents the TOML configuration file structure
type TOMLConfig struct {
	HTTP       TOMLHTTPConfig       `toml:"http"`
	Database   TOMLDatabaseConfig   `toml:"database"`
	Resilience TOMLResilienceConfig `toml:"resilience"`
	DataDir    string               `toml:"data_dir"`
	DevMode    bool                 `toml:"dev_mode"`
}

// TOMLHTTPConfig represents HTTP configuration in TOML
type TOMLHTTPConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// TOMLDatabaseConfig represents SQLite store configuration in TOML
type TOMLDatabaseConfig struct {
	Path         string `toml:"path"`
	BusyTimeout  string `toml:"busy_timeout"`
	MaxOpenConns int    `toml:"max_open_conns"`
}

// TOMLResilienceConfig represents executor configuration in TOML
type TOMLResilienceConfig struct {
	Enabled              bool    `toml:"enabled"`
	FailureRateThreshold float64 `toml:"failure_rate_threshold"`
	MinRequests          int     `toml:"min_requests"`
	CountingInterval     string  `toml:"counting_interval"`
	OpenCooldown         string  `toml:"open_cooldown"`
	MaxRetries           int     `toml:"max_retries"`
	RetryBackoff         string  `toml:"retry_backoff"`
	CallTimeout          string  `toml:"call_timeout"`
	PoolSize             int     `toml:"pool_size"`
	QueueCapacity        int     `toml:"queue_capacity"`
	RatePerMinute        int     `toml:"rate_per_minute"`
}

// ConfigPaths lists the paths to search for config files
var ConfigPaths = []string{
	"config.toml",
	"application.toml",
	"ledgerline.toml",
	"./config/config.toml",
	"./config/application.toml",
	"/etc/ledgerline/config.toml",
}

// LoadFromFile loads configuration from a TOML file
func LoadFromFile(path string) (*Config, error) {
	var tomlCfg TOMLConfig

	if _, err := toml.DecodeFile(path, &tomlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return tomlConfigToConfig(&tomlCfg)
}

// LoadWithFile loads configuration from file first, then overrides with env vars
func LoadWithFile() (*Config, error) {
	// Start with defaults from environment
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	// Check for explicit config file path
	configPath := os.Getenv("LEDGERLINE_CONFIG")
	if configPath == "" {
		// Search for config file in standard locations
		for _, path := range ConfigPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
	}

	// If no config file found, just use env vars
	if configPath == "" {
		return cfg, nil
	}

	// Load from file
	fileCfg, err := LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	// Merge: file config as base, env vars override
	return mergeConfigs(fileCfg, cfg), nil
}

// tomlConfigToConfig converts TOML config to the internal Config struct
func tomlConfigToConfig(tc *TOMLConfig) (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port:        tc.HTTP.Port,
			CORSOrigins: tc.HTTP.CORSOrigins,
		},
		Database: DatabaseConfig{
			Path:         tc.Database.Path,
			MaxOpenConns: tc.Database.MaxOpenConns,
		},
		Resilience: ResilienceConfig{
			Enabled:              tc.Resilience.Enabled,
			FailureRateThreshold: tc.Resilience.FailureRateThreshold,
			MinRequests:          tc.Resilience.MinRequests,
			MaxRetries:           tc.Resilience.MaxRetries,
			PoolSize:             tc.Resilience.PoolSize,
			QueueCapacity:        tc.Resilience.QueueCapacity,
			RatePerMinute:        tc.Resilience.RatePerMinute,
		},
		DataDir: tc.DataDir,
		DevMode: tc.DevMode,
	}

	// Parse durations
	if tc.Database.BusyTimeout != "" {
		if d, err := time.ParseDuration(tc.Database.BusyTimeout); err == nil {
			cfg.Database.BusyTimeout = d
		}
	}
	if tc.Resilience.CountingInterval != "" {
		if d, err := time.ParseDuration(tc.Resilience.CountingInterval); err == nil {
			cfg.Resilience.CountingInterval = d
		}
	}
	if tc.Resilience.OpenCooldown != "" {
		if d, err := time.ParseDuration(tc.Resilience.OpenCooldown); err == nil {
			cfg.Resilience.OpenCooldown = d
		}
	}
	if tc.Resilience.RetryBackoff != "" {
		if d, err := time.ParseDuration(tc.Resilience.RetryBackoff); err == nil {
			cfg.Resilience.RetryBackoff = d
		}
	}
	if tc.Resilience.CallTimeout != "" {
		if d, err := time.ParseDuration(tc.Resilience.CallTimeout); err == nil {
			cfg.Resilience.CallTimeout = d
		}
	}

	return cfg, nil
}

// mergeConfigs merges two configs, with override taking precedence for non-zero values
func mergeConfigs(base, override *Config) *Config {
	result := *base

	// HTTP
	if override.HTTP.Port != 0 && override.HTTP.Port != 8080 {
		result.HTTP.Port = override.HTTP.Port
	}
	if len(override.HTTP.CORSOrigins) > 0 {
		result.HTTP.CORSOrigins = override.HTTP.CORSOrigins
	}

	// Database
	if override.Database.Path != "" && override.Database.Path != "./data/ledgerline.db" {
		result.Database.Path = override.Database.Path
	}
	if override.Database.BusyTimeout != 0 && override.Database.BusyTimeout != 5*time.Second {
		result.Database.BusyTimeout = override.Database.BusyTimeout
	}
	if override.Database.MaxOpenConns != 0 && override.Database.MaxOpenConns != 4 {
		result.Database.MaxOpenConns = override.Database.MaxOpenConns
	}

	// Resilience
	if override.Resilience.Enabled {
		result.Resilience.Enabled = true
	}
	if override.Resilience.FailureRateThreshold != 0 && override.Resilience.FailureRateThreshold != 0.5 {
		result.Resilience.FailureRateThreshold = override.Resilience.FailureRateThreshold
	}
	if override.Resilience.MinRequests != 0 && override.Resilience.MinRequests != 10 {
		result.Resilience.MinRequests = override.Resilience.MinRequests
	}
	if override.Resilience.CountingInterval != 0 && override.Resilience.CountingInterval != 60*time.Second {
		result.Resilience.CountingInterval = override.Resilience.CountingInterval
	}
	if override.Resilience.OpenCooldown != 0 && override.Resilience.OpenCooldown != 30*time.Second {
		result.Resilience.OpenCooldown = override.Resilience.OpenCooldown
	}
	if override.Resilience.MaxRetries != 0 && override.Resilience.MaxRetries != 3 {
		result.Resilience.MaxRetries = override.Resilience.MaxRetries
	}
	if override.Resilience.RetryBackoff != 0 && override.Resilience.RetryBackoff != 1*time.Second {
		result.Resilience.RetryBackoff = override.Resilience.RetryBackoff
	}
	if override.Resilience.CallTimeout != 0 && override.Resilience.CallTimeout != 5*time.Second {
		result.Resilience.CallTimeout = override.Resilience.CallTimeout
	}
	if override.Resilience.PoolSize != 0 && override.Resilience.PoolSize != 8 {
		result.Resilience.PoolSize = override.Resilience.PoolSize
	}
	if override.Resilience.QueueCapacity != 0 && override.Resilience.QueueCapacity != 64 {
		result.Resilience.QueueCapacity = override.Resilience.QueueCapacity
	}
	if override.Resilience.RatePerMinute != 0 {
		result.Resilience.RatePerMinute = override.Resilience.RatePerMinute
	}

	// General
	if override.DataDir != "" && override.DataDir != "./data" {
		result.DataDir = override.DataDir
	}
	if override.DevMode {
		result.DevMode = true
	}

	return &result
}

// WriteExampleConfig writes an example configuration file
func WriteExampleConfig(path string) error {
	example := `# ledgerline Configuration
# Environment variables override these settings

[http]
port = 8080
cors_origins = ["http://localhost:4200"]

[database]
path = "./data/ledgerline.db"
busy_timeout = "5s"
max_open_conns = 4

# Resilient execution for store-facing operations.
# When this section is absent or disabled, operations run synchronously
# without breaker, retry, or timeout protection.
[resilience]
enabled = false
failure_rate_threshold = 0.5
min_requests = 10
counting_interval = "60s"
open_cooldown = "30s"
max_retries = 3
retry_backoff = "1s"
call_timeout = "5s"
pool_size = 8
queue_capacity = 64
rate_per_minute = 0

data_dir = "./data"
dev_mode = false
`

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return os.WriteFile(path, []byte(example), 0644)
}
