package config

import (
	"os"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultTeamID       = "TEAM-AWESOME"
	DefaultBaseURL      = "https://emoji-stock-exchange-2-h52e5.ondigitalocean.app"
	DefaultAPITimeout   = 30 * time.Second
	DefaultBackend      = BackendFile
	DefaultCredentials  = "team-credentials.json"
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
	DefaultMinConns     = 1
	DefaultRedisAddress = "localhost:6379"
	DefaultRedisKey     = "emoji-trader:team-credentials"
	DefaultMetricsPort  = 9090
	DefaultMetricsPath  = "/metrics"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Environment variables that override file values.
const (
	EnvTeamID  = "TRADER_TEAM_ID"
	EnvBaseURL = "TRADER_API_URL"
)

// Default returns a config with every default applied.
func Default() *TraderConfig {
	cfg := &TraderConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *TraderConfig) applyEnvOverrides() {
	if v := os.Getenv(EnvTeamID); v != "" {
		c.Team.ID = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
}

func (c *TraderConfig) applyDefaults() {
	if c.Team.ID == "" {
		c.Team.ID = DefaultTeamID
	}

	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	// Credential store defaults
	if c.Credentials.Backend == "" {
		c.Credentials.Backend = DefaultBackend
	}
	if c.Credentials.Path == "" {
		c.Credentials.Path = DefaultCredentials
	}
	applyDBDefaults(&c.Credentials.Postgres)
	if c.Credentials.Redis.Address == "" {
		c.Credentials.Redis.Address = DefaultRedisAddress
	}
	if c.Credentials.Redis.Key == "" {
		c.Credentials.Redis.Key = DefaultRedisKey
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
