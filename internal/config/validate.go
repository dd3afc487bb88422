package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/rickgao/emoji-trader/internal/model"
)

// Validate checks that all required fields are set and values are valid.
func (c *TraderConfig) Validate() error {
	if err := model.ValidateTeamID(c.Team.ID); err != nil {
		return fmt.Errorf("team.id: %w", err)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api.base_url must be an absolute http(s) url, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0, got %v", c.API.Timeout)
	}

	switch c.Credentials.Backend {
	case BackendFile:
		if strings.TrimSpace(c.Credentials.Path) == "" {
			return errors.New("credentials.path is required")
		}
	case BackendPostgres:
		if err := c.Credentials.Postgres.validate("credentials.postgres"); err != nil {
			return err
		}
	case BackendRedis:
		if c.Credentials.Redis.Address == "" {
			return errors.New("credentials.redis.address is required")
		}
		if c.Credentials.Redis.DB < 0 {
			return fmt.Errorf("credentials.redis.db must be >= 0, got %d", c.Credentials.Redis.DB)
		}
	default:
		return fmt.Errorf("credentials.backend must be one of %s, %s, %s, got %q",
			BackendFile, BackendPostgres, BackendRedis, c.Credentials.Backend)
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
		}
		if c.Metrics.Path == "/healthz" {
			return fmt.Errorf("metrics.path %q is reserved for the health check", c.Metrics.Path)
		}
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// ParseLogLevel maps a log.level value onto a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("log.level must be debug, info, warn or error, got %q", level)
	}
	return l, nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
