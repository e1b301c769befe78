// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultAddr            = ":8000"
	DefaultDatabasePath    = "skillsage.db"
	DefaultAccessTokenTTL  = time.Hour
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Config holds the process-wide server configuration.
// AccessTokenKey and RefreshTokenKey are distinct signing secrets; tokens of
// one class never verify against the other secret.
type Config struct {
	Addr            string
	DatabasePath    string
	AccessTokenKey  string
	RefreshTokenKey string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Load reads configuration from the environment. The two signing secrets are
// mandatory; everything else falls back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:            envOr("SERVER_ADDR", DefaultAddr),
		DatabasePath:    envOr("DATABASE_PATH", DefaultDatabasePath),
		AccessTokenKey:  os.Getenv("ACCESS_TOKEN_KEY"),
		RefreshTokenKey: os.Getenv("REFRESH_TOKEN_KEY"),
		AccessTokenTTL:  DefaultAccessTokenTTL,
		RefreshTokenTTL: DefaultRefreshTokenTTL,
	}

	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
		}
		cfg.AccessTokenTTL = ttl
	}
	if v := os.Getenv("REFRESH_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REFRESH_TOKEN_TTL: %w", err)
		}
		cfg.RefreshTokenTTL = ttl
	}

	if cfg.AccessTokenKey == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_KEY is required")
	}
	if cfg.RefreshTokenKey == "" {
		return nil, fmt.Errorf("REFRESH_TOKEN_KEY is required")
	}
	if cfg.AccessTokenKey == cfg.RefreshTokenKey {
		return nil, fmt.Errorf("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY must differ")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
