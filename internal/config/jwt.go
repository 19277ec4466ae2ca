package config

import (
	"fmt"
	"os"
	"time"
)

// DefaultTokenTTL is how long an API session token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// TokenIssuer is the iss claim of every session token.
const TokenIssuer = "job-assistant"

// JWTConfig holds the signing settings for API session tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// NewJWTConfig reads JWT_SECRET (required, at least 16 characters) and
// JWT_TTL (a Go duration such as "12h", default 24h).
func NewJWTConfig() (*JWTConfig, error) {
	return newJWTConfig(os.Getenv)
}

func newJWTConfig(getenv func(string) string) (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret: getenv("JWT_SECRET"),
		TTL:    DefaultTokenTTL,
		Issuer: TokenIssuer,
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if len(cfg.Secret) < 16 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}

	if v := getenv("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
		}
		if ttl < time.Minute {
			return nil, fmt.Errorf("JWT_TTL must be at least 1m, got %s", ttl)
		}
		cfg.TTL = ttl
	}
	return cfg, nil
}
