package config

import (
	"os"
	"time"
)

// RateLimitConfig controls the fixed-window request limiter. When
// disabled or when no Redis client is available, limiting is skipped.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // requests allowed per window
	Window  time.Duration // window length
	Prefix  string        // Redis key namespace
}

func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Limit:   getenvInt("RATE_LIMIT_REQUESTS", 120),
		Window:  time.Minute,
		Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Window = d
		}
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	return cfg
}
