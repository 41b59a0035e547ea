package config

import (
	"log/slog"
)

// RateLimitConfig is the per-client request limit of the HTTP server.
type RateLimitConfig struct {
	Enabled bool
	// RPS is the sustained requests per second allowed per client IP.
	RPS float64
	// Burst is the number of requests a client may make at once.
	Burst int
}

// LoadRateLimitConfig loads the inbound rate limit from environment variables.
// Invalid values log a warning and fall back to the default instead of failing.
//
// Environment variables:
//   - RATELIMIT_ENABLED: Enable/disable rate limiting (default: true)
//   - RATELIMIT_RPS: Requests per second per client IP (default: 20)
//   - RATELIMIT_BURST: Burst size per client IP (default: 40)
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: GetEnvBool("RATELIMIT_ENABLED", true),
		RPS:     GetEnvFloat("RATELIMIT_RPS", 20),
		Burst:   GetEnvInt("RATELIMIT_BURST", 40),
	}

	if cfg.RPS <= 0 {
		slog.Warn("invalid RATELIMIT_RPS, using default",
			slog.Float64("value", cfg.RPS),
			slog.Int("default", 20))
		cfg.RPS = 20
	}
	if cfg.Burst < 1 {
		slog.Warn("invalid RATELIMIT_BURST, using default",
			slog.Int("value", cfg.Burst),
			slog.Int("default", 40))
		cfg.Burst = 40
	}
	return cfg
}
