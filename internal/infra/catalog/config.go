package catalog

import (
	"fmt"
	"time"

	"catalog-selection/internal/domain/entity"
	pkgconfig "catalog-selection/pkg/config"
)

// Config holds the configuration for the remote catalog provider.
//
// Transport settings:
//   - BaseURL: Root of the catalog API (scheme + host)
//   - Timeout: Per-request timeout applied to every page fetch
//   - MaxBodySize: Upper bound on a page response body
//
// Paging settings:
//   - PageSize: Number of records in one visible catalog page
//   - MaxLimit: Largest limit the provider is ever asked for
//
// Politeness settings:
//   - RateLimit / RateBurst: Token bucket for outbound requests
type Config struct {
	// BaseURL is the API root, e.g. "https://api.artic.edu".
	// Default: https://api.artic.edu
	BaseURL string

	// Timeout is the maximum duration for a single page request.
	// Default: 10s
	Timeout time.Duration

	// PageSize is the visible page size used when a caller passes limit 0.
	// Default: 12
	PageSize int

	// MaxLimit caps the limit sent to the API.
	// Default: 100
	MaxLimit int

	// RateLimit is the sustained outbound request rate in requests per second.
	// Default: 5
	RateLimit float64

	// RateBurst is the number of requests allowed in a burst.
	// Default: 5
	RateBurst int

	// MaxBodySize is the maximum response body size in bytes.
	// Default: 2097152 (2MB)
	MaxBodySize int64

	// UserAgent identifies this service to the catalog API.
	UserAgent string
}

// DefaultConfig returns the default configuration for the artic.edu catalog.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.artic.edu",
		Timeout:     10 * time.Second,
		PageSize:    12,
		MaxLimit:    100,
		RateLimit:   5,
		RateBurst:   5,
		MaxBodySize: 2 * 1024 * 1024, // 2MB
		UserAgent:   "CatalogSelection/1.0",
	}
}

// Validate checks if the configuration values are valid.
//
// Validation rules:
//   - BaseURL: http or https URL with a host
//   - Timeout: 100ms-5m
//   - PageSize: 1..MaxLimit
//   - MaxLimit: 1..1000
//   - RateLimit: > 0, RateBurst: >= 1
//   - MaxBodySize: 1KB-100MB
func (c *Config) Validate() error {
	if err := entity.ValidateBaseURL(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if err := pkgconfig.ValidateDurationRange(c.Timeout, 100*time.Millisecond, 5*time.Minute); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	if c.MaxLimit < 1 || c.MaxLimit > 1000 {
		return fmt.Errorf("max limit must be between 1 and 1000, got %d", c.MaxLimit)
	}

	if c.PageSize < 1 || c.PageSize > c.MaxLimit {
		return fmt.Errorf("page size must be between 1 and %d, got %d", c.MaxLimit, c.PageSize)
	}

	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.RateLimit)
	}

	if c.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1, got %d", c.RateBurst)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// Unset or unparseable variables fall back to defaults; the result is validated.
//
// Environment variables:
//   - CATALOG_BASE_URL: API root (default: https://api.artic.edu)
//   - CATALOG_TIMEOUT: duration string, e.g., "10s" (default: 10s)
//   - CATALOG_PAGE_SIZE: integer (default: 12)
//   - CATALOG_MAX_LIMIT: integer (default: 100)
//   - CATALOG_RATE_LIMIT: requests per second (default: 5)
//   - CATALOG_RATE_BURST: integer (default: 5)
//   - CATALOG_MAX_BODY_SIZE: integer in bytes (default: 2097152)
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()

	cfg := Config{
		BaseURL:     pkgconfig.GetEnvString("CATALOG_BASE_URL", def.BaseURL),
		Timeout:     pkgconfig.GetEnvDuration("CATALOG_TIMEOUT", def.Timeout),
		PageSize:    pkgconfig.GetEnvInt("CATALOG_PAGE_SIZE", def.PageSize),
		MaxLimit:    pkgconfig.GetEnvInt("CATALOG_MAX_LIMIT", def.MaxLimit),
		RateLimit:   pkgconfig.GetEnvFloat("CATALOG_RATE_LIMIT", def.RateLimit),
		RateBurst:   pkgconfig.GetEnvInt("CATALOG_RATE_BURST", def.RateBurst),
		MaxBodySize: int64(pkgconfig.GetEnvInt("CATALOG_MAX_BODY_SIZE", int(def.MaxBodySize))),
		UserAgent:   def.UserAgent,
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid catalog configuration: %w", err)
	}
	return cfg, nil
}

// clampLimit resolves a FetchPage limit: 0 or less means PageSize, and
// anything above MaxLimit is capped.
func (c Config) clampLimit(limit int) int {
	if limit <= 0 {
		return c.PageSize
	}
	return min(limit, c.MaxLimit)
}
