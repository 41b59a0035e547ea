// Package pagination provides the page arithmetic, query parsing and
// response envelope shared by the catalog record providers and the HTTP layer.
package pagination

import (
	"log/slog"

	pkgconfig "catalog-selection/pkg/config"
)

// Config holds the paging bounds of the records table.
type Config struct {
	DefaultPage  int // page shown when the request names none
	DefaultLimit int // catalog page size shown to the user
	MaxLimit     int // largest page a provider is ever asked for
}

// DefaultConfig returns page 1, 12 records per page, at most 100 per request.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 12,
		MaxLimit:     100,
	}
}

// LoadFromEnv reads PAGINATION_DEFAULT_PAGE, PAGINATION_DEFAULT_LIMIT and
// PAGINATION_MAX_LIMIT. Unset, unparseable or non-positive values keep the
// default; a MaxLimit below DefaultLimit is raised to it.
func LoadFromEnv() Config {
	def := DefaultConfig()
	cfg := Config{
		DefaultPage:  positive("PAGINATION_DEFAULT_PAGE", def.DefaultPage),
		DefaultLimit: positive("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     positive("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		slog.Warn("PAGINATION_MAX_LIMIT below PAGINATION_DEFAULT_LIMIT, raising it",
			slog.Int("max_limit", cfg.MaxLimit),
			slog.Int("default_limit", cfg.DefaultLimit))
		cfg.MaxLimit = cfg.DefaultLimit
	}
	return cfg
}

func positive(key string, def int) int {
	v := pkgconfig.GetEnvInt(key, def)
	if v < 1 {
		slog.Warn("non-positive pagination setting, using default",
			slog.String("key", key),
			slog.Int("value", v),
			slog.Int("default", def))
		return def
	}
	return v
}
