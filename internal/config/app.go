// Package config loads the service-level settings of the catalog-selection
// API: listen address, selection store backend, catalog source and the
// scheduled jobs. Component settings (catalog client, pagination, rate
// limiting, CORS) stay with their packages.
//
// Values are layered: built-in defaults, then an optional YAML file named by
// CONFIG_FILE, then environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "catalog-selection/pkg/config"
)

// Store backends.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Catalog sources.
const (
	SourceAPI      = "api"
	SourceDatabase = "database"
)

// AppConfig holds the service-level configuration.
type AppConfig struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Store   StoreConfig   `yaml:"store"`
	Catalog CatalogConfig `yaml:"catalog"`
	Jobs    JobsConfig    `yaml:"jobs"`
	Tracing TracingConfig `yaml:"tracing"`
	Version string        `yaml:"version"`
}

type HTTPConfig struct {
	// Default: ":8080"
	Addr string `yaml:"addr"`
	// Default: 5s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Default: 10s
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

// StoreConfig selects where the selection blob lives.
type StoreConfig struct {
	// Backend is one of "file", "sqlite", "postgres". Default: "file"
	Backend string `yaml:"backend"`
	// Key is the blob key. Default: "selectedIds"
	Key string `yaml:"key"`
	// FilePath is the directory of the file backend. Default: "./data"
	FilePath string `yaml:"file_path"`
	// SQLitePath is the database file of the sqlite backend. Default: "./data/selection.db"
	SQLitePath string `yaml:"sqlite_path"`
	// DatabaseURL is the postgres DSN. Never read from the YAML file.
	DatabaseURL string `yaml:"-"`
}

// CatalogConfig selects where catalog pages come from.
type CatalogConfig struct {
	// Source is "api" (remote catalog) or "database" (local mirror). Default: "api"
	Source string `yaml:"source"`
}

// JobsConfig configures the cron scheduler.
type JobsConfig struct {
	// Timezone of the schedules. Default: "UTC"
	Timezone string `yaml:"timezone"`
	// MirrorSchedule refreshes the local catalog mirror. Only used with
	// the database source; empty disables it. Default: "@every 6h"
	MirrorSchedule string `yaml:"mirror_schedule"`
	// MirrorPages caps the number of upstream pages mirrored per run. Default: 50
	MirrorPages int `yaml:"mirror_pages"`
	// StatsSchedule refreshes pool and selection gauges. Default: "@every 15s"
	StatsSchedule string `yaml:"stats_schedule"`
}

type TracingConfig struct {
	// SampleRatio of root spans, 0..1. Default: 1
	SampleRatio float64 `yaml:"sample_ratio"`
}

// DefaultAppConfig returns the built-in defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ShutdownTimeout:   5 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Backend:    StoreFile,
			Key:        "selectedIds",
			FilePath:   "./data",
			SQLitePath: "./data/selection.db",
		},
		Catalog: CatalogConfig{Source: SourceAPI},
		Jobs: JobsConfig{
			Timezone:       "UTC",
			MirrorSchedule: "@every 6h",
			MirrorPages:    50,
			StatsSchedule:  "@every 15s",
		},
		Tracing: TracingConfig{SampleRatio: 1},
		Version: "dev",
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE, and environment variables.
//
// Invalid schedules and timezones fall back to their defaults and are
// returned as warnings; structural errors (unknown backend or source, bad
// YAML) are returned as an error.
//
// Environment variables:
//   - HTTP_ADDR, HTTP_SHUTDOWN_TIMEOUT, HTTP_READ_HEADER_TIMEOUT
//   - SELECTION_STORE, SELECTION_STORE_KEY, SELECTION_FILE_PATH, SQLITE_PATH, DATABASE_URL
//   - CATALOG_SOURCE
//   - JOBS_TIMEZONE, CATALOG_MIRROR_SCHEDULE, CATALOG_MIRROR_PAGES, STATS_SCHEDULE
//   - TRACE_SAMPLE_RATIO, VERSION
func Load() (*AppConfig, []string, error) {
	cfg := DefaultAppConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		f, err := os.Open(path) // #nosec G304 -- path comes from the operator
		if err != nil {
			return nil, nil, fmt.Errorf("open config file: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := decodeYAML(f, &cfg); err != nil {
			return nil, nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	warnings := cfg.applyFallbacks()
	if err := cfg.Validate(); err != nil {
		return nil, warnings, err
	}

	loadTimestamp.SetToCurrentTime()
	return &cfg, warnings, nil
}

// decodeYAML overlays the document in r onto cfg. Unknown keys are rejected
// so that typos surface at startup.
func decodeYAML(r io.Reader, cfg *AppConfig) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *AppConfig) {
	cfg.HTTP.Addr = pkgconfig.GetEnvString("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.ShutdownTimeout = pkgconfig.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout)
	cfg.HTTP.ReadHeaderTimeout = pkgconfig.GetEnvDuration("HTTP_READ_HEADER_TIMEOUT", cfg.HTTP.ReadHeaderTimeout)

	cfg.Store.Backend = pkgconfig.GetEnvString("SELECTION_STORE", cfg.Store.Backend)
	cfg.Store.Key = pkgconfig.GetEnvString("SELECTION_STORE_KEY", cfg.Store.Key)
	cfg.Store.FilePath = pkgconfig.GetEnvString("SELECTION_FILE_PATH", cfg.Store.FilePath)
	cfg.Store.SQLitePath = pkgconfig.GetEnvString("SQLITE_PATH", cfg.Store.SQLitePath)
	cfg.Store.DatabaseURL = pkgconfig.GetEnvString("DATABASE_URL", cfg.Store.DatabaseURL)

	cfg.Catalog.Source = pkgconfig.GetEnvString("CATALOG_SOURCE", cfg.Catalog.Source)

	cfg.Jobs.Timezone = pkgconfig.GetEnvString("JOBS_TIMEZONE", cfg.Jobs.Timezone)
	cfg.Jobs.MirrorSchedule = pkgconfig.GetEnvString("CATALOG_MIRROR_SCHEDULE", cfg.Jobs.MirrorSchedule)
	cfg.Jobs.MirrorPages = pkgconfig.GetEnvInt("CATALOG_MIRROR_PAGES", cfg.Jobs.MirrorPages)
	cfg.Jobs.StatsSchedule = pkgconfig.GetEnvString("STATS_SCHEDULE", cfg.Jobs.StatsSchedule)

	cfg.Tracing.SampleRatio = pkgconfig.GetEnvFloat("TRACE_SAMPLE_RATIO", cfg.Tracing.SampleRatio)
	cfg.Version = pkgconfig.GetEnvString("VERSION", cfg.Version)
}

// applyFallbacks replaces invalid soft settings with their defaults.
// "off" disables the mirror job.
func (c *AppConfig) applyFallbacks() []string {
	def := DefaultAppConfig()
	var warnings []string

	fallback := func(field, value string, err error, defValue string) {
		warnings = append(warnings, fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%s'", field, value, err, defValue))
		recordFallback(field)
	}

	if c.Jobs.MirrorSchedule == "off" {
		c.Jobs.MirrorSchedule = ""
	}
	if c.Jobs.MirrorSchedule != "" {
		if err := ValidateCronSchedule(c.Jobs.MirrorSchedule); err != nil {
			fallback("mirror_schedule", c.Jobs.MirrorSchedule, err, def.Jobs.MirrorSchedule)
			c.Jobs.MirrorSchedule = def.Jobs.MirrorSchedule
		}
	}
	if err := ValidateCronSchedule(c.Jobs.StatsSchedule); err != nil {
		fallback("stats_schedule", c.Jobs.StatsSchedule, err, def.Jobs.StatsSchedule)
		c.Jobs.StatsSchedule = def.Jobs.StatsSchedule
	}
	if err := ValidateTimezone(c.Jobs.Timezone); err != nil {
		fallback("timezone", c.Jobs.Timezone, err, def.Jobs.Timezone)
		c.Jobs.Timezone = def.Jobs.Timezone
	}
	if c.Jobs.MirrorPages < 1 {
		fallback("mirror_pages", fmt.Sprint(c.Jobs.MirrorPages), errors.New("must be at least 1"), fmt.Sprint(def.Jobs.MirrorPages))
		c.Jobs.MirrorPages = def.Jobs.MirrorPages
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		fallback("sample_ratio", fmt.Sprint(c.Tracing.SampleRatio), errors.New("must be between 0 and 1"), fmt.Sprint(def.Tracing.SampleRatio))
		c.Tracing.SampleRatio = def.Tracing.SampleRatio
	}

	setFallbackActive(len(warnings) > 0)
	return warnings
}

// Validate reports structural errors that have no safe fallback.
func (c *AppConfig) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http addr is required")
	}
	if err := pkgconfig.ValidatePositiveDuration(c.HTTP.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.HTTP.ReadHeaderTimeout); err != nil {
		return fmt.Errorf("invalid read header timeout: %w", err)
	}
	if c.Store.Key == "" {
		return errors.New("selection store key is required")
	}

	switch c.Store.Backend {
	case StoreFile:
		if c.Store.FilePath == "" {
			return errors.New("SELECTION_FILE_PATH is required for the file store")
		}
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite store")
		}
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("invalid selection store %q: must be file, sqlite or postgres", c.Store.Backend)
	}

	switch c.Catalog.Source {
	case SourceAPI:
	case SourceDatabase:
		if c.Store.Backend == StoreFile {
			return errors.New("catalog source database requires the sqlite or postgres store")
		}
	default:
		return fmt.Errorf("invalid catalog source %q: must be api or database", c.Catalog.Source)
	}
	return nil
}
