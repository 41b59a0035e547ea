package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appEnvVars = []string{
	"CONFIG_FILE",
	"HTTP_ADDR", "HTTP_SHUTDOWN_TIMEOUT", "HTTP_READ_HEADER_TIMEOUT",
	"SELECTION_STORE", "SELECTION_STORE_KEY", "SELECTION_FILE_PATH", "SQLITE_PATH", "DATABASE_URL",
	"CATALOG_SOURCE",
	"JOBS_TIMEZONE", "CATALOG_MIRROR_SCHEDULE", "CATALOG_MIRROR_PAGES", "STATS_SCHEDULE",
	"TRACE_SAMPLE_RATIO", "VERSION",
}

func clearAppEnv(t *testing.T) {
	t.Helper()
	for _, key := range appEnvVars {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearAppEnv(t)

	cfg, warnings, err := Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, DefaultAppConfig(), *cfg)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearAppEnv(t)
	t.Setenv("CONFIG_FILE", writeConfigFile(t, `
http:
  addr: ":9090"
  shutdown_timeout: 15s
store:
  backend: sqlite
  sqlite_path: /var/lib/selection.db
catalog:
  source: database
jobs:
  mirror_schedule: "0 3 * * *"
  mirror_pages: 10
tracing:
  sample_ratio: 0.25
`))

	cfg, warnings, err := Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadHeaderTimeout, "unset keys keep their default")
	assert.Equal(t, StoreSQLite, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/selection.db", cfg.Store.SQLitePath)
	assert.Equal(t, "selectedIds", cfg.Store.Key)
	assert.Equal(t, SourceDatabase, cfg.Catalog.Source)
	assert.Equal(t, "0 3 * * *", cfg.Jobs.MirrorSchedule)
	assert.Equal(t, 10, cfg.Jobs.MirrorPages)
	assert.InDelta(t, 0.25, cfg.Tracing.SampleRatio, 1e-9)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearAppEnv(t)
	t.Setenv("CONFIG_FILE", writeConfigFile(t, "http:\n  addr: \":9090\"\nstore:\n  backend: sqlite\n"))
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("SELECTION_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/catalog")

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, StorePostgres, cfg.Store.Backend)
	assert.Equal(t, "postgres://u:p@localhost/catalog", cfg.Store.DatabaseURL)
}

func TestLoad_EmptyYAMLFile(t *testing.T) {
	clearAppEnv(t)
	t.Setenv("CONFIG_FILE", writeConfigFile(t, ""))

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), *cfg)
}

func TestLoad_FileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearAppEnv(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, _, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open config file")
	})

	t.Run("unknown key", func(t *testing.T) {
		clearAppEnv(t)
		t.Setenv("CONFIG_FILE", writeConfigFile(t, "store:\n  backnd: sqlite\n"))
		_, _, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config file")
	})

	t.Run("database url is not read from yaml", func(t *testing.T) {
		clearAppEnv(t)
		t.Setenv("CONFIG_FILE", writeConfigFile(t, "store:\n  backend: postgres\n"))
		_, _, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL is required")
	})
}

func TestLoad_Fallbacks(t *testing.T) {
	clearAppEnv(t)
	t.Setenv("CATALOG_MIRROR_SCHEDULE", "every six hours")
	t.Setenv("STATS_SCHEDULE", "* * *")
	t.Setenv("JOBS_TIMEZONE", "Mars/Olympus_Mons")
	t.Setenv("CATALOG_MIRROR_PAGES", "0")
	t.Setenv("TRACE_SAMPLE_RATIO", "1.5")

	before := testutil.ToFloat64(fallbacksTotal.WithLabelValues("mirror_schedule"))

	cfg, warnings, err := Load()
	require.NoError(t, err)
	assert.Len(t, warnings, 5)

	def := DefaultAppConfig()
	assert.Equal(t, def.Jobs, cfg.Jobs)
	assert.Equal(t, def.Tracing, cfg.Tracing)
	assert.Contains(t, warnings[0], "Invalid mirror_schedule='every six hours'")

	assert.Equal(t, before+1, testutil.ToFloat64(fallbacksTotal.WithLabelValues("mirror_schedule")))
	assert.Equal(t, float64(1), testutil.ToFloat64(fallbackActive))
}

func TestLoad_MirrorOff(t *testing.T) {
	clearAppEnv(t)
	t.Setenv("CATALOG_MIRROR_SCHEDULE", "off")

	cfg, warnings, err := Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, cfg.Jobs.MirrorSchedule)
	assert.Equal(t, float64(0), testutil.ToFloat64(fallbackActive))
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(*AppConfig) {}},
		{name: "empty addr", mutate: func(c *AppConfig) { c.HTTP.Addr = "" }, wantErr: "http addr is required"},
		{name: "zero shutdown timeout", mutate: func(c *AppConfig) { c.HTTP.ShutdownTimeout = 0 }, wantErr: "invalid shutdown timeout"},
		{name: "empty key", mutate: func(c *AppConfig) { c.Store.Key = "" }, wantErr: "store key is required"},
		{name: "unknown backend", mutate: func(c *AppConfig) { c.Store.Backend = "redis" }, wantErr: "invalid selection store"},
		{name: "file without path", mutate: func(c *AppConfig) { c.Store.FilePath = "" }, wantErr: "SELECTION_FILE_PATH"},
		{name: "sqlite without path", mutate: func(c *AppConfig) {
			c.Store.Backend = StoreSQLite
			c.Store.SQLitePath = ""
		}, wantErr: "SQLITE_PATH"},
		{name: "unknown source", mutate: func(c *AppConfig) { c.Catalog.Source = "s3" }, wantErr: "invalid catalog source"},
		{name: "database source on file store", mutate: func(c *AppConfig) { c.Catalog.Source = SourceDatabase }, wantErr: "requires the sqlite or postgres store"},
		{name: "database source on sqlite", mutate: func(c *AppConfig) {
			c.Store.Backend = StoreSQLite
			c.Catalog.Source = SourceDatabase
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAppConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCronSchedule(t *testing.T) {
	for _, ok := range []string{"30 5 * * *", "0 */6 * * 1-5", "@hourly", "@every 15s"} {
		assert.NoError(t, ValidateCronSchedule(ok), ok)
	}
	for _, bad := range []string{"", "* * *", "61 * * * *", "@sometimes"} {
		assert.Error(t, ValidateCronSchedule(bad), bad)
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Not/AZone"))
}
