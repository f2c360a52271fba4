package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/stockbook/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sbk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StoreJSONL, cfg.Store)
	assert.Equal(t, "USD", cfg.Currency)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
ledger_file: book.db
store: sqlite
log_level: debug
holidays: ["2024-12-25", "2025-1-1"]
eodhd:
  api_key: from-file
  requests_per_second: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "book.db", cfg.LedgerFile)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "from-file", cfg.EODHD.APIKey)
	assert.Equal(t, 2.0, cfg.EODHD.RequestsPerSecond)
	// untouched defaults remain
	assert.Equal(t, "USD", cfg.Currency)

	days, err := cfg.HolidayDates()
	require.NoError(t, err)
	assert.Equal(t, []date.Date{date.MustParse("2024-12-25"), date.MustParse("2025-01-01")}, days)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "eodhd:\n  api_key: from-file\n")
	t.Setenv("EODHD_API_KEY", "from-env")
	t.Setenv("SBK_STORE", "sqlite")
	t.Setenv("SBK_HOLIDAYS", "2024-07-04,2024-11-28")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.EODHD.APIKey)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Len(t, cfg.Holidays, 2)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "store: [not, a, string]"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown store", func(c *Config) { c.Store = "csv" }},
		{"no ledger", func(c *Config) { c.LedgerFile = "" }},
		{"no currency", func(c *Config) { c.Currency = "" }},
		{"negative rate", func(c *Config) { c.EODHD.RequestsPerSecond = -1 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad holiday", func(c *Config) { c.Holidays = []string{"xmas"} }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tc.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
