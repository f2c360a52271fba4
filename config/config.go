// Package config loads the settings of the sbk command.
//
// Settings come, in increasing priority, from the defaults, an optional YAML
// file, a .env file and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/etnz/stockbook/date"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file read when present and none is given.
const DefaultFile = ".sbk.yaml"

// Store types.
const (
	StoreJSONL  = "jsonl"
	StoreSQLite = "sqlite"
)

type Config struct {
	LedgerFile string   `yaml:"ledger_file" env:"SBK_LEDGER_FILE"`
	Store      string   `yaml:"store" env:"SBK_STORE"`
	Currency   string   `yaml:"currency" env:"SBK_CURRENCY"`
	LogLevel   string   `yaml:"log_level" env:"LOG_LEVEL"`
	Holidays   []string `yaml:"holidays" env:"SBK_HOLIDAYS" envSeparator:","`
	EODHD      EODHD    `yaml:"eodhd"`
}

type EODHD struct {
	APIKey            string  `yaml:"api_key" env:"EODHD_API_KEY"`
	BaseURL           string  `yaml:"base_url" env:"EODHD_BASE_URL"`
	CacheDir          string  `yaml:"cache_dir" env:"EODHD_CACHE_DIR"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"EODHD_REQUESTS_PER_SECOND"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LedgerFile: "trades.jsonl",
		Store:      StoreJSONL,
		Currency:   "USD",
		LogLevel:   "info",
		EODHD: EODHD{
			CacheDir:          os.TempDir(),
			RequestsPerSecond: 5,
		},
	}
}

// Load returns the configuration read from path, if not empty, then from .env
// and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	// .env is optional, and never overrides the actual environment
	_ = godotenv.Load(".env")

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Store {
	case StoreJSONL, StoreSQLite:
	default:
		return fmt.Errorf("store must be %q or %q, got %q", StoreJSONL, StoreSQLite, c.Store)
	}
	if c.LedgerFile == "" {
		return fmt.Errorf("ledger_file is required")
	}
	if c.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if c.EODHD.RequestsPerSecond < 0 {
		return fmt.Errorf("eodhd.requests_per_second must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.HolidayDates(); err != nil {
		return err
	}
	return nil
}

// Level returns the log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("invalid log_level: %w", err)
	}
	return l, nil
}

// HolidayDates returns the parsed market holidays.
func (c *Config) HolidayDates() ([]date.Date, error) {
	days := make([]date.Date, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		d, err := date.Parse(h)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday: %w", err)
		}
		days = append(days, d)
	}
	return days, nil
}
