package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Proxy          string `yaml:"proxy"`
		ExchangeSuffix string `yaml:"exchange_suffix"`
		TimeoutSec     int    `yaml:"timeout_sec"`
		BackoffMs      []int  `yaml:"backoff_ms"`
	} `yaml:"data_source"`
	Sync struct {
		PaceMs int    `yaml:"pace_ms"`
		Cron   string `yaml:"cron"`
	} `yaml:"sync"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Usage struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"usage"`
	Symbols []string `yaml:"symbols"`
}

// defaultWatchlist seeds the symbol universe when none is configured.
var defaultWatchlist = []string{
	"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK",
	"HINDUNILVR", "SBIN", "BHARTIARTL", "ITC", "KOTAKBANK",
	"LT", "AXISBANK", "ASIANPAINT", "MARUTI", "TITAN",
	"SUNPHARMA", "BAJFINANCE", "WIPRO", "ULTRACEMCO", "NTPC",
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("EXCHANGE_SUFFIX"); v != "" {
		cfg.DataSource.ExchangeSuffix = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("USAGE_STATE_FILE"); v != "" {
		cfg.Usage.StateFile = v
	}
	if v := os.Getenv("SYNC_CRON"); v != "" {
		cfg.Sync.Cron = v
	}
	if v := os.Getenv("SYNC_PACE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Sync.PaceMs = ms
		}
	}

	// Defaults
	if cfg.DataSource.ExchangeSuffix == "" {
		cfg.DataSource.ExchangeSuffix = ".NS"
	}
	if cfg.DataSource.TimeoutSec == 0 {
		cfg.DataSource.TimeoutSec = 30
	}
	if len(cfg.DataSource.BackoffMs) == 0 {
		cfg.DataSource.BackoffMs = []int{2000, 4000}
	}
	if cfg.Sync.PaceMs == 0 {
		cfg.Sync.PaceMs = 1100
	}
	if cfg.Sync.Cron == "" {
		// Weekdays at 18:30 local, after market close.
		cfg.Sync.Cron = "0 30 18 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockradar.db"
	}
	if cfg.Usage.StateFile == "" {
		cfg.Usage.StateFile = "data/usage_state.json"
	}
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = append(cfg.Symbols, defaultWatchlist...)
	}

	return cfg, nil
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols list must not be empty")
	}
	if c.Sync.PaceMs < 0 {
		return fmt.Errorf("sync.pace_ms must not be negative")
	}
	for _, ms := range c.DataSource.BackoffMs {
		if ms < 0 {
			return fmt.Errorf("data_source.backoff_ms entries must not be negative")
		}
	}
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	return nil
}
