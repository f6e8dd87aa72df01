package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"StockRadar/internal/config"
	"StockRadar/internal/fetcher"
	"StockRadar/internal/quota"
	"StockRadar/internal/store"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "radar",
	Short: "Technical pattern scanner for daily equity data",
	Long: `StockRadar maintains a rate-limited local cache of daily OHLCV
series and scans it for order-block and volatility-contraction setups,
ranking each symbol against a selected strategy.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default configs/config.yaml)")
}

func loadConfig() *config.Config {
	path := cfgPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	return cfg
}

func openCache(cfg *config.Config) *store.SQLiteCache {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
		log.Fatalf("[FATAL] create data dir: %v", err)
	}
	cache, err := store.NewSQLiteCache(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open cache: %v", err)
	}
	return cache
}

func newTracker(cfg *config.Config) *quota.Tracker {
	if err := os.MkdirAll(filepath.Dir(cfg.Usage.StateFile), 0755); err != nil {
		log.Fatalf("[FATAL] create data dir: %v", err)
	}
	tracker, err := quota.NewTracker(cfg.Usage.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init usage tracker: %v", err)
	}
	return tracker
}

func newFetcher(cfg *config.Config, tracker *quota.Tracker) *fetcher.YahooFetcher {
	backoff := make([]time.Duration, len(cfg.DataSource.BackoffMs))
	for i, ms := range cfg.DataSource.BackoffMs {
		backoff[i] = time.Duration(ms) * time.Millisecond
	}
	return fetcher.NewYahooFetcher(
		tracker,
		cfg.DataSource.Proxy,
		cfg.DataSource.ExchangeSuffix,
		time.Duration(cfg.DataSource.TimeoutSec)*time.Second,
		backoff,
	)
}
