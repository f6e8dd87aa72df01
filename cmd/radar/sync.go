package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"StockRadar/internal/scanner"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch fresh daily series for the whole watchlist into the local cache",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		cache := openCache(cfg)
		defer cache.Close()

		tracker := newTracker(cfg)
		syncer := scanner.NewSyncer(
			newFetcher(cfg, tracker),
			cache,
			time.Duration(cfg.Sync.PaceMs)*time.Millisecond,
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		count, err := syncer.Sync(ctx, cfg.Symbols)
		if err != nil {
			log.Fatalf("[FATAL] sync aborted after %d symbols: %v", count, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
