package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"StockRadar/internal/scanner"
	"StockRadar/internal/scheduler"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the periodic sync on the configured cron schedule",
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

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sched := scheduler.NewScheduler(ctx, syncer, cfg.Symbols)
		if err := sched.Register(cfg.Sync.Cron); err != nil {
			log.Fatalf("[FATAL] register cron task: %v", err)
		}
		sched.Start()
		defer sched.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, executing sync now")
			go sched.RunSyncNow()
		}

		log.Println("[INFO] daemon running. Press Ctrl+C to stop.")
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
