package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"StockRadar/internal/model"
	"StockRadar/internal/scanner"
)

var (
	scanStrategy string
	scanTop      int
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rank cached symbols against a strategy",
	Run: func(cmd *cobra.Command, args []string) {
		strat, err := model.ParseStrategy(scanStrategy)
		if err != nil {
			log.Fatalf("[FATAL] %v", err)
		}

		cfg := loadConfig()
		cache := openCache(cfg)
		defer cache.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		results, err := scanner.NewScanner(cache).Scan(ctx, cfg.Symbols, strat)
		if err != nil {
			log.Fatalf("[FATAL] scan aborted: %v", err)
		}
		if scanTop > 0 && len(results) > scanTop {
			results = results[:scanTop]
		}

		fmt.Printf("%-12s %10s %8s %7s %9s %5s %4s\n",
			"SYMBOL", "PRICE", "CHG%", "SCORE", "TREND", "VCP", "OBs")
		for _, a := range results {
			vcp := "-"
			if a.VCP.IsVCP {
				vcp = "yes"
			}
			fmt.Printf("%-12s %10.2f %+7.2f%% %7.1f %9s %5s %4d\n",
				a.Symbol, a.Price, a.Change*100, a.Score, a.Trend, vcp, len(a.OrderBlocks))
		}
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanStrategy, "strategy", string(model.StrategyOrderBlock),
		"scoring strategy: ob_detection or vcp_breakout")
	scanCmd.Flags().IntVar(&scanTop, "top", 0, "limit output to the top N results (0 = all)")
	rootCmd.AddCommand(scanCmd)
}
