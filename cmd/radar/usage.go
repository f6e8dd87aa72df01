package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"StockRadar/internal/quota"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show request counters against the documented upstream budget",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		u := newTracker(cfg).Snapshot()

		fmt.Printf("minute: %4d / %d\n", u.Minute, quota.BudgetPerMinute)
		fmt.Printf("hour:   %4d / %d\n", u.Hour, quota.BudgetPerHour)
		fmt.Printf("day:    %4d / %d\n", u.Day, quota.BudgetPerDay)
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
}
