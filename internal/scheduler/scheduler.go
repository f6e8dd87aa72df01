package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"StockRadar/internal/scanner"
)

// Scheduler runs the periodic full-universe sync on a cron spec.
type Scheduler struct {
	Cron    *cron.Cron
	Syncer  *scanner.Syncer
	Symbols []string
	Ctx     context.Context
}

// NewScheduler creates a Scheduler bound to the given syncer and universe.
func NewScheduler(ctx context.Context, syncer *scanner.Syncer, symbols []string) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Syncer:  syncer,
		Symbols: symbols,
		Ctx:     ctx,
	}
}

// Register adds the sync task under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.runSync); err != nil {
		return fmt.Errorf("register sync task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunSyncNow executes the sync task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunSyncNow() {
	s.runSync()
}

func (s *Scheduler) runSync() {
	log.Println("[INFO] running scheduled sync")
	count, err := s.Syncer.Sync(s.Ctx, s.Symbols)
	if err != nil {
		log.Printf("[ERROR] scheduled sync stopped after %d symbols: %v", count, err)
		return
	}
	log.Printf("[INFO] scheduled sync finished: %d/%d symbols", count, len(s.Symbols))
}
