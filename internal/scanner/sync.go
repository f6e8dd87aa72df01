package scanner

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockRadar/internal/fetcher"
	"StockRadar/internal/store"
)

// Syncer runs the online write path: fetch every symbol in the universe
// and write through the cache. Symbols are processed strictly sequentially
// with a fixed pacing delay between them; that delay, not the tracker, is
// what keeps the request rate under the upstream quota.
type Syncer struct {
	Fetcher fetcher.Fetcher
	Cache   store.Cache
	Pace    time.Duration
}

func NewSyncer(f fetcher.Fetcher, cache store.Cache, pace time.Duration) *Syncer {
	return &Syncer{Fetcher: f, Cache: cache, Pace: pace}
}

// Sync fetches and caches every symbol, returning the success count.
// Individual failures are logged and the run continues. On completion the
// last-updated metadata is stamped even if nothing succeeded. Cancellation
// between symbols returns with all completed writes intact.
func (s *Syncer) Sync(ctx context.Context, symbols []string) (int, error) {
	success := 0
	for i, sym := range symbols {
		select {
		case <-ctx.Done():
			return success, ctx.Err()
		default:
		}

		series, err := s.Fetcher.Fetch(ctx, sym)
		if err != nil {
			log.Printf("[WARN] sync %s: fetch failed: %v", sym, err)
		} else if err := s.Cache.PutSeries(sym, series); err != nil {
			log.Printf("[WARN] sync %s: cache write failed: %v", sym, err)
		} else {
			success++
			log.Printf("[INFO] synced %s (%d bars) [%d/%d]", sym, len(series), i+1, len(symbols))
		}

		// Pace after every symbol regardless of outcome.
		select {
		case <-ctx.Done():
			return success, ctx.Err()
		case <-time.After(s.Pace):
		}
	}

	if err := s.Cache.PutMeta(store.MetaLastUpdated, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return success, fmt.Errorf("stamp %s: %w", store.MetaLastUpdated, err)
	}
	log.Printf("[INFO] sync complete: %d/%d symbols", success, len(symbols))
	return success, nil
}
