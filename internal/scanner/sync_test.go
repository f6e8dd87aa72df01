package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"StockRadar/internal/model"
	"StockRadar/internal/store"
)

// fakeFetcher serves canned series per symbol and can fail or trigger a
// callback on specific symbols.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []string
	fail    map[string]error
	onFetch func(symbol string)
}

func (f *fakeFetcher) Name() string { return "fake" }

func (f *fakeFetcher) Fetch(_ context.Context, symbol string) (model.Series, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.mu.Unlock()
	if f.onFetch != nil {
		f.onFetch(symbol)
	}
	if err, ok := f.fail[symbol]; ok {
		return nil, err
	}
	return risingSeries(10), nil
}

func TestSync_CountsAndContinuesPastFailures(t *testing.T) {
	cache := store.NewMemoryCache()
	ff := &fakeFetcher{fail: map[string]error{"BAD": fmt.Errorf("yahoo: status 500")}}
	syncer := NewSyncer(ff, cache, time.Millisecond)

	count, err := syncer.Sync(context.Background(), []string{"A", "BAD", "B"})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 successes, got %d", count)
	}
	if len(ff.calls) != 3 {
		t.Fatalf("every symbol must be attempted, got %d calls", len(ff.calls))
	}
	if _, err := cache.GetSeries("A"); err != nil {
		t.Errorf("A should be cached: %v", err)
	}
	if _, err := cache.GetSeries("BAD"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("failed symbol must not be cached, got %v", err)
	}
	if _, err := cache.GetMeta(store.MetaLastUpdated); err != nil {
		t.Errorf("last-updated stamp missing: %v", err)
	}
}

func TestSync_StampsEvenWhenNothingSucceeds(t *testing.T) {
	cache := store.NewMemoryCache()
	ff := &fakeFetcher{fail: map[string]error{
		"A": fmt.Errorf("down"), "B": fmt.Errorf("down"),
	}}
	syncer := NewSyncer(ff, cache, time.Millisecond)

	count, err := syncer.Sync(context.Background(), []string{"A", "B"})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 successes, got %d", count)
	}
	if _, err := cache.GetMeta(store.MetaLastUpdated); err != nil {
		t.Errorf("stamp must be written even on a fully failed run: %v", err)
	}
}

func TestSync_PacesBetweenSymbols(t *testing.T) {
	cache := store.NewMemoryCache()
	ff := &fakeFetcher{fail: map[string]error{"BAD": fmt.Errorf("down")}}
	pace := 30 * time.Millisecond
	syncer := NewSyncer(ff, cache, pace)

	start := time.Now()
	if _, err := syncer.Sync(context.Background(), []string{"A", "BAD", "C"}); err != nil {
		t.Fatalf("sync: %v", err)
	}
	// Pacing applies after every symbol, failures included.
	if elapsed := time.Since(start); elapsed < 3*pace {
		t.Fatalf("expected at least %s of pacing, took %s", 3*pace, elapsed)
	}
}

func TestSync_CancelledBetweenSymbols(t *testing.T) {
	cache := store.NewMemoryCache()
	ctx, cancel := context.WithCancel(context.Background())
	ff := &fakeFetcher{}
	ff.onFetch = func(symbol string) {
		if symbol == "B" {
			cancel()
		}
	}
	syncer := NewSyncer(ff, cache, 50*time.Millisecond)

	count, err := syncer.Sync(ctx, []string{"A", "B", "C"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if count != 2 {
		t.Fatalf("completed symbols before cancel must count, got %d", count)
	}
	// Completed writes stay intact, the stamp is not written.
	if _, err := cache.GetSeries("A"); err != nil {
		t.Errorf("A should remain cached: %v", err)
	}
	if _, err := cache.GetSeries("C"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("C must not have been fetched, got %v", err)
	}
	if _, err := cache.GetMeta(store.MetaLastUpdated); !errors.Is(err, store.ErrNotFound) {
		t.Error("cancelled run must not stamp last-updated")
	}
}
