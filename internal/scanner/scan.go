package scanner

import (
	"context"
	"log"
	"sort"
	"time"

	"StockRadar/internal/model"
	"StockRadar/internal/pattern"
	"StockRadar/internal/store"
)

// Scanner runs the offline read path: cached series in, ranked analyses
// out. It never touches the network.
type Scanner struct {
	Cache store.Cache
}

func NewScanner(cache store.Cache) *Scanner {
	return &Scanner{Cache: cache}
}

// Scan analyzes each symbol sequentially and returns the results sorted
// descending by strategy score (stable, so ties keep input order).
// Per-symbol failures are logged and skipped; the batch always continues.
// Cancellation is honored between symbols.
func (s *Scanner) Scan(ctx context.Context, symbols []string, strat model.Strategy) ([]model.StockAnalysis, error) {
	results := make([]model.StockAnalysis, 0, len(symbols))
	for _, sym := range symbols {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		series, err := s.Cache.GetSeries(sym)
		if err != nil {
			log.Printf("[WARN] scan %s: no cached series, skipping: %v", sym, err)
			continue
		}
		if len(series) == 0 {
			log.Printf("[WARN] scan %s: empty series, skipping", sym)
			continue
		}
		results = append(results, Analyze(sym, series, strat))
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}

// Analyze builds a fresh StockAnalysis for one symbol from its series.
func Analyze(symbol string, series model.Series, strat model.Strategy) model.StockAnalysis {
	a := model.StockAnalysis{
		Symbol:           symbol,
		Price:            series.LastClose(),
		Change:           series.Change(),
		OrderBlocks:      pattern.DetectOrderBlocks(series),
		VCP:              pattern.DetectVCP(series),
		FundamentalScore: pattern.FundamentalScore(series),
		Trend:            pattern.ClassifyTrend(series),
		ScannedAt:        time.Now(),
	}
	a.Score = pattern.StrategyScore(&a, a.Price, strat)
	return a
}
