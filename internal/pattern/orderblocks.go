package pattern

import (
	"StockRadar/internal/model"
)

const (
	swingLookback = 20 // bars of context required before a swing candidate
	forwardMargin = 5  // bars reserved after a candidate for confirmation
	confirmOffset = 3  // impulse must complete within 3 bars
	impulseUp     = 1.015
	impulseDown   = 0.985
)

// DetectOrderBlocks scans the series for swing lows/highs that preceded an
// impulsive move and returns the resulting zones. Mitigation is recomputed
// against the full series on every call; nothing is cached between calls.
func DetectOrderBlocks(s model.Series) []model.OrderBlock {
	if len(s) < swingLookback+forwardMargin+1 {
		return nil
	}

	var blocks []model.OrderBlock
	for i := swingLookback; i <= len(s)-forwardMargin-1; i++ {
		bar := s[i]
		confirm := s[i+confirmOffset].Close

		// A bar may qualify as both swing low and swing high; both sides
		// are evaluated independently.
		if bar.Low < s[i-1].Low && bar.Low < s[i+1].Low {
			if confirm > bar.High*impulseUp {
				blocks = append(blocks, model.OrderBlock{
					Type:      model.BlockBullish,
					Top:       max(bar.Open, bar.Close),
					Bottom:    bar.Low,
					StartTime: bar.Date,
					Strength:  (confirm - bar.Low) / bar.Low * 100,
				})
			}
		}
		if bar.High > s[i-1].High && bar.High > s[i+1].High {
			if confirm < bar.Low*impulseDown {
				blocks = append(blocks, model.OrderBlock{
					Type:      model.BlockBearish,
					Top:       bar.High,
					Bottom:    min(bar.Open, bar.Close),
					StartTime: bar.Date,
					Strength:  (bar.High - confirm) / bar.High * 100,
				})
			}
		}
	}

	for i := range blocks {
		blocks[i].IsMitigated = isMitigated(s, &blocks[i])
	}
	return blocks
}

// isMitigated reports whether any bar after the block's origin re-entered
// the zone: a low under a bullish bottom, or a high over a bearish top.
func isMitigated(s model.Series, b *model.OrderBlock) bool {
	start := s.IndexOfDate(b.StartTime) + 1 // origin not found scans from 0
	for i := start; i < len(s); i++ {
		switch b.Type {
		case model.BlockBullish:
			if s[i].Low < b.Bottom {
				return true
			}
		case model.BlockBearish:
			if s[i].High > b.Top {
				return true
			}
		}
	}
	return false
}
