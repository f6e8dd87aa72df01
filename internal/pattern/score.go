package pattern

import (
	"math"

	"StockRadar/internal/model"
)

const fundamentalWindow = 60

// FundamentalScore is a heuristic 0-100 proxy for trend consistency and
// volume stability over the last 60 bars (fewer if the series is shorter).
// It is not derived from financial statements.
func FundamentalScore(s model.Series) float64 {
	window := s
	if len(s) > fundamentalWindow {
		window = s[len(s)-fundamentalWindow:]
	}
	if len(window) < 2 {
		return 0
	}

	up, total := 0, 0
	for i := 1; i < len(window); i++ {
		if window[i].Close > window[i-1].Close {
			up++
		}
		total++
	}
	trendQuality := 100 * float64(up) / float64(total)

	meanVol := avgVolume(window)
	volVolatility := math.Abs(window[len(window)-1].Volume - meanVol)
	volScore := 100 - volVolatility/1_000_000
	if volScore < 0 {
		volScore = 0
	}

	return clamp(math.Round(0.7*trendQuality + 0.3*volScore))
}

// StrategyScore rates an analysis under the selected strategy. The result
// is clamped to [0,100] even though neither defined variant can exceed it.
func StrategyScore(a *model.StockAnalysis, price float64, strat model.Strategy) float64 {
	var score float64
	switch strat {
	case model.StrategyOrderBlock:
		for _, b := range a.OrderBlocks {
			if b.Type == model.BlockBullish && !b.IsMitigated &&
				price >= b.Bottom*0.99 && price <= b.Top*1.05 {
				score += 70
				break
			}
		}
		if a.Trend == model.TrendBullish {
			score += 30
		}
	case model.StrategyVCPBreakout:
		if a.VCP.IsVCP {
			score += 60
		}
		score += 0.3 * a.VCP.TightnessScore
		if a.Trend == model.TrendBullish {
			score += 10
		}
	}
	return clamp(score)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
