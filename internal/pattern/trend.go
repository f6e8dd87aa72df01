package pattern

import "StockRadar/internal/model"

const trendLookback = 50

// ClassifyTrend labels the series bullish when the last close sits above
// the close 50 bars earlier. Series shorter than 51 bars carry too little
// history to call either way and classify neutral.
func ClassifyTrend(s model.Series) model.Trend {
	if len(s) < trendLookback+1 {
		return model.TrendNeutral
	}
	if s[len(s)-1].Close > s[len(s)-1-trendLookback].Close {
		return model.TrendBullish
	}
	return model.TrendBearish
}
