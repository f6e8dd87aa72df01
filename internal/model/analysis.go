package model

import "time"

// BlockType indicates the polarity of an order block.
type BlockType string

const (
	BlockBullish BlockType = "bullish"
	BlockBearish BlockType = "bearish"
)

// Trend is a coarse direction label derived from a 50-bar close comparison.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// OrderBlock is a price zone left by a candle that preceded an impulsive
// move. Bullish zones act as support, bearish as resistance.
type OrderBlock struct {
	Type        BlockType
	Top         float64 // Top >= Bottom
	Bottom      float64
	StartTime   time.Time // date of the originating swing bar
	IsMitigated bool      // derived against the full series on every detection
	Strength    float64   // percentage move of the confirming impulse
}

// VCPStatus is the volatility-contraction evaluation at a series' last bar.
type VCPStatus struct {
	IsVCP            bool
	ContractionRatio float64
	VolumeRatio      float64
	TightnessScore   float64 // 0-100, higher is tighter
}

// StockAnalysis aggregates one symbol's scan result. It is created fresh
// per scan and never mutated afterwards.
type StockAnalysis struct {
	Symbol           string
	Price            float64
	Change           float64 // day-over-day fraction
	OrderBlocks      []OrderBlock
	VCP              VCPStatus
	FundamentalScore float64 // 0-100
	Score            float64 // strategy score, 0-100
	Trend            Trend
	ScannedAt        time.Time
}
