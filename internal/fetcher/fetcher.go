package fetcher

import (
	"context"

	"StockRadar/internal/model"
)

// Fetcher retrieves one symbol's daily OHLCV series from an upstream source.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) (model.Series, error)
	Name() string
}
