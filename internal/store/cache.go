package store

import (
	"errors"

	"StockRadar/internal/model"
)

// ErrNotFound is returned when a symbol or metadata key has no entry.
var ErrNotFound = errors.New("store: not found")

// MetaLastUpdated keys the timestamp of the last completed sync.
const MetaLastUpdated = "last_updated"

// Cache persists one series per symbol plus scalar metadata. A put always
// replaces the prior value wholesale; there are no partial-series updates.
type Cache interface {
	PutSeries(symbol string, series model.Series) error
	GetSeries(symbol string) (model.Series, error)
	PutMeta(key, value string) error
	GetMeta(key string) (string, error)
	Clear() error
}
