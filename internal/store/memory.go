package store

import (
	"sync"

	"StockRadar/internal/model"
)

// MemoryCache is an in-memory Cache used when no database is configured
// and as a fake in orchestrator tests.
type MemoryCache struct {
	mu     sync.Mutex
	series map[string]model.Series
	meta   map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		series: make(map[string]model.Series),
		meta:   make(map[string]string),
	}
}

func (c *MemoryCache) PutSeries(symbol string, series model.Series) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make(model.Series, len(series))
	copy(cp, series)
	c.series[symbol] = cp
	return nil
}

func (c *MemoryCache) GetSeries(symbol string) (model.Series, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.series[symbol]
	if !ok || len(s) == 0 {
		return nil, ErrNotFound
	}
	cp := make(model.Series, len(s))
	copy(cp, s)
	return cp, nil
}

func (c *MemoryCache) PutMeta(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meta[key] = value
	return nil
}

func (c *MemoryCache) GetMeta(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.meta[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (c *MemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.series = make(map[string]model.Series)
	c.meta = make(map[string]string)
	return nil
}
