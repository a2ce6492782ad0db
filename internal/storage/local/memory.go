package local

import (
	"context"
	"sync"

	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// MemoryCache is an in-process LocalCache.
type MemoryCache struct {
	mu     sync.RWMutex
	values map[string][]byte
}

var _ interfaces.LocalCache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{values: make(map[string][]byte)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return append([]byte(nil), value...), nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = append([]byte(nil), value...)
	return nil
}
