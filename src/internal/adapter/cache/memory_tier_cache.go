package cache

import (
	"context"
	"time"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMemoryTierEntries = 10000

// MemoryTierCache is used when no Redis address is configured. It holds at
// most size entries and evicts the least recently used first.
type MemoryTierCache struct {
	entries *expirable.LRU[string, domain.RiskTier]
}

func NewMemoryTierCache(size int, ttl time.Duration) *MemoryTierCache {
	if size <= 0 {
		size = defaultMemoryTierEntries
	}
	return &MemoryTierCache{
		entries: expirable.NewLRU[string, domain.RiskTier](size, nil, ttl),
	}
}

func (c *MemoryTierCache) GetTier(_ context.Context, key string) (domain.RiskTier, bool, error) {
	tier, ok := c.entries.Get(key)
	return tier, ok, nil
}

func (c *MemoryTierCache) SetTier(_ context.Context, key string, tier domain.RiskTier) error {
	c.entries.Add(key, tier)
	return nil
}

func (c *MemoryTierCache) Len() int {
	return c.entries.Len()
}
