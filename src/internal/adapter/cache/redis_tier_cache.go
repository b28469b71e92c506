package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/redis/go-redis/v9"
)

const tierKeyPrefix = "quoting:risk-tier:"

func tierKey(key string) string {
	return tierKeyPrefix + key
}

// RedisTierCache keeps scored risk tiers so repeated simulations with the
// same scoring input skip the policy lookup.
type RedisTierCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTierCache(addr, password string, db int, ttl time.Duration) *RedisTierCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisTierCache{client: client, ttl: ttl}
}

func (c *RedisTierCache) GetTier(ctx context.Context, key string) (domain.RiskTier, bool, error) {
	val, err := c.client.Get(ctx, tierKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get tier: %w", err)
	}

	tier, err := strconv.Atoi(val)
	if err != nil || tier < int(domain.RiskTierMin) || tier > int(domain.RiskTierMax) {
		return 0, false, nil
	}
	return domain.RiskTier(tier), true, nil
}

func (c *RedisTierCache) SetTier(ctx context.Context, key string, tier domain.RiskTier) error {
	if err := c.client.Set(ctx, tierKey(key), strconv.Itoa(int(tier)), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set tier: %w", err)
	}
	return nil
}

func (c *RedisTierCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisTierCache) Close() error {
	return c.client.Close()
}
