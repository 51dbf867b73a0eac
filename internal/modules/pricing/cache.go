// README: Redis read-through cache in front of the pricing feed.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	regionsKey      = "pricing:regions"
	regionKeyPrefix = "pricing:region:"
)

// CachedFeed serves the feed from Redis and falls back to next on a miss.
// Redis failures are logged and never fail the lookup.
type CachedFeed struct {
	next  Feed
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedFeed(next Feed, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedFeed {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedFeed{next: next, redis: rdb, ttl: ttl, log: log}
}

func (c *CachedFeed) ListRegions(ctx context.Context) ([]Region, error) {
	return readThrough(ctx, c, regionsKey, func() ([]Region, error) {
		return c.next.ListRegions(ctx)
	})
}

func (c *CachedFeed) ListCityPrices(ctx context.Context, regionCode string) ([]Entry, error) {
	return readThrough(ctx, c, regionKeyPrefix+regionCode, func() ([]Entry, error) {
		return c.next.ListCityPrices(ctx, regionCode)
	})
}

// Invalidate drops every cached pricing key, used after the feed is reseeded.
func (c *CachedFeed) Invalidate(ctx context.Context) error {
	keys := []string{regionsKey}
	iter := c.redis.Scan(ctx, 0, regionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.redis.Del(ctx, keys...).Err()
}

func readThrough[T any](ctx context.Context, c *CachedFeed, key string, load func() ([]T, error)) ([]T, error) {
	raw, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []T
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		c.log.Warn("discarding corrupt pricing cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("pricing cache read failed", zap.String("key", key), zap.Error(err))
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	// Empty lists are not cached so a freshly seeded feed shows up at once.
	if len(out) == 0 {
		return out, nil
	}
	b, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	if err := c.redis.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.log.Warn("pricing cache write failed", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}
