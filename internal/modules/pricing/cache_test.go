package pricing

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCachedFeed_ReadThrough(t *testing.T) {
	redisAddr := os.Getenv("PORTER_REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("PORTER_REDIS_ADDR not set; skipping integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	ctx := context.Background()
	feed := newFakeFeed()
	code := fmt.Sprintf("TEST%d", time.Now().UnixNano())
	feed.prices[code] = sampleEntries()
	cached := NewCachedFeed(feed, rdb, time.Minute, zap.NewNop())
	defer rdb.Del(ctx, regionKeyPrefix+code)

	first, err := cached.ListCityPrices(ctx, code)
	require.NoError(t, err)
	second, err := cached.ListCityPrices(ctx, code)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, feed.priceCalls)

	ttl, err := rdb.TTL(ctx, regionKeyPrefix+code).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
