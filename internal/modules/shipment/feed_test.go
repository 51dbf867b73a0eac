package shipment

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

	"porter/internal/types"
)

func TestChannel(t *testing.T) {
	assert.Equal(t, "shipment:20260301NAIAA9A9", Channel("20260301NAIAA9A9"))
}

func TestFeed_PublishSubscribe(t *testing.T) {
	addr := os.Getenv("PORTER_REDIS_ADDR")
	if addr == "" {
		t.Skip("PORTER_REDIS_ADDR not set; skipping integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	feed := NewFeed(rdb, zap.NewNop())
	ctx := context.Background()
	id := types.ID(fmt.Sprintf("FEED%d", time.Now().UnixNano()))

	got := make(chan Patch, 4)
	unsubscribe, err := feed.Subscribe(ctx, id, func(p Patch) { got <- p })
	require.NoError(t, err)

	status := StatusInTransit
	loc := types.Point{Lat: 14.5, Lng: 121}
	require.NoError(t, feed.Publish(ctx, id, Patch{Status: &status}))
	require.NoError(t, feed.Publish(ctx, id, Patch{CurrentLocation: &loc}))

	for i, check := range []func(Patch){
		func(p Patch) { require.NotNil(t, p.Status); assert.Equal(t, status, *p.Status) },
		func(p Patch) { assert.Equal(t, &loc, p.CurrentLocation) },
	} {
		select {
		case p := <-got:
			check(p)
		case <-time.After(2 * time.Second):
			t.Fatalf("patch %d not delivered", i)
		}
	}

	unsubscribe()
	unsubscribe()
	require.NoError(t, feed.Publish(ctx, id, Patch{Status: &status}))
	select {
	case p := <-got:
		t.Fatalf("patch delivered after unsubscribe: %+v", p)
	case <-time.After(100 * time.Millisecond):
	}
}
