// README: Shipment change feed over Redis Pub/Sub, one channel per shipment.
package shipment

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"porter/internal/types"
)

const channelPrefix = "shipment:"

func Channel(id types.ID) string {
	return channelPrefix + string(id)
}

type Feed struct {
	redis *redis.Client
	log   *zap.Logger
}

func NewFeed(rdb *redis.Client, log *zap.Logger) *Feed {
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{redis: rdb, log: log}
}

func (f *Feed) Publish(ctx context.Context, id types.ID, p Patch) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return f.redis.Publish(ctx, Channel(id), b).Err()
}

// Subscribe delivers every patch published for id to onChange, in order,
// from a single goroutine. The returned func closes the subscription and
// waits for that goroutine to exit; it is safe to call more than once but
// must not be called from inside onChange.
func (f *Feed) Subscribe(ctx context.Context, id types.ID, onChange func(Patch)) (func(), error) {
	sub := f.redis.Subscribe(ctx, Channel(id))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", Channel(id), err)
	}

	msgs := sub.Channel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			var p Patch
			if err := json.Unmarshal([]byte(msg.Payload), &p); err != nil {
				f.log.Warn("dropping malformed shipment patch", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			onChange(p)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = sub.Close()
			<-done
		})
	}, nil
}
