// README: Redis Pub/Sub publisher for assignment decisions.
package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const defaultChannel = "assignments:decided"

type RedisPublisher struct {
	redis   *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = defaultChannel
	}
	return &RedisPublisher{redis: rdb, channel: channel}
}

func (p *RedisPublisher) PublishAssignment(ctx context.Context, d Decision) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return p.redis.Publish(ctx, p.channel, payload).Err()
}
