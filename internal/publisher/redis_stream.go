// Package publisher pushes reconciliation events onto Redis streams
// for downstream consumers (dashboards, notification bots). Optional:
// the pipeline works without it.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// PlayerStream receives one event per reconciled player.
	PlayerStream = "ratings.players"

	// RunStream receives one event per completed run.
	RunStream = "ratings.runs"
)

// RedisPublisher publishes events to Redis streams.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a stream publisher from an existing
// client, typically shared with the snapshot cache.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client: client,
	}
}

// PublishPlayerUpdate publishes one reconciled player record.
func (rp *RedisPublisher) PublishPlayerUpdate(ctx context.Context, player interface{}) error {
	return rp.publish(ctx, PlayerStream, player)
}

// PublishRunComplete publishes a run summary.
func (rp *RedisPublisher) PublishRunComplete(ctx context.Context, summary interface{}) error {
	return rp.publish(ctx, RunStream, summary)
}

func (rp *RedisPublisher) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
