// Package cache provides an optional Redis cache for parsed FIDE
// snapshots. The standard rating list is a large monthly download, so
// a parsed snapshot is kept for a day under its period label and
// reused across runs. Without a configured Redis the pipeline simply
// downloads every time.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/ratingsync/internal/fide"
)

// SnapshotTTL is how long a cached snapshot stays valid. Lists change
// once a month; a day keeps repeated runs cheap without going stale.
const SnapshotTTL = 24 * time.Hour

// SnapshotCache caches parsed rating list snapshots in Redis.
type SnapshotCache struct {
	client *redis.Client
}

// NewSnapshotCache creates a snapshot cache from a Redis URL.
func NewSnapshotCache(redisURL string) (*SnapshotCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &SnapshotCache{
		client: client,
	}, nil
}

// Close closes the Redis connection.
func (sc *SnapshotCache) Close() error {
	return sc.client.Close()
}

// Client returns the underlying Redis client.
func (sc *SnapshotCache) Client() *redis.Client {
	return sc.client
}

// HealthCheck pings Redis to verify the connection.
func (sc *SnapshotCache) HealthCheck(ctx context.Context) error {
	return sc.client.Ping(ctx).Err()
}

// Get returns the cached snapshot for a period label, if present.
func (sc *SnapshotCache) Get(ctx context.Context, period string) (*fide.Snapshot, bool) {
	data, err := sc.client.Get(ctx, snapshotKey(period)).Bytes()
	if err != nil {
		return nil, false
	}

	var snap fide.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}

	return &snap, true
}

// Set stores a snapshot under its period label.
func (sc *SnapshotCache) Set(ctx context.Context, snap *fide.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return sc.client.Set(ctx, snapshotKey(snap.Period), data, SnapshotTTL).Err()
}

func snapshotKey(period string) string {
	return fmt.Sprintf("ratingsync:snapshot:%s", period)
}
