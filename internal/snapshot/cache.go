package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/camerpulse/camerpulse-sub015/internal/pipeline"
)

const latestKey = "personas:snapshot:latest"

// ErrNoSnapshot is returned before the first pass has completed.
var ErrNoSnapshot = errors.New("no snapshot available")

// Snapshot wraps one pass result with the time it was computed, so
// dashboard reads never race a recompute and survive restarts.
type Snapshot struct {
	Result     *pipeline.Result `json:"result"`
	ComputedAt time.Time        `json:"computed_at"`
}

// Cache stores the latest snapshot in Redis.
type Cache struct {
	rdb *redis.Client
}

func NewCache(redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &Cache{rdb: redis.NewClient(opts)}, nil
}

// Store replaces the latest snapshot.
func (c *Cache) Store(ctx context.Context, snap *Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := c.rdb.Set(ctx, latestKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot, or ErrNoSnapshot before the
// first pass.
func (c *Cache) Latest(ctx context.Context) (*Snapshot, error) {
	payload, err := c.rdb.Get(ctx, latestKey).Result()
	if err == redis.Nil {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
