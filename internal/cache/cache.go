package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

const snapshotKey = "trademan:snapshot"

// Snapshot is the cached copy of one ticker fetch.
type Snapshot struct {
	FetchedAt time.Time               `json:"fetched_at"`
	Tickers   map[string]model.Ticker `json:"tickers"`
}

// SnapshotCache stores the most recent ticker snapshot in Redis.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection.
func New(addr, password string, db int, ttl time.Duration) (*SnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &SnapshotCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// Ping checks the Redis connection.
func (c *SnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Set stores a snapshot, replacing any previous one.
func (c *SnapshotCache) Set(ctx context.Context, tickers map[string]model.Ticker, fetchedAt time.Time) error {
	snap := Snapshot{FetchedAt: fetchedAt, Tickers: tickers}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot in redis: %w", err)
	}
	return nil
}

// Get returns the last stored snapshot, or nil when none exists or the
// TTL has expired.
func (c *SnapshotCache) Get(ctx context.Context) (*Snapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot from redis: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Close releases the Redis connection.
func (c *SnapshotCache) Close() error {
	return c.client.Close()
}
