// internal/persist/redis.go
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink stores the snapshot as a single JSON value under one key.
// Environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
//   - REDIS_SNAPSHOT_KEY (default "bigbrain:snapshot")
type RedisSink struct {
	client *redis.Client
	key    string
}

// NewRedisSink connects to Redis and verifies the connection.
func NewRedisSink(ctx context.Context) (*RedisSink, error) {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   getEnvInt("REDIS_DB", 0),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect to Redis at %s: %w", addr, err)
	}

	return &RedisSink{
		client: client,
		key:    getEnv("REDIS_SNAPSHOT_KEY", "bigbrain:snapshot"),
	}, nil
}

func (r *RedisSink) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", r.key, err)
	}
	return nil
}

func (r *RedisSink) Load(ctx context.Context) (*Snapshot, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", r.key, err)
	}

	snap := NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (r *RedisSink) Close() error {
	return r.client.Close()
}
