package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sis-reg-api/pkg/errors"
)

// SnapshotRepository caches catalog payloads (course pool, current term) in
// Redis so the gateway can serve stale data when the backend is unreachable.
// A nil client degrades every operation to a no-op.
type SnapshotRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSnapshotRepository constructs a snapshot repository.
func NewSnapshotRepository(client *redis.Client, logger *zap.Logger) *SnapshotRepository {
	return &SnapshotRepository{client: client, logger: logger}
}

// Get retrieves and unmarshals the cached snapshot into dest.
func (r *SnapshotRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal snapshot for %s: %w", key, err)
	}

	return nil
}

// Set marshals the snapshot and stores it with the given TTL.
func (r *SnapshotRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot for %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Invalidate removes cached snapshots matching the provided pattern.
func (r *SnapshotRepository) Invalidate(ctx context.Context, pattern string) error {
	if r.client == nil {
		return nil
	}

	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis delete %s: %w", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan pattern %s: %w", pattern, err)
	}

	return nil
}

// Close releases the underlying Redis connection if present.
func (r *SnapshotRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
