// Package cache implements the statistics cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

const keyPrefix = "expense-tracker:stats"

// redisStatsCache implements the adapter.StatsCache interface.
// Entries are namespaced by a per-owner version; bumping the version
// orphans every entry of the owner, which then expire through their TTL.
type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache creates a new Redis-backed stats cache.
func NewRedisStatsCache(client *redis.Client, ttl time.Duration) adapter.StatsCache {
	return &redisStatsCache{
		client: client,
		ttl:    ttl,
	}
}

// GetMonthly returns the cached aggregate, or nil on a miss, together with
// the owner's version at the time of the read.
func (c *redisStatsCache) GetMonthly(ctx context.Context, ownerID uuid.UUID, year, month int) (*entity.MonthlyAggregate, int64, error) {
	version, err := c.version(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	payload, err := c.client.Get(ctx, monthlyKey(ownerID, version, year, month)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, version, nil
		}
		return nil, version, fmt.Errorf("failed to read cached aggregate: %w", err)
	}

	var aggregate entity.MonthlyAggregate
	if err := json.Unmarshal(payload, &aggregate); err != nil {
		return nil, version, fmt.Errorf("failed to decode cached aggregate: %w", err)
	}
	return &aggregate, version, nil
}

// SetMonthly stores the aggregate under the given version. When the owner
// has been invalidated since that version was read, the entry is orphaned.
func (c *redisStatsCache) SetMonthly(ctx context.Context, ownerID uuid.UUID, version int64, year, month int, aggregate *entity.MonthlyAggregate) error {
	payload, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("failed to encode aggregate: %w", err)
	}

	if err := c.client.Set(ctx, monthlyKey(ownerID, version, year, month), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache aggregate: %w", err)
	}
	return nil
}

// Invalidate bumps the owner's version.
func (c *redisStatsCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	if err := c.client.Incr(ctx, versionKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats cache: %w", err)
	}
	return nil
}

func (c *redisStatsCache) version(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(ownerID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read stats cache version: %w", err)
	}
	return version, nil
}

func versionKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:version", keyPrefix, ownerID)
}

func monthlyKey(ownerID uuid.UUID, version int64, year, month int) string {
	return fmt.Sprintf("%s:%s:v%d:monthly:%04d-%02d", keyPrefix, ownerID, version, year, month)
}
