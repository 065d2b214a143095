package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iletigo/mutabakat/internal/domain/report"
	"github.com/redis/go-redis/v9"
)

// DashboardStatsKey is the redis key of the cached snapshot
const DashboardStatsKey = "mutabakat:dashboard:stats"

// RedisStatsCache stores the dashboard snapshot as JSON with a TTL
type RedisStatsCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStatsCache creates a redis-backed snapshot cache
func NewRedisStatsCache(client redis.UniversalClient, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot; ok is false on a miss
func (c *RedisStatsCache) Get(ctx context.Context) (*report.DashboardStats, bool, error) {
	raw, err := c.client.Get(ctx, DashboardStatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read dashboard cache: %w", err)
	}
	var stats report.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("failed to decode dashboard cache: %w", err)
	}
	return &stats, true, nil
}

// Set stores the snapshot for the configured TTL
func (c *RedisStatsCache) Set(ctx context.Context, stats *report.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard cache: %w", err)
	}
	if err := c.client.Set(ctx, DashboardStatsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dashboard cache: %w", err)
	}
	return nil
}

// InMemoryStatsCache keeps one snapshot in process memory
type InMemoryStatsCache struct {
	mu        sync.RWMutex
	stats     *report.DashboardStats
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewInMemoryStatsCache creates a process-local snapshot cache
func NewInMemoryStatsCache(ttl time.Duration) *InMemoryStatsCache {
	return &InMemoryStatsCache{ttl: ttl, now: time.Now}
}

// Get returns the snapshot while it is fresh
func (c *InMemoryStatsCache) Get(_ context.Context) (*report.DashboardStats, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stats == nil || !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}
	snapshot := *c.stats
	return &snapshot, true, nil
}

// Set replaces the snapshot
func (c *InMemoryStatsCache) Set(_ context.Context, stats *report.DashboardStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := *stats
	c.stats = &snapshot
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}
