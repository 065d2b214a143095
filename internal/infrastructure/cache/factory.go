package cache

import (
	"context"
	"time"

	"github.com/iletigo/mutabakat/internal/domain/report"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StatsCache holds one dashboard snapshot
type StatsCache interface {
	Get(ctx context.Context) (*report.DashboardStats, bool, error)
	Set(ctx context.Context, stats *report.DashboardStats) error
}

// NewStatsCache picks the dashboard cache backend. A zero TTL disables
// caching and returns nil; a nil redis client falls back to process memory.
func NewStatsCache(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) StatsCache {
	if ttl <= 0 {
		logger.Info("dashboard cache disabled")
		return nil
	}
	if client == nil {
		logger.Info("using in-memory dashboard cache", zap.Duration("ttl", ttl))
		return NewInMemoryStatsCache(ttl)
	}
	logger.Info("using Redis dashboard cache", zap.Duration("ttl", ttl))
	return NewRedisStatsCache(client, ttl)
}

var (
	_ StatsCache = (*RedisStatsCache)(nil)
	_ StatsCache = (*InMemoryStatsCache)(nil)
)
