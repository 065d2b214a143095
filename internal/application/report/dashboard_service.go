// Package report computes the dashboard snapshot.
package report

import (
	"context"
	"fmt"

	"github.com/iletigo/mutabakat/internal/domain/report"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"go.uber.org/zap"
)

// StatsCache stores the latest snapshot. Implementations expire entries
// on their own.
type StatsCache interface {
	Get(ctx context.Context) (*report.DashboardStats, bool, error)
	Set(ctx context.Context, stats *report.DashboardStats) error
}

// DashboardService aggregates the dashboard statistics
type DashboardService struct {
	repo   report.DashboardRepository
	cache  StatsCache
	clock  shared.Clock
	logger *zap.Logger
}

// NewDashboardService creates the service. A nil cache computes every time.
func NewDashboardService(repo report.DashboardRepository, cache StatsCache, clock shared.Clock, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, cache: cache, clock: clock, logger: logger}
}

// Stats returns the dashboard snapshot, served from cache when a fresh
// one is available. Cache failures degrade to a direct computation.
func (s *DashboardService) Stats(ctx context.Context) (*report.DashboardStats, error) {
	if s.cache != nil {
		stats, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("Dashboard cache read failed", zap.Error(err))
		} else if ok {
			return stats, nil
		}
	}

	stats, err := s.ComputeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn("Dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// ComputeStats runs the four aggregates against the store
func (s *DashboardService) ComputeStats(ctx context.Context) (*report.DashboardStats, error) {
	byStatus, err := s.repo.StatusStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("status stats: %w", err)
	}
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}
	recent, err := s.repo.RecentActivity(ctx, report.RecentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	overdue, err := s.repo.OverdueCount(ctx, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("overdue count: %w", err)
	}

	if byStatus == nil {
		byStatus = []report.StatusStat{}
	}
	if recent == nil {
		recent = []report.RecentActivity{}
	}
	return &report.DashboardStats{
		ReconciliationStats: byStatus,
		Totals:              totals,
		RecentActivity:      recent,
		OverdueCount:        overdue,
	}, nil
}
