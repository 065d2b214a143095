package report

import (
	"context"
	"testing"
	"time"

	"github.com/iletigo/mutabakat/internal/domain/report"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type mockDashboardRepo struct {
	mock.Mock
}

func (m *mockDashboardRepo) StatusStats(ctx context.Context) ([]report.StatusStat, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]report.StatusStat)
	return rows, args.Error(1)
}

func (m *mockDashboardRepo) Totals(ctx context.Context) (report.Totals, error) {
	args := m.Called(ctx)
	return args.Get(0).(report.Totals), args.Error(1)
}

func (m *mockDashboardRepo) RecentActivity(ctx context.Context, limit int) ([]report.RecentActivity, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]report.RecentActivity)
	return rows, args.Error(1)
}

func (m *mockDashboardRepo) OverdueCount(ctx context.Context, today time.Time) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}

func expectAggregates(repo *mockDashboardRepo, times int) {
	repo.On("StatusStats", mock.Anything).Return([]report.StatusStat{{
		Status:          "pending",
		Count:           2,
		TotalDifference: decimal.NewFromInt(300),
		AvgDifference:   decimal.NewFromInt(150),
	}}, nil).Times(times)
	repo.On("Totals", mock.Anything).Return(report.Totals{TotalReconciliations: 2, TotalCompanies: 1, TotalUsers: 3, ActivePeriods: 4}, nil).Times(times)
	repo.On("RecentActivity", mock.Anything, report.RecentActivityLimit).Return(nil, nil).Times(times)
	repo.On("OverdueCount", mock.Anything, testNow).Return(int64(1), nil).Times(times)
}

func TestComputeStats(t *testing.T) {
	repo := &mockDashboardRepo{}
	expectAggregates(repo, 1)
	svc := NewDashboardService(repo, nil, shared.FixedClock(testNow), zap.NewNop())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.ReconciliationStats, 1)
	assert.Equal(t, int64(2), stats.ReconciliationStats[0].Count)
	assert.Equal(t, int64(4), stats.Totals.ActivePeriods)
	assert.NotNil(t, stats.RecentActivity)
	assert.Empty(t, stats.RecentActivity)
	assert.Equal(t, int64(1), stats.OverdueCount)
	repo.AssertExpectations(t)
}

func TestStats_ServedFromCache(t *testing.T) {
	repo := &mockDashboardRepo{}
	expectAggregates(repo, 1)
	svc := NewDashboardService(repo, cache.NewInMemoryStatsCache(time.Minute), shared.FixedClock(testNow), zap.NewNop())

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	second, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Totals, second.Totals)
	repo.AssertNumberOfCalls(t, "StatusStats", 1)
}

func TestStats_PropagatesErrors(t *testing.T) {
	repo := &mockDashboardRepo{}
	repo.On("StatusStats", mock.Anything).Return(nil, assert.AnError)
	svc := NewDashboardService(repo, nil, shared.FixedClock(testNow), zap.NewNop())

	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
