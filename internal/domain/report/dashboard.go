package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecentActivityLimit is how many log entries the dashboard shows
const RecentActivityLimit = 10

// StatusStat aggregates reconciliations of one status over |difference|
type StatusStat struct {
	Status          string          `json:"status"`
	Count           int64           `json:"count"`
	TotalDifference decimal.Decimal `json:"total_difference"`
	AvgDifference   decimal.Decimal `json:"avg_difference"`
}

// Totals are the global counters
type Totals struct {
	TotalReconciliations int64 `json:"total_reconciliations"`
	TotalCompanies       int64 `json:"total_companies"`
	TotalUsers           int64 `json:"total_users"`
	ActivePeriods        int64 `json:"active_periods"`
}

// RecentActivity is one activity entry joined to the actor's name
type RecentActivity struct {
	Action    string     `json:"action"`
	TableName string     `json:"table_name"`
	RecordID  *uuid.UUID `json:"record_id"`
	CreatedAt time.Time  `json:"created_at"`
	UserName  string     `json:"user_name"`
}

// DashboardStats is the point-in-time dashboard snapshot
type DashboardStats struct {
	ReconciliationStats []StatusStat     `json:"reconciliation_stats"`
	Totals              Totals           `json:"totals"`
	RecentActivity      []RecentActivity `json:"recent_activity"`
	OverdueCount        int64            `json:"overdue_count"`
}

// DashboardRepository runs the four independent aggregates
type DashboardRepository interface {
	StatusStats(ctx context.Context) ([]StatusStat, error)
	Totals(ctx context.Context) (Totals, error)
	RecentActivity(ctx context.Context, limit int) ([]RecentActivity, error)
	// OverdueCount counts open reconciliations due strictly before today
	OverdueCount(ctx context.Context, today time.Time) (int64, error)
}
