package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/report"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDashboardRepository runs the dashboard aggregates
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

type statusStatRow struct {
	Status          string
	Count           int64
	TotalDifference decimal.Decimal
	AvgDifference   decimal.Decimal
}

// StatusStats groups by status over the absolute difference
func (r *GormDashboardRepository) StatusStats(ctx context.Context) ([]report.StatusStat, error) {
	var rows []statusStatRow
	if err := r.db.WithContext(ctx).
		Model(&models.ReconciliationModel{}).
		Select(`status,
			COUNT(*) AS count,
			COALESCE(SUM(ABS(our_amount - their_amount)), 0) AS total_difference,
			COALESCE(AVG(ABS(our_amount - their_amount)), 0) AS avg_difference`).
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	stats := make([]report.StatusStat, len(rows))
	for i, row := range rows {
		stats[i] = report.StatusStat{
			Status:          row.Status,
			Count:           row.Count,
			TotalDifference: row.TotalDifference.Round(2),
			AvgDifference:   row.AvgDifference.Round(2),
		}
	}
	return stats, nil
}

// Totals counts reconciliations, active companies, active users and active periods
func (r *GormDashboardRepository) Totals(ctx context.Context) (report.Totals, error) {
	var t report.Totals
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.ReconciliationModel{}).Count(&t.TotalReconciliations).Error; err != nil {
		return t, err
	}
	if err := db.Model(&models.CompanyModel{}).Where("is_active = ?", true).Count(&t.TotalCompanies).Error; err != nil {
		return t, err
	}
	if err := db.Model(&models.UserModel{}).Where("is_active = ?", true).Count(&t.TotalUsers).Error; err != nil {
		return t, err
	}
	if err := db.Model(&models.PeriodModel{}).
		Where("status = ?", reconciliation.PeriodActive).
		Count(&t.ActivePeriods).Error; err != nil {
		return t, err
	}
	return t, nil
}

type recentActivityRow struct {
	Action    string
	TableName string
	RecordID  *uuid.UUID
	CreatedAt time.Time
	FirstName *string
	LastName  *string
}

// RecentActivity returns the newest entries with the actor's display name
func (r *GormDashboardRepository) RecentActivity(ctx context.Context, limit int) ([]report.RecentActivity, error) {
	var rows []recentActivityRow
	if err := r.db.WithContext(ctx).
		Table("activity_logs AS al").
		Select("al.action, al.table_name, al.record_id, al.created_at, u.first_name, u.last_name").
		Joins("LEFT JOIN users u ON u.id = al.user_id").
		Order("al.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]report.RecentActivity, len(rows))
	for i, row := range rows {
		out[i] = report.RecentActivity{
			Action:    row.Action,
			TableName: row.TableName,
			RecordID:  row.RecordID,
			CreatedAt: row.CreatedAt,
			UserName:  identity.DisplayName(deref(row.FirstName), deref(row.LastName)),
		}
	}
	return out, nil
}

// OverdueCount counts open reconciliations whose due date is before today.
// today is bound as a YYYY-MM-DD literal so the comparison is by calendar day.
func (r *GormDashboardRepository) OverdueCount(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReconciliationModel{}).
		Where("due_date IS NOT NULL AND due_date < ?", today.Format(time.DateOnly)).
		Where("status NOT IN ?", []reconciliation.Status{reconciliation.StatusResolved, reconciliation.StatusCancelled}).
		Count(&count).Error
	return count, err
}

// Ensure GormDashboardRepository implements DashboardRepository
var _ report.DashboardRepository = (*GormDashboardRepository)(nil)
