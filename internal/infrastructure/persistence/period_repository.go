package persistence

import (
	"context"
	"time"

	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPeriodRepository reads reconciliation_periods
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewGormPeriodRepository creates a new GormPeriodRepository
func NewGormPeriodRepository(db *gorm.DB) *GormPeriodRepository {
	return &GormPeriodRepository{db: db}
}

// FindActiveContaining returns the earliest-starting active period whose
// range covers date, or nil. The range test runs on calendar days in Go so
// it behaves the same under every driver's date representation.
func (r *GormPeriodRepository) FindActiveContaining(ctx context.Context, date time.Time) (*reconciliation.Period, error) {
	var rows []models.PeriodModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", reconciliation.PeriodActive).
		Order("start_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		p := rows[i].ToDomain()
		if p.Contains(date) {
			return p, nil
		}
	}
	return nil, nil
}

// Ensure GormPeriodRepository implements PeriodRepository
var _ reconciliation.PeriodRepository = (*GormPeriodRepository)(nil)
