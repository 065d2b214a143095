package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDetailRepository implements reconciliation.DetailRepository using GORM
type GormDetailRepository struct {
	db *gorm.DB
}

// NewGormDetailRepository creates a new GormDetailRepository
func NewGormDetailRepository(db *gorm.DB) *GormDetailRepository {
	return &GormDetailRepository{db: db}
}

// Create inserts a line item. A taken line number surfaces as ErrAlreadyExists.
func (r *GormDetailRepository) Create(ctx context.Context, d *reconciliation.Detail) error {
	if err := r.db.WithContext(ctx).Create(models.DetailModelFromDomain(d)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ListByReconciliation returns line items in line_number order
func (r *GormDetailRepository) ListByReconciliation(ctx context.Context, reconciliationID uuid.UUID) ([]reconciliation.Detail, error) {
	var rows []models.DetailModel
	if err := r.db.WithContext(ctx).
		Where("reconciliation_id = ?", reconciliationID).
		Order("line_number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	details := make([]reconciliation.Detail, len(rows))
	for i := range rows {
		details[i] = rows[i].ToDomain()
	}
	return details, nil
}

// MaxLineNumber returns the highest line number in use, 0 when there is none
func (r *GormDetailRepository) MaxLineNumber(ctx context.Context, reconciliationID uuid.UUID) (int, error) {
	var maxLine int
	err := r.db.WithContext(ctx).
		Model(&models.DetailModel{}).
		Where("reconciliation_id = ?", reconciliationID).
		Select("COALESCE(MAX(line_number), 0)").
		Scan(&maxLine).Error
	return maxLine, err
}

// Ensure GormDetailRepository implements DetailRepository
var _ reconciliation.DetailRepository = (*GormDetailRepository)(nil)
