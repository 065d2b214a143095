package persistence

import (
	"context"
	"fmt"

	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSequenceRepository allocates values from named counter rows.
// Call it inside a transaction: the increment's row lock serializes
// concurrent allocations until commit.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next seeds the row at 0 if missing, increments it and returns the new value
func (r *GormSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	db := r.db.WithContext(ctx)

	seed := models.SequenceModel{Name: name, Value: 0}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, fmt.Errorf("seed sequence %s: %w", name, err)
	}

	if err := db.Model(&models.SequenceModel{}).
		Where("name = ?", name).
		Update("value", gorm.Expr("value + 1")).Error; err != nil {
		return 0, fmt.Errorf("increment sequence %s: %w", name, err)
	}

	var row models.SequenceModel
	if err := db.Where("name = ?", name).First(&row).Error; err != nil {
		return 0, fmt.Errorf("read sequence %s: %w", name, err)
	}
	return row.Value, nil
}

// Ensure GormSequenceRepository implements SequenceRepository
var _ reconciliation.SequenceRepository = (*GormSequenceRepository)(nil)
