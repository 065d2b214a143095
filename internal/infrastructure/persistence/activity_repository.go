package persistence

import (
	"context"

	"github.com/iletigo/mutabakat/internal/domain/audit"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityRepository appends to activity_logs
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Append inserts the entry
func (r *GormActivityRepository) Append(ctx context.Context, e *audit.Entry) error {
	return r.db.WithContext(ctx).Create(models.ActivityLogModelFromDomain(e)).Error
}

// Ensure GormActivityRepository implements audit.Repository
var _ audit.Repository = (*GormActivityRepository)(nil)
