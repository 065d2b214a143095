package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCommentRepository implements reconciliation.CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

type commentViewRow struct {
	models.CommentModel
	FirstName *string
	LastName  *string
}

// Create inserts a comment
func (r *GormCommentRepository) Create(ctx context.Context, c *reconciliation.Comment) error {
	return r.db.WithContext(ctx).Create(models.CommentModelFromDomain(c)).Error
}

// ListByReconciliation returns comments newest first with author names
func (r *GormCommentRepository) ListByReconciliation(ctx context.Context, reconciliationID uuid.UUID) ([]reconciliation.CommentView, error) {
	var rows []commentViewRow
	if err := r.db.WithContext(ctx).
		Table("comments AS cm").
		Select("cm.*, u.first_name, u.last_name").
		Joins("LEFT JOIN users u ON u.id = cm.user_id").
		Where("cm.reconciliation_id = ?", reconciliationID).
		Order("cm.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]reconciliation.CommentView, len(rows))
	for i := range rows {
		views[i] = reconciliation.CommentView{
			Comment:  rows[i].ToDomain(),
			UserName: identity.DisplayName(deref(rows[i].FirstName), deref(rows[i].LastName)),
		}
	}
	return views, nil
}

// Ensure GormCommentRepository implements CommentRepository
var _ reconciliation.CommentRepository = (*GormCommentRepository)(nil)
