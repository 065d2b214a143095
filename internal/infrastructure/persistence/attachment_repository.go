package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAttachmentRepository implements reconciliation.AttachmentRepository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

type attachmentViewRow struct {
	models.AttachmentModel
	FirstName *string
	LastName  *string
}

// Create inserts an attachment row
func (r *GormAttachmentRepository) Create(ctx context.Context, a *reconciliation.Attachment) error {
	return r.db.WithContext(ctx).Create(models.AttachmentModelFromDomain(a)).Error
}

// FindByID finds an attachment that belongs to the given reconciliation
func (r *GormAttachmentRepository) FindByID(ctx context.Context, reconciliationID, id uuid.UUID) (*reconciliation.Attachment, error) {
	var model models.AttachmentModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND reconciliation_id = ?", id, reconciliationID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	a := model.ToDomain()
	return &a, nil
}

// ListByReconciliation returns attachments newest first with uploader names
func (r *GormAttachmentRepository) ListByReconciliation(ctx context.Context, reconciliationID uuid.UUID) ([]reconciliation.AttachmentView, error) {
	var rows []attachmentViewRow
	if err := r.db.WithContext(ctx).
		Table("attachments AS a").
		Select("a.*, u.first_name, u.last_name").
		Joins("LEFT JOIN users u ON u.id = a.uploaded_by").
		Where("a.reconciliation_id = ?", reconciliationID).
		Order("a.uploaded_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]reconciliation.AttachmentView, len(rows))
	for i := range rows {
		views[i] = reconciliation.AttachmentView{
			Attachment:     rows[i].ToDomain(),
			UploadedByName: identity.DisplayName(deref(rows[i].FirstName), deref(rows[i].LastName)),
		}
	}
	return views, nil
}

// Ensure GormAttachmentRepository implements AttachmentRepository
var _ reconciliation.AttachmentRepository = (*GormAttachmentRepository)(nil)
