package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists reconciliation headers
type Repository interface {
	Create(ctx context.Context, r *Reconciliation) error
	// Update writes status, assignment and updated_at
	Update(ctx context.Context, r *Reconciliation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Reconciliation, error)
	// Exists is the cheap parent check used before child writes
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// FindView joins company, period and user names
	FindView(ctx context.Context, id uuid.UUID) (*View, error)
	// List returns one page and the total match count
	List(ctx context.Context, filter ListFilter) ([]View, int64, error)
	// ListAll returns every match up to limit, ignoring pagination
	ListAll(ctx context.Context, filter ListFilter, limit int) ([]View, error)
}

// DetailRepository persists line items
type DetailRepository interface {
	Create(ctx context.Context, d *Detail) error
	ListByReconciliation(ctx context.Context, reconciliationID uuid.UUID) ([]Detail, error)
	MaxLineNumber(ctx context.Context, reconciliationID uuid.UUID) (int, error)
}

// AttachmentRepository persists attachment rows
type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	FindByID(ctx context.Context, reconciliationID, id uuid.UUID) (*Attachment, error)
	ListByReconciliation(ctx context.Context, reconciliationID uuid.UUID) ([]AttachmentView, error)
}

// CommentRepository persists comments
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByReconciliation(ctx context.Context, reconciliationID uuid.UUID) ([]CommentView, error)
}

// PeriodRepository reads externally managed periods
type PeriodRepository interface {
	// FindActiveContaining returns the first active period covering date,
	// or nil when none does.
	FindActiveContaining(ctx context.Context, date time.Time) (*Period, error)
}

// SequenceRepository allocates counter values atomically
type SequenceRepository interface {
	// Next increments the named counter and returns the new value
	Next(ctx context.Context, name string) (int64, error)
}
