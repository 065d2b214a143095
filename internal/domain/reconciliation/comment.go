package reconciliation

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/shared"
)

// Comment is a note on a reconciliation thread
type Comment struct {
	ID               uuid.UUID
	ReconciliationID uuid.UUID
	UserID           uuid.UUID
	Content          string
	IsInternal       bool
	CreatedAt        time.Time
}

// NewComment trims content and rejects blank comments
func NewComment(reconciliationID, userID uuid.UUID, content string, isInternal bool, now time.Time) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.NewRequiredError("content")
	}
	return &Comment{
		ID:               uuid.New(),
		ReconciliationID: reconciliationID,
		UserID:           userID,
		Content:          content,
		IsInternal:       isInternal,
		CreatedAt:        now.UTC(),
	}, nil
}
