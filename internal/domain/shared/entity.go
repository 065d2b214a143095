package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and timestamps of mutable aggregates
// (users, companies, reconciliations). Append-only records such as
// comments and activity entries only have a creation time.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity generates a fresh ID stamped at now (UTC)
func NewBaseEntity(now time.Time) BaseEntity {
	now = now.UTC()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch records a modification
func (e *BaseEntity) Touch(now time.Time) {
	e.UpdatedAt = now.UTC()
}
