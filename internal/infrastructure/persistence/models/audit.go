package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/audit"
)

// ActivityLogModel maps the append-only activity_logs table.
// new_values is jsonb in the postgres schema and plain text under sqlite.
type ActivityLogModel struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID      *uuid.UUID   `gorm:"type:uuid;index"`
	Action      audit.Action `gorm:"type:varchar(50);not null"`
	TargetTable string       `gorm:"column:table_name;type:varchar(100);not null"`
	RecordID    *uuid.UUID   `gorm:"type:uuid"`
	NewValues   *string      `gorm:"type:text"`
	IPAddress   string       `gorm:"type:varchar(45)"`
	UserAgent   string       `gorm:"type:text"`
	CreatedAt   time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ActivityLogModelFromDomain creates a persistence model from an entry.
// Empty values are stored as NULL so the jsonb column never sees "".
func ActivityLogModelFromDomain(e *audit.Entry) *ActivityLogModel {
	m := &ActivityLogModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Action:      e.Action,
		TargetTable: e.TableName,
		RecordID:    e.RecordID,
		IPAddress:   e.IPAddress,
		UserAgent:   e.UserAgent,
		CreatedAt:   e.CreatedAt,
	}
	if e.NewValues != "" {
		v := e.NewValues
		m.NewValues = &v
	}
	return m
}

// ToDomain converts the persistence model to an audit Entry.
func (m *ActivityLogModel) ToDomain() *audit.Entry {
	e := &audit.Entry{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    m.Action,
		TableName: m.TargetTable,
		RecordID:  m.RecordID,
		IPAddress: m.IPAddress,
		UserAgent: m.UserAgent,
		CreatedAt: m.CreatedAt,
	}
	if m.NewValues != nil {
		e.NewValues = *m.NewValues
	}
	return e
}
