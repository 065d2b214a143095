package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/shopspring/decimal"
)

// PeriodModel maps reconciliation_periods. Rows are seeded externally.
type PeriodModel struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Name      string                      `gorm:"type:varchar(100);not null"`
	StartDate time.Time                   `gorm:"type:date;not null"`
	EndDate   time.Time                   `gorm:"type:date;not null"`
	Status    reconciliation.PeriodStatus `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time                   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PeriodModel) TableName() string {
	return "reconciliation_periods"
}

// ToDomain converts the persistence model to a domain Period.
func (m *PeriodModel) ToDomain() *reconciliation.Period {
	return &reconciliation.Period{
		ID:        m.ID,
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Status:    m.Status,
	}
}

// ReconciliationModel is the persistence model for the Reconciliation
// aggregate. There is no difference column.
type ReconciliationModel struct {
	BaseModel
	ReferenceNumber    string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Title              string                  `gorm:"type:varchar(500);not null"`
	CompanyID          uuid.UUID               `gorm:"type:uuid;not null;index"`
	PeriodID           *uuid.UUID              `gorm:"type:uuid;index"`
	Type               string                  `gorm:"type:varchar(50);not null"`
	DebtCredit         string                  `gorm:"type:varchar(50);not null"`
	ReconciliationDate time.Time               `gorm:"type:date;not null"`
	Year               int                     `gorm:"not null"`
	Month              int                     `gorm:"not null"`
	Description        string                  `gorm:"type:text"`
	OurAmount          decimal.Decimal         `gorm:"type:numeric(18,2);not null"`
	TheirAmount        decimal.Decimal         `gorm:"type:numeric(18,2);not null"`
	Currency           string                  `gorm:"type:varchar(3);not null"`
	Status             reconciliation.Status   `gorm:"type:varchar(20);not null;index"`
	Priority           reconciliation.Priority `gorm:"type:varchar(20);not null;index"`
	DueDate            *time.Time              `gorm:"type:date"`
	AssignedTo         *uuid.UUID              `gorm:"type:uuid;index"`
	CreatedBy          uuid.UUID               `gorm:"type:uuid;not null"`
	Version            int                     `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (ReconciliationModel) TableName() string {
	return "reconciliations"
}

// ToDomain converts the persistence model to a domain Reconciliation.
func (m *ReconciliationModel) ToDomain() *reconciliation.Reconciliation {
	return &reconciliation.Reconciliation{
		BaseEntity:         m.BaseModel.ToDomain(),
		ReferenceNumber:    m.ReferenceNumber,
		Title:              m.Title,
		CompanyID:          m.CompanyID,
		PeriodID:           m.PeriodID,
		Type:               m.Type,
		DebtCredit:         m.DebtCredit,
		ReconciliationDate: m.ReconciliationDate,
		Year:               m.Year,
		Month:              m.Month,
		Description:        m.Description,
		OurAmount:          m.OurAmount,
		TheirAmount:        m.TheirAmount,
		Currency:           m.Currency,
		Status:             m.Status,
		Priority:           m.Priority,
		DueDate:            m.DueDate,
		AssignedTo:         m.AssignedTo,
		CreatedBy:          m.CreatedBy,
		Version:            m.Version,
	}
}

// ReconciliationModelFromDomain creates a persistence model from the domain aggregate.
func ReconciliationModelFromDomain(r *reconciliation.Reconciliation) *ReconciliationModel {
	m := &ReconciliationModel{
		ReferenceNumber:    r.ReferenceNumber,
		Title:              r.Title,
		CompanyID:          r.CompanyID,
		PeriodID:           r.PeriodID,
		Type:               r.Type,
		DebtCredit:         r.DebtCredit,
		ReconciliationDate: r.ReconciliationDate,
		Year:               r.Year,
		Month:              r.Month,
		Description:        r.Description,
		OurAmount:          r.OurAmount,
		TheirAmount:        r.TheirAmount,
		Currency:           r.Currency,
		Status:             r.Status,
		Priority:           r.Priority,
		DueDate:            r.DueDate,
		AssignedTo:         r.AssignedTo,
		CreatedBy:          r.CreatedBy,
		Version:            r.Version,
	}
	m.BaseModel = newBaseModel(r.BaseEntity)
	return m
}

// DetailModel maps reconciliation_details
type DetailModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReconciliationID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_detail_line,priority:1"`
	LineNumber       int             `gorm:"not null;uniqueIndex:idx_detail_line,priority:2"`
	Description      string          `gorm:"type:text;not null"`
	OurAmount        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TheirAmount      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Notes            string          `gorm:"type:text"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DetailModel) TableName() string {
	return "reconciliation_details"
}

// ToDomain converts the persistence model to a domain Detail.
func (m *DetailModel) ToDomain() reconciliation.Detail {
	return reconciliation.Detail{
		ID:               m.ID,
		ReconciliationID: m.ReconciliationID,
		LineNumber:       m.LineNumber,
		Description:      m.Description,
		OurAmount:        m.OurAmount,
		TheirAmount:      m.TheirAmount,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
	}
}

// DetailModelFromDomain creates a persistence model from a domain Detail.
func DetailModelFromDomain(d *reconciliation.Detail) *DetailModel {
	return &DetailModel{
		ID:               d.ID,
		ReconciliationID: d.ReconciliationID,
		LineNumber:       d.LineNumber,
		Description:      d.Description,
		OurAmount:        d.OurAmount,
		TheirAmount:      d.TheirAmount,
		Notes:            d.Notes,
		CreatedAt:        d.CreatedAt,
	}
}

// AttachmentModel maps attachments
type AttachmentModel struct {
	ID               uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	ReconciliationID uuid.UUID                     `gorm:"type:uuid;not null;index"`
	FileName         string                        `gorm:"type:varchar(255);not null"`
	FilePath         string                        `gorm:"type:varchar(500);not null"`
	FileSize         int64                         `gorm:"not null"`
	MimeType         string                        `gorm:"type:varchar(100)"`
	FileType         reconciliation.AttachmentKind `gorm:"type:varchar(20);not null"`
	UploadedBy       uuid.UUID                     `gorm:"type:uuid;not null"`
	UploadedAt       time.Time                     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AttachmentModel) TableName() string {
	return "attachments"
}

// ToDomain converts the persistence model to a domain Attachment.
func (m *AttachmentModel) ToDomain() reconciliation.Attachment {
	return reconciliation.Attachment{
		ID:               m.ID,
		ReconciliationID: m.ReconciliationID,
		FileName:         m.FileName,
		FilePath:         m.FilePath,
		FileSize:         m.FileSize,
		MimeType:         m.MimeType,
		Kind:             m.FileType,
		UploadedBy:       m.UploadedBy,
		UploadedAt:       m.UploadedAt,
	}
}

// AttachmentModelFromDomain creates a persistence model from a domain Attachment.
func AttachmentModelFromDomain(a *reconciliation.Attachment) *AttachmentModel {
	return &AttachmentModel{
		ID:               a.ID,
		ReconciliationID: a.ReconciliationID,
		FileName:         a.FileName,
		FilePath:         a.FilePath,
		FileSize:         a.FileSize,
		MimeType:         a.MimeType,
		FileType:         a.Kind,
		UploadedBy:       a.UploadedBy,
		UploadedAt:       a.UploadedAt,
	}
}

// CommentModel maps comments
type CommentModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReconciliationID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID           uuid.UUID `gorm:"type:uuid;not null"`
	Content          string    `gorm:"type:text;not null"`
	IsInternal       bool      `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string {
	return "comments"
}

// ToDomain converts the persistence model to a domain Comment.
func (m *CommentModel) ToDomain() reconciliation.Comment {
	return reconciliation.Comment{
		ID:               m.ID,
		ReconciliationID: m.ReconciliationID,
		UserID:           m.UserID,
		Content:          m.Content,
		IsInternal:       m.IsInternal,
		CreatedAt:        m.CreatedAt,
	}
}

// CommentModelFromDomain creates a persistence model from a domain Comment.
func CommentModelFromDomain(c *reconciliation.Comment) *CommentModel {
	return &CommentModel{
		ID:               c.ID,
		ReconciliationID: c.ReconciliationID,
		UserID:           c.UserID,
		Content:          c.Content,
		IsInternal:       c.IsInternal,
		CreatedAt:        c.CreatedAt,
	}
}

// SequenceModel is a named counter row
type SequenceModel struct {
	Name  string `gorm:"type:varchar(100);primaryKey"`
	Value int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SequenceModel) TableName() string {
	return "sequences"
}
