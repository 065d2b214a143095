package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/partner"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// CreateReconciliationRequest is the body of POST /reconciliations. Required
// fields are checked by the service so that the first missing one is
// reported in a fixed order.
type CreateReconciliationRequest struct {
	CompanyCode        string           `json:"company_code" binding:"max=50" example:"ACME"`
	CompanyName        string           `json:"company_name" binding:"max=255" example:"Acme Ltd"`
	ContactPerson      string           `json:"contact_person" binding:"max=255"`
	Email              string           `json:"email" binding:"omitempty,email,max=255"`
	Phone              string           `json:"phone" binding:"max=50"`
	MobilePhone        string           `json:"mobile_phone" binding:"max=50"`
	Type               string           `json:"type" binding:"max=100" example:"cari"`
	DebtCredit         string           `json:"debt_credit" binding:"max=50" example:"borc"`
	Amount             *decimal.Decimal `json:"amount" binding:"omitempty,decimalgt0" swaggertype:"string" example:"15000.50"`
	ReconciliationDate string           `json:"reconciliation_date" example:"2026-03-31"`
	DueDate            string           `json:"due_date" example:"2026-04-15"`
	Description        string           `json:"description"`
	Year               int              `json:"year" binding:"omitempty,min=1900,max=9999"`
	Month              int              `json:"month" binding:"omitempty,min=1,max=12"`
	Priority           string           `json:"priority" example:"high"`
}

// ListReconciliationsQuery holds the list and export query parameters
type ListReconciliationsQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1"`
	Status    string `form:"status" binding:"omitempty,statusfilter"`
	Priority  string `form:"priority" binding:"omitempty,oneof=low medium high urgent all"`
	Search    string `form:"search" binding:"max=200"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// CreateDetailRequest is a new line item
type CreateDetailRequest struct {
	LineNumber  int             `json:"line_number" binding:"omitempty,min=1"`
	Description string          `json:"description" binding:"max=500"`
	OurAmount   decimal.Decimal `json:"our_amount" swaggertype:"string" example:"1000.00"`
	TheirAmount decimal.Decimal `json:"their_amount" swaggertype:"string" example:"900.00"`
	Notes       string          `json:"notes"`
}

// CreateCommentRequest is a new comment; is_internal defaults to true
type CreateCommentRequest struct {
	Content    string `json:"content" binding:"max=5000"`
	IsInternal *bool  `json:"is_internal"`
}

// ReconciliationResponse is a reconciliation header
type ReconciliationResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ReferenceNumber    string          `json:"reference_number"`
	Title              string          `json:"title"`
	CompanyID          uuid.UUID       `json:"company_id"`
	PeriodID           *uuid.UUID      `json:"period_id"`
	Type               string          `json:"type"`
	DebtCredit         string          `json:"debt_credit"`
	ReconciliationDate time.Time       `json:"reconciliation_date"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	Description        string          `json:"description"`
	OurAmount          decimal.Decimal `json:"our_amount" swaggertype:"string"`
	TheirAmount        decimal.Decimal `json:"their_amount" swaggertype:"string"`
	Difference         decimal.Decimal `json:"difference" swaggertype:"string"`
	Currency           string          `json:"currency"`
	Status             string          `json:"status"`
	Priority           string          `json:"priority"`
	DueDate            *time.Time      `json:"due_date"`
	AssignedTo         *uuid.UUID      `json:"assigned_to"`
	CreatedBy          uuid.UUID       `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ReconciliationViewResponse adds the joined names
type ReconciliationViewResponse struct {
	ReconciliationResponse
	CompanyName      string     `json:"company_name"`
	CompanyCode      string     `json:"company_code"`
	CompanyTaxNumber string     `json:"company_tax_number,omitempty"`
	PeriodName       string     `json:"period_name"`
	PeriodStart      *time.Time `json:"period_start,omitempty"`
	PeriodEnd        *time.Time `json:"period_end,omitempty"`
	AssignedToName   string     `json:"assigned_to_name"`
	CreatedByName    string     `json:"created_by_name"`
}

// ReconciliationDetailResponse is GET /reconciliations/:id
type ReconciliationDetailResponse struct {
	ReconciliationViewResponse
	Details     []DetailResponse     `json:"details"`
	Attachments []AttachmentResponse `json:"attachments"`
	Comments    []CommentResponse    `json:"comments"`
}

// CompanyResponse is a counterparty
type CompanyResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	MobilePhone   string    `json:"mobile_phone"`
	TaxNumber     string    `json:"tax_number"`
	IsActive      bool      `json:"is_active"`
}

// CreateReconciliationResponse is the 201 body of POST /reconciliations
type CreateReconciliationResponse struct {
	Data    ReconciliationResponse `json:"data"`
	Company CompanyResponse        `json:"company"`
	Message string                 `json:"message"`
}

// ListFilters echoes the applied filters
type ListFilters struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Search   string `json:"search"`
}

// ReconciliationListResponse is GET /reconciliations
type ReconciliationListResponse struct {
	Data       []ReconciliationViewResponse `json:"data"`
	Pagination dto.Pagination               `json:"pagination"`
	Filters    ListFilters                  `json:"filters"`
}

// DetailResponse is a line item
type DetailResponse struct {
	ID               uuid.UUID       `json:"id"`
	ReconciliationID uuid.UUID       `json:"reconciliation_id"`
	LineNumber       int             `json:"line_number"`
	Description      string          `json:"description"`
	OurAmount        decimal.Decimal `json:"our_amount" swaggertype:"string"`
	TheirAmount      decimal.Decimal `json:"their_amount" swaggertype:"string"`
	Difference       decimal.Decimal `json:"difference" swaggertype:"string"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AttachmentResponse is attachment metadata; the storage path is not exposed
type AttachmentResponse struct {
	ID               uuid.UUID `json:"id"`
	ReconciliationID uuid.UUID `json:"reconciliation_id"`
	FileName         string    `json:"file_name"`
	FileSize         int64     `json:"file_size"`
	FileType         string    `json:"file_type"`
	Kind             string    `json:"kind"`
	UploadedBy       uuid.UUID `json:"uploaded_by"`
	UploadedByName   string    `json:"uploaded_by_name,omitempty"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// CommentResponse is a thread entry
type CommentResponse struct {
	ID               uuid.UUID `json:"id"`
	ReconciliationID uuid.UUID `json:"reconciliation_id"`
	UserID           uuid.UUID `json:"user_id"`
	UserName         string    `json:"user_name"`
	Content          string    `json:"content"`
	IsInternal       bool      `json:"is_internal"`
	CreatedAt        time.Time `json:"created_at"`
}

// DetailCreatedResponse is the body of POST /details
type DetailCreatedResponse struct {
	Message string         `json:"message"`
	Detail  DetailResponse `json:"detail"`
}

// AttachmentCreatedResponse is the body of POST /attachments
type AttachmentCreatedResponse struct {
	Message    string             `json:"message"`
	Attachment AttachmentResponse `json:"attachment"`
}

// CommentCreatedResponse is the body of POST /comments
type CommentCreatedResponse struct {
	Message string          `json:"message"`
	Comment CommentResponse `json:"comment"`
}

func toReconciliationResponse(r *reconciliation.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ID:                 r.ID,
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
		Difference:         r.Difference(),
		Currency:           r.Currency,
		Status:             string(r.Status),
		Priority:           string(r.Priority),
		DueDate:            r.DueDate,
		AssignedTo:         r.AssignedTo,
		CreatedBy:          r.CreatedBy,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func toViewResponse(v *reconciliation.View) ReconciliationViewResponse {
	return ReconciliationViewResponse{
		ReconciliationResponse: toReconciliationResponse(&v.Reconciliation),
		CompanyName:            v.CompanyName,
		CompanyCode:            v.CompanyCode,
		CompanyTaxNumber:       v.CompanyTaxNumber,
		PeriodName:             v.PeriodName,
		PeriodStart:            v.PeriodStart,
		PeriodEnd:              v.PeriodEnd,
		AssignedToName:         v.AssignedToName,
		CreatedByName:          v.CreatedByName,
	}
}

func toDetailResponse(v *reconciliation.FullView) ReconciliationDetailResponse {
	resp := ReconciliationDetailResponse{
		ReconciliationViewResponse: toViewResponse(&v.View),
		Details:                    make([]DetailResponse, 0, len(v.Details)),
		Attachments:                make([]AttachmentResponse, 0, len(v.Attachments)),
		Comments:                   make([]CommentResponse, 0, len(v.Comments)),
	}
	for i := range v.Details {
		resp.Details = append(resp.Details, toLineItemResponse(&v.Details[i]))
	}
	for i := range v.Attachments {
		resp.Attachments = append(resp.Attachments, toAttachmentViewResponse(&v.Attachments[i]))
	}
	for i := range v.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(&v.Comments[i]))
	}
	return resp
}

func toCompanyResponse(c *partner.Company) CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		Code:          c.Code,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		MobilePhone:   c.MobilePhone,
		TaxNumber:     c.TaxNumber,
		IsActive:      c.IsActive,
	}
}

func toLineItemResponse(d *reconciliation.Detail) DetailResponse {
	return DetailResponse{
		ID:               d.ID,
		ReconciliationID: d.ReconciliationID,
		LineNumber:       d.LineNumber,
		Description:      d.Description,
		OurAmount:        d.OurAmount,
		TheirAmount:      d.TheirAmount,
		Difference:       d.Difference(),
		Notes:            d.Notes,
		CreatedAt:        d.CreatedAt,
	}
}

func toAttachmentResponse(a *reconciliation.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:               a.ID,
		ReconciliationID: a.ReconciliationID,
		FileName:         a.FileName,
		FileSize:         a.FileSize,
		FileType:         a.MimeType,
		Kind:             string(a.Kind),
		UploadedBy:       a.UploadedBy,
		UploadedAt:       a.UploadedAt,
	}
}

func toAttachmentViewResponse(a *reconciliation.AttachmentView) AttachmentResponse {
	resp := toAttachmentResponse(&a.Attachment)
	resp.UploadedByName = a.UploadedByName
	return resp
}

func toCommentResponse(c *reconciliation.CommentView) CommentResponse {
	return CommentResponse{
		ID:               c.ID,
		ReconciliationID: c.ReconciliationID,
		UserID:           c.UserID,
		UserName:         c.UserName,
		Content:          c.Content,
		IsInternal:       c.IsInternal,
		CreatedAt:        c.CreatedAt,
	}
}
