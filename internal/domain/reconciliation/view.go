package reconciliation

import "time"

// View is a reconciliation joined with the names a reader needs
type View struct {
	Reconciliation
	CompanyName      string
	CompanyCode      string
	CompanyTaxNumber string
	PeriodName       string
	PeriodStart      *time.Time
	PeriodEnd        *time.Time
	AssignedToName   string
	CreatedByName    string
}

// AttachmentView is an attachment with its uploader's display name
type AttachmentView struct {
	Attachment
	UploadedByName string
}

// CommentView is a comment with its author's display name
type CommentView struct {
	Comment
	UserName string
}

// FullView is a reconciliation with all of its children
type FullView struct {
	View
	Details     []Detail
	Attachments []AttachmentView
	Comments    []CommentView
}
