package reconciliation

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/shared"
)

// AttachmentKind is the semantic type of an uploaded document
type AttachmentKind string

const (
	KindExtract   AttachmentKind = "extract"
	KindSignedPDF AttachmentKind = "signed_pdf"
)

// MaxAttachmentSize is the upload ceiling (10 MiB)
const MaxAttachmentSize int64 = 10 * 1024 * 1024

// ErrAttachmentTooLarge rejects uploads above MaxAttachmentSize
var ErrAttachmentTooLarge = shared.NewValidationError("file size exceeds 10 MB")

var allowedExtensions = map[AttachmentKind][]string{
	KindExtract:   {".pdf", ".xls", ".xlsx", ".csv"},
	KindSignedPDF: {".pdf"},
}

// Attachment is a stored supporting document
type Attachment struct {
	ID               uuid.UUID
	ReconciliationID uuid.UUID
	FileName         string
	FilePath         string
	FileSize         int64
	MimeType         string
	Kind             AttachmentKind
	UploadedBy       uuid.UUID
	UploadedAt       time.Time
}

// ParseAttachmentKind validates a raw kind value
func ParseAttachmentKind(s string) (AttachmentKind, error) {
	k := AttachmentKind(s)
	if _, ok := allowedExtensions[k]; !ok {
		return "", shared.NewValidationError("invalid attachment type: " + s)
	}
	return k, nil
}

// ValidateUpload checks the extension whitelist of the kind and the size ceiling
func ValidateUpload(kind AttachmentKind, fileName string, size int64) error {
	allowed, ok := allowedExtensions[kind]
	if !ok {
		return shared.NewValidationError("invalid attachment type: " + string(kind))
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	extOK := false
	for _, a := range allowed {
		if ext == a {
			extOK = true
			break
		}
	}
	if !extOK {
		return shared.NewValidationError(fmt.Sprintf("file extension %q is not allowed for %s (allowed: %s)",
			ext, kind, strings.Join(allowed, ", ")))
	}
	if size > MaxAttachmentSize {
		return ErrAttachmentTooLarge
	}
	return nil
}

// StorageKey returns the object key of an upload:
// uploads/reconciliations/{id}/{kind}_{unixmillis}_{basename}
func StorageKey(reconciliationID uuid.UUID, kind AttachmentKind, at time.Time, fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("uploads/reconciliations/%s/%s_%d_%s", reconciliationID, kind, at.UnixMilli(), base)
}

// NewAttachment builds the row for a validated, stored upload
func NewAttachment(reconciliationID uuid.UUID, kind AttachmentKind, fileName, key, mimeType string, size int64, uploadedBy uuid.UUID, now time.Time) *Attachment {
	return &Attachment{
		ID:               uuid.New(),
		ReconciliationID: reconciliationID,
		FileName:         fileName,
		FilePath:         "/" + key,
		FileSize:         size,
		MimeType:         mimeType,
		Kind:             kind,
		UploadedBy:       uploadedBy,
		UploadedAt:       now.UTC(),
	}
}

// StorageKey strips the leading slash of FilePath
func (a *Attachment) StorageKey() string {
	return strings.TrimPrefix(a.FilePath, "/")
}
