package reconciliation

import (
	"encoding/json"
	"io"
	"time"

	"github.com/iletigo/mutabakat/internal/domain/partner"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/shopspring/decimal"
)

// CreateInput is a new reconciliation submission. Pointer fields are
// required and nil means missing.
type CreateInput struct {
	CompanyCode        string
	CompanyName        string
	ContactPerson      string
	Email              string
	Phone              string
	MobilePhone        string
	Type               string
	DebtCredit         string
	Amount             *decimal.Decimal
	ReconciliationDate *time.Time
	DueDate            *time.Time
	Description        string
	Year               int
	Month              int
	Priority           string
}

// CreateResult is the created reconciliation and its resolved company
type CreateResult struct {
	Reconciliation *reconciliation.Reconciliation
	Company        *partner.Company
}

// Patch is a partial update. Raw is the request body as received and is
// recorded in the activity log verbatim.
type Patch struct {
	Status        *string
	StatusSet     bool
	AssignedTo    *string
	AssignedToSet bool // true when assigned_to was present, including null
	Raw           json.RawMessage
}

// ParsePatch decodes a PATCH body, remembering which keys were present
func ParsePatch(body []byte) (Patch, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Patch{}, err
	}
	p := Patch{Raw: json.RawMessage(body)}
	if raw, ok := fields["status"]; ok {
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Patch{}, err
		}
		p.Status = s
		p.StatusSet = true
	}
	if raw, ok := fields["assigned_to"]; ok {
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Patch{}, err
		}
		p.AssignedTo = s
		p.AssignedToSet = true
	}
	return p, nil
}

// Empty reports whether no recognized field is present
func (p Patch) Empty() bool {
	return !p.StatusSet && !p.AssignedToSet
}

// Upload is an attachment submission
type Upload struct {
	Kind     string
	FileName string
	MimeType string
	Size     int64
	Content  io.Reader
}

// Download is an open attachment stream; the caller closes Body
type Download struct {
	Attachment *reconciliation.Attachment
	Body       io.ReadCloser
}

// Document is a generated report or export
type Document struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Report formats
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
)
