package reconciliation

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Detail is one line item of a reconciliation's amount breakdown
type Detail struct {
	ID               uuid.UUID
	ReconciliationID uuid.UUID
	LineNumber       int
	Description      string
	OurAmount        decimal.Decimal
	TheirAmount      decimal.Decimal
	Notes            string
	CreatedAt        time.Time
}

// Difference is our_amount - their_amount for the line
func (d *Detail) Difference() decimal.Decimal {
	return Difference(d.OurAmount, d.TheirAmount)
}

// DetailInput is the caller-supplied part of a line item
type DetailInput struct {
	LineNumber  int
	Description string
	OurAmount   decimal.Decimal
	TheirAmount decimal.Decimal
	Notes       string
}

// NewDetail validates and builds a line item. lineNumber must already be
// resolved (caller-supplied or next free).
func NewDetail(reconciliationID uuid.UUID, lineNumber int, in DetailInput, now time.Time) (*Detail, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, shared.NewRequiredError("description")
	}
	if lineNumber < 1 {
		return nil, shared.NewValidationError("line_number must be positive")
	}
	if in.OurAmount.IsNegative() || in.TheirAmount.IsNegative() {
		return nil, shared.NewValidationError("amounts must not be negative")
	}
	return &Detail{
		ID:               uuid.New(),
		ReconciliationID: reconciliationID,
		LineNumber:       lineNumber,
		Description:      desc,
		OurAmount:        in.OurAmount,
		TheirAmount:      in.TheirAmount,
		Notes:            strings.TrimSpace(in.Notes),
		CreatedAt:        now.UTC(),
	}, nil
}

// DetailTotals sums the line items independently of the header amounts
type DetailTotals struct {
	OurAmount   decimal.Decimal
	TheirAmount decimal.Decimal
	Difference  decimal.Decimal
}

// SumDetails totals a set of line items
func SumDetails(details []Detail) DetailTotals {
	t := DetailTotals{OurAmount: decimal.Zero, TheirAmount: decimal.Zero, Difference: decimal.Zero}
	for i := range details {
		t.OurAmount = t.OurAmount.Add(details[i].OurAmount)
		t.TheirAmount = t.TheirAmount.Add(details[i].TheirAmount)
		t.Difference = t.Difference.Add(details[i].Difference())
	}
	return t
}
