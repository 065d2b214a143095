package reconciliation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the only currency the back office books in
const DefaultCurrency = "TRY"

// Reconciliation is a tracked balance-agreement case with one company.
// The difference is never stored; it is always derived from the amounts.
type Reconciliation struct {
	shared.BaseEntity
	ReferenceNumber    string
	Title              string
	CompanyID          uuid.UUID
	PeriodID           *uuid.UUID
	Type               string
	DebtCredit         string
	ReconciliationDate time.Time
	Year               int
	Month              int
	Description        string
	OurAmount          decimal.Decimal
	TheirAmount        decimal.Decimal
	Currency           string
	Status             Status
	Priority           Priority
	DueDate            *time.Time
	AssignedTo         *uuid.UUID
	CreatedBy          uuid.UUID
	// Version is bumped on every persisted update (optimistic locking)
	Version int
}

// Difference is our_amount - their_amount
func (r *Reconciliation) Difference() decimal.Decimal {
	return Difference(r.OurAmount, r.TheirAmount)
}

// Difference is the single definition used by headers, details and reports
func Difference(our, their decimal.Decimal) decimal.Decimal {
	return our.Sub(their)
}

// NewParams are the already-validated inputs of a new reconciliation
type NewParams struct {
	ReferenceNumber    string
	CompanyID          uuid.UUID
	CompanyName        string
	PeriodID           *uuid.UUID
	Type               string
	DebtCredit         string
	Amount             decimal.Decimal
	ReconciliationDate time.Time
	Year               int
	Month              int
	DueDate            *time.Time
	Description        string
	Priority           Priority
	CreatedBy          uuid.UUID
}

// New creates a pending reconciliation. Their side starts at zero so the
// difference equals the submitted amount.
func New(p NewParams, now time.Time) (*Reconciliation, error) {
	if p.ReferenceNumber == "" {
		return nil, shared.NewRequiredError("reference_number")
	}
	if !p.Amount.IsPositive() {
		return nil, shared.NewValidationError("amount must be greater than 0")
	}
	if p.CreatedBy == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	priority := p.Priority
	if priority == "" {
		priority = PriorityForAmount(p.Amount)
	}
	year, month := p.Year, p.Month
	if year == 0 {
		year = p.ReconciliationDate.Year()
	}
	if month == 0 {
		month = int(p.ReconciliationDate.Month())
	}

	return &Reconciliation{
		BaseEntity:         shared.NewBaseEntity(now),
		ReferenceNumber:    p.ReferenceNumber,
		Title:              BuildTitle(p.CompanyName, p.Type, p.DebtCredit),
		CompanyID:          p.CompanyID,
		PeriodID:           p.PeriodID,
		Type:               p.Type,
		DebtCredit:         p.DebtCredit,
		ReconciliationDate: p.ReconciliationDate,
		Year:               year,
		Month:              month,
		Description:        strings.TrimSpace(p.Description),
		OurAmount:          p.Amount,
		TheirAmount:        decimal.Zero,
		Currency:           DefaultCurrency,
		Status:             StatusPending,
		Priority:           priority,
		DueDate:            p.DueDate,
		CreatedBy:          p.CreatedBy,
		Version:            1,
	}, nil
}

// BuildTitle synthesizes "{company} - {type} ({debt_credit})"
func BuildTitle(companyName, typ, debtCredit string) string {
	return fmt.Sprintf("%s - %s (%s)", companyName, typ, debtCredit)
}

// ChangeStatus moves to a new status under the given policy
func (r *Reconciliation) ChangeStatus(to Status, policy TransitionPolicy, actor identity.Actor, now time.Time) error {
	if err := policy.Check(r.Status, to, actor); err != nil {
		return err
	}
	r.Status = to
	r.Touch(now)
	return nil
}

// Assign sets or clears (nil) the responsible user
func (r *Reconciliation) Assign(userID *uuid.UUID, now time.Time) {
	r.AssignedTo = userID
	r.Touch(now)
}

// IsOverdue reports whether the due date is strictly before today's date
// while the case is still open.
func (r *Reconciliation) IsOverdue(today time.Time) bool {
	if r.DueDate == nil || !r.Status.IsOpen() {
		return false
	}
	y, m, d := today.Date()
	return r.DueDate.Before(time.Date(y, m, d, 0, 0, 0, 0, r.DueDate.Location()))
}
