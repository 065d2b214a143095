package reconciliation

import (
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Priority orders the work queue
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var (
	highThreshold   = decimal.NewFromInt(50000)
	mediumThreshold = decimal.NewFromInt(20000)
)

// ParsePriority validates a raw priority value
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, nil
	}
	return "", shared.NewValidationError("invalid priority: " + s)
}

// PriorityForAmount derives priority from the amount: above 50000 is
// high, above 20000 medium, anything else low.
func PriorityForAmount(amount decimal.Decimal) Priority {
	switch {
	case amount.GreaterThan(highThreshold):
		return PriorityHigh
	case amount.GreaterThan(mediumThreshold):
		return PriorityMedium
	default:
		return PriorityLow
	}
}
