package reconciliation

import "github.com/iletigo/mutabakat/internal/domain/shared"

// Status is the lifecycle state of a reconciliation
type Status string

const (
	StatusPending   Status = "pending"
	StatusMatched   Status = "matched"
	StatusDisputed  Status = "disputed"
	StatusResolved  Status = "resolved"
	StatusCancelled Status = "cancelled"
)

// AllStatuses lists every status in lifecycle order
var AllStatuses = []Status{StatusPending, StatusMatched, StatusDisputed, StatusResolved, StatusCancelled}

// transitions is the allowed-from graph. Terminal states have no entry.
var transitions = map[Status][]Status{
	StatusPending:  {StatusMatched, StatusDisputed, StatusResolved, StatusCancelled},
	StatusMatched:  {StatusResolved, StatusCancelled},
	StatusDisputed: {StatusResolved, StatusCancelled},
}

// ParseStatus validates a raw status value
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", shared.NewValidationError("invalid status: " + s)
	}
	return st, nil
}

// IsValid reports whether s is one of the five known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusMatched, StatusDisputed, StatusResolved, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusCancelled
}

// IsOpen reports whether the reconciliation still needs work
func (s Status) IsOpen() bool {
	return s.IsValid() && !s.IsTerminal()
}

// CanTransitionTo checks the lifecycle graph. Writing the current status
// again is always allowed.
func (s Status) CanTransitionTo(to Status) bool {
	if s == to {
		return true
	}
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
