package reconciliation

import (
	"fmt"

	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/shared"
)

// TransitionPolicy names how strictly status writes follow the lifecycle graph
type TransitionPolicy string

const (
	// PolicyStrict enforces the graph for every actor
	PolicyStrict TransitionPolicy = "strict"
	// PolicyAdminOverride enforces the graph except for admins
	PolicyAdminOverride TransitionPolicy = "admin_override"
	// PolicyPermissive accepts any known status
	PolicyPermissive TransitionPolicy = "permissive"
)

// ParseTransitionPolicy resolves a configured policy name; empty means strict
func ParseTransitionPolicy(name string) (TransitionPolicy, error) {
	switch p := TransitionPolicy(name); p {
	case "":
		return PolicyStrict, nil
	case PolicyStrict, PolicyAdminOverride, PolicyPermissive:
		return p, nil
	default:
		return "", fmt.Errorf("unknown transition policy %q", name)
	}
}

// Check returns ErrInvalidTransition-coded errors for disallowed moves
func (p TransitionPolicy) Check(from, to Status, actor identity.Actor) error {
	if !to.IsValid() {
		return shared.NewValidationError("invalid status: " + string(to))
	}
	switch p {
	case PolicyPermissive:
		return nil
	case PolicyAdminOverride:
		if actor.IsAdmin() {
			return nil
		}
	}
	if from.CanTransitionTo(to) {
		return nil
	}
	return shared.NewDomainError(shared.CodeInvalidTransition,
		fmt.Sprintf("cannot change status from %s to %s", from, to))
}
