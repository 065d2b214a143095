package reconciliation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:   {StatusPending, StatusMatched, StatusDisputed, StatusResolved, StatusCancelled},
		StatusMatched:   {StatusMatched, StatusResolved, StatusCancelled},
		StatusDisputed:  {StatusDisputed, StatusResolved, StatusCancelled},
		StatusResolved:  {StatusResolved},
		StatusCancelled: {StatusCancelled},
	}
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("disputed")
	require.NoError(t, err)
	assert.Equal(t, StatusDisputed, st)

	_, err = ParseStatus("archived")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestTransitionPolicy_Check(t *testing.T) {
	staff := identity.Actor{UserID: uuid.New(), Role: identity.RoleStaff}
	admin := identity.Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

	t.Run("strict rejects leaving a terminal state", func(t *testing.T) {
		err := PolicyStrict.Check(StatusResolved, StatusPending, admin)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidTransition))
		assert.Contains(t, err.Error(), "resolved to pending")
	})

	t.Run("strict allows graph edges and identity", func(t *testing.T) {
		assert.NoError(t, PolicyStrict.Check(StatusPending, StatusMatched, staff))
		assert.NoError(t, PolicyStrict.Check(StatusCancelled, StatusCancelled, staff))
	})

	t.Run("admin override only for admins", func(t *testing.T) {
		assert.NoError(t, PolicyAdminOverride.Check(StatusResolved, StatusDisputed, admin))
		assert.Error(t, PolicyAdminOverride.Check(StatusResolved, StatusDisputed, staff))
	})

	t.Run("permissive accepts any known status", func(t *testing.T) {
		assert.NoError(t, PolicyPermissive.Check(StatusCancelled, StatusPending, staff))
	})

	t.Run("unknown target is a validation error under every policy", func(t *testing.T) {
		for _, p := range []TransitionPolicy{PolicyStrict, PolicyAdminOverride, PolicyPermissive} {
			err := p.Check(StatusPending, Status("bogus"), admin)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput), string(p))
		}
	})
}

func TestParseTransitionPolicy(t *testing.T) {
	p, err := ParseTransitionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	p, err = ParseTransitionPolicy("admin_override")
	require.NoError(t, err)
	assert.Equal(t, PolicyAdminOverride, p)

	_, err = ParseTransitionPolicy("lenient")
	assert.Error(t, err)
}
