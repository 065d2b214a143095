package reconciliation

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newParams(amount string) NewParams {
	return NewParams{
		ReferenceNumber:    "MUT-2026-001",
		CompanyID:          uuid.New(),
		CompanyName:        "Acme Ltd",
		Type:               "cari",
		DebtCredit:         "borc",
		Amount:             decimal.RequireFromString(amount),
		ReconciliationDate: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		CreatedBy:          uuid.New(),
	}
}

func TestNew(t *testing.T) {
	t.Run("starts pending with difference equal to amount", func(t *testing.T) {
		r, err := New(newParams("1234.56"), testNow)

		require.NoError(t, err)
		assert.Equal(t, StatusPending, r.Status)
		assert.True(t, r.TheirAmount.IsZero())
		assert.True(t, r.Difference().Equal(decimal.RequireFromString("1234.56")))
		assert.Equal(t, "Acme Ltd - cari (borc)", r.Title)
		assert.Equal(t, DefaultCurrency, r.Currency)
		assert.Equal(t, 2026, r.Year)
		assert.Equal(t, 2, r.Month)
		assert.Equal(t, testNow, r.CreatedAt)
	})

	t.Run("derives priority from amount", func(t *testing.T) {
		cases := map[string]Priority{
			"60000":    PriorityHigh,
			"50000.01": PriorityHigh,
			"50000":    PriorityMedium,
			"25000":    PriorityMedium,
			"20000":    PriorityLow,
			"5000":     PriorityLow,
		}
		for amount, want := range cases {
			r, err := New(newParams(amount), testNow)
			require.NoError(t, err)
			assert.Equal(t, want, r.Priority, amount)
		}
	})

	t.Run("explicit priority wins", func(t *testing.T) {
		p := newParams("100")
		p.Priority = PriorityUrgent
		r, err := New(p, testNow)
		require.NoError(t, err)
		assert.Equal(t, PriorityUrgent, r.Priority)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		for _, amount := range []string{"0", "-1"} {
			_, err := New(newParams(amount), testNow)
			assert.EqualError(t, err, "amount must be greater than 0")
		}
	})

	t.Run("requires an actor", func(t *testing.T) {
		p := newParams("10")
		p.CreatedBy = uuid.Nil
		_, err := New(p, testNow)
		assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	})
}

func TestReconciliation_ChangeStatus(t *testing.T) {
	r, err := New(newParams("10"), testNow)
	require.NoError(t, err)
	later := testNow.Add(time.Hour)
	actor := identity.Actor{UserID: uuid.New(), Role: identity.RoleStaff}

	require.NoError(t, r.ChangeStatus(StatusDisputed, PolicyStrict, actor, later))
	assert.Equal(t, StatusDisputed, r.Status)
	assert.Equal(t, later, r.UpdatedAt)

	err = r.ChangeStatus(StatusMatched, PolicyStrict, actor, later)
	assert.True(t, errors.Is(err, shared.ErrInvalidTransition))
	assert.Equal(t, StatusDisputed, r.Status)
}

func TestReconciliation_IsOverdue(t *testing.T) {
	today := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	sameDay := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	r := &Reconciliation{Status: StatusPending, DueDate: &yesterday}
	assert.True(t, r.IsOverdue(today))

	r.DueDate = &sameDay
	assert.False(t, r.IsOverdue(today))

	r.DueDate = &yesterday
	r.Status = StatusResolved
	assert.False(t, r.IsOverdue(today))

	r.DueDate = nil
	r.Status = StatusPending
	assert.False(t, r.IsOverdue(today))
}

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "MUT-2026-001", FormatReference(2026, 1))
	assert.Equal(t, "MUT-2026-042", FormatReference(2026, 42))
	assert.Equal(t, "MUT-2026-1234", FormatReference(2026, 1234))
	assert.Equal(t, "reconciliation:2026", SequenceName(2026))
}
