package reconciliation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/audit"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store   *memStore
	objects *memObjects
	render  *fakeRenderer
	export  *fakeExporter
	metrics *recordingMetrics
	svc     *Service
	staff   identity.Actor
	admin   identity.Actor
}

func newFixture(t *testing.T, policy reconciliation.TransitionPolicy, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		store:   newMemStore(),
		objects: newMemObjects(),
		render:  &fakeRenderer{},
		export:  &fakeExporter{},
		metrics: &recordingMetrics{},
	}
	staff := f.store.addUser("Ayşe", "Yılmaz", identity.RoleStaff, true)
	admin := f.store.addUser("Mehmet", "Demir", identity.RoleAdmin, true)
	f.staff = identity.Actor{UserID: staff.ID, Role: staff.Role}
	f.admin = identity.Actor{UserID: admin.ID, Role: admin.Role}
	f.store.periods = []reconciliation.Period{{
		ID:        uuid.New(),
		Name:      "2026 Q1",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    reconciliation.PeriodActive,
	}}

	all := append([]Option{
		WithStorage(f.objects),
		WithRenderer(f.render),
		WithExporter(f.export),
		WithMetrics(f.metrics),
	}, opts...)
	f.svc = NewService(f.store.repositories(), f.store, shared.FixedClock(testNow),
		Config{Policy: policy}, zap.NewNop(), all...)
	return f
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validInput() CreateInput {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	return CreateInput{
		CompanyCode:        " abc01 ",
		CompanyName:        "Deniz Lojistik",
		ContactPerson:      "Ali Kaya",
		Email:              "info@deniz.com",
		Phone:              "0212 555 00 00",
		Type:               "cari",
		DebtCredit:         "borc",
		Amount:             amount("60000"),
		ReconciliationDate: &date,
	}
}

func (f *fixture) create(t *testing.T) *reconciliation.Reconciliation {
	t.Helper()
	res, err := f.svc.Create(context.Background(), f.staff, validInput())
	require.NoError(t, err)
	return res.Reconciliation
}

func TestCreate(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)

	res, err := f.svc.Create(context.Background(), f.staff, validInput())
	require.NoError(t, err)

	rec := res.Reconciliation
	assert.Equal(t, "MUT-2026-001", rec.ReferenceNumber)
	assert.Equal(t, "Deniz Lojistik - cari (borc)", rec.Title)
	assert.Equal(t, reconciliation.StatusPending, rec.Status)
	assert.Equal(t, reconciliation.PriorityHigh, rec.Priority)
	assert.Equal(t, "TRY", rec.Currency)
	assert.True(t, rec.Difference().Equal(decimal.NewFromInt(60000)))
	assert.True(t, rec.TheirAmount.IsZero())
	assert.Equal(t, f.staff.UserID, rec.CreatedBy)
	assert.Equal(t, 2026, rec.Year)
	assert.Equal(t, 2, rec.Month)
	require.NotNil(t, rec.PeriodID)
	assert.Equal(t, f.store.periods[0].ID, *rec.PeriodID)

	assert.Equal(t, "ABC01", res.Company.Code)
	assert.Equal(t, []audit.Action{audit.ActionCreate}, f.store.actions())
	assert.Equal(t, []reconciliation.Priority{reconciliation.PriorityHigh}, f.metrics.created)
}

func TestCreate_SequentialReferences(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)

	first := f.create(t)
	second := f.create(t)

	assert.Equal(t, "MUT-2026-001", first.ReferenceNumber)
	assert.Equal(t, "MUT-2026-002", second.ReferenceNumber)
	assert.Len(t, f.store.companies, 1)
}

func TestCreate_CompanyUpsertKeepsOptionalFields(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	f.create(t)

	in := validInput()
	in.CompanyName = "Deniz Lojistik A.Ş."
	in.ContactPerson = ""
	res, err := f.svc.Create(context.Background(), f.staff, in)
	require.NoError(t, err)

	assert.Equal(t, "Deniz Lojistik A.Ş.", res.Company.Name)
	assert.Equal(t, "Ali Kaya", res.Company.ContactPerson)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CreateInput)
		want   string
	}{
		{"missing code", func(in *CreateInput) { in.CompanyCode = "  " }, "company_code is required"},
		{"first missing wins", func(in *CreateInput) { in.Email = ""; in.Type = "" }, "email is required"},
		{"missing phone", func(in *CreateInput) { in.Phone = "" }, "phone is required"},
		{"missing debt credit", func(in *CreateInput) { in.DebtCredit = "" }, "debt_credit is required"},
		{"missing amount", func(in *CreateInput) { in.Amount = nil }, "amount is required"},
		{"zero amount", func(in *CreateInput) { in.Amount = amount("0") }, "amount must be greater than 0"},
		{"negative amount", func(in *CreateInput) { in.Amount = amount("-5") }, "amount must be greater than 0"},
		{"missing date", func(in *CreateInput) { in.ReconciliationDate = nil }, "reconciliation_date is required"},
		{"bad month", func(in *CreateInput) { in.Month = 13 }, "month must be between 1 and 12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, reconciliation.PolicyStrict)
			in := validInput()
			tt.modify(&in)

			_, err := f.svc.Create(context.Background(), f.staff, in)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
			assert.Equal(t, tt.want, err.Error())
			assert.Empty(t, f.store.recs)
			assert.Empty(t, f.store.activities)
		})
	}
}

func TestCreate_Priority(t *testing.T) {
	tests := []struct {
		amount   string
		override string
		want     reconciliation.Priority
	}{
		{"50000.01", "", reconciliation.PriorityHigh},
		{"50000", "", reconciliation.PriorityMedium},
		{"20000", "", reconciliation.PriorityLow},
		{"100", "urgent", reconciliation.PriorityUrgent},
		{"100", "bogus", reconciliation.PriorityLow},
	}
	for _, tt := range tests {
		f := newFixture(t, reconciliation.PolicyStrict)
		in := validInput()
		in.Amount = amount(tt.amount)
		in.Priority = tt.override

		res, err := f.svc.Create(context.Background(), f.staff, in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Reconciliation.Priority, "amount %s override %q", tt.amount, tt.override)
	}
}

func TestCreate_NoMatchingPeriod(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	in := validInput()
	date := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	in.ReconciliationDate = &date

	res, err := f.svc.Create(context.Background(), f.staff, in)
	require.NoError(t, err)
	assert.Nil(t, res.Reconciliation.PeriodID)
	assert.Equal(t, 2025, res.Reconciliation.Year)
}

func TestCreate_RollsBackWhenActivityFails(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	f.store.failActivity = errBoom

	_, err := f.svc.Create(context.Background(), f.staff, validInput())
	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.store.recs)
	assert.Empty(t, f.store.companies)
	assert.Empty(t, f.store.sequences)
	assert.Empty(t, f.metrics.created)
}

func TestCreate_RequiresActor(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	_, err := f.svc.Create(context.Background(), identity.Actor{}, validInput())
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestGet(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	rec := f.create(t)
	ctx := context.Background()

	_, err := f.svc.AddDetail(ctx, f.staff, rec.ID, reconciliation.DetailInput{Description: "Fatura", OurAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, f.staff, rec.ID, CommentInput{Content: "ilk"})
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, f.admin, rec.ID, CommentInput{Content: "ikinci"})
	require.NoError(t, err)

	t.Run("header only", func(t *testing.T) {
		full, err := f.svc.Get(ctx, rec.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "Deniz Lojistik", full.CompanyName)
		assert.Equal(t, "2026 Q1", full.PeriodName)
		assert.Equal(t, "Ayşe Yılmaz", full.CreatedByName)
		assert.Nil(t, full.Details)
	})

	t.Run("with related", func(t *testing.T) {
		full, err := f.svc.Get(ctx, rec.ID, true)
		require.NoError(t, err)
		require.Len(t, full.Details, 1)
		assert.NotNil(t, full.Attachments)
		assert.Empty(t, full.Attachments)
		require.Len(t, full.Comments, 2)
		assert.Equal(t, "ikinci", full.Comments[0].Content)
		assert.Equal(t, "Mehmet Demir", full.Comments[0].UserName)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := f.svc.Get(ctx, uuid.New(), true)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestList(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	for range 3 {
		f.create(t)
	}

	filter, err := reconciliation.NewListFilter(2, 2, "all", "", "", "", "")
	require.NoError(t, err)
	page, err := f.svc.List(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 1)

	filter, err = reconciliation.NewListFilter(1, 10, "resolved", "", "", "", "")
	require.NoError(t, err)
	page, err = f.svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func mustPatch(t *testing.T, body string) Patch {
	t.Helper()
	p, err := ParsePatch([]byte(body))
	require.NoError(t, err)
	return p
}

func TestUpdatePartial_Status(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	rec := f.create(t)
	ctx := context.Background()

	body := `{"status":"matched","note":"kept verbatim"}`
	view, err := f.svc.UpdatePartial(ctx, f.staff, rec.ID, mustPatch(t, body))
	require.NoError(t, err)
	assert.Equal(t, reconciliation.StatusMatched, view.Status)

	last := f.store.activities[len(f.store.activities)-1]
	assert.Equal(t, audit.ActionUpdate, last.Action)
	assert.Equal(t, body, last.NewValues)
	assert.Equal(t, [][2]reconciliation.Status{{reconciliation.StatusPending, reconciliation.StatusMatched}}, f.metrics.changes)

	// rewriting the current status is allowed
	_, err = f.svc.UpdatePartial(ctx, f.staff, rec.ID, mustPatch(t, `{"status":"matched"}`))
	require.NoError(t, err)

	_, err = f.svc.UpdatePartial(ctx, f.staff, rec.ID, mustPatch(t, `{"status":"disputed"}`))
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
	assert.Equal(t, reconciliation.StatusMatched, f.store.recs[rec.ID].Status)
}

func TestUpdatePartial_TerminalStatesUnderStrictPolicy(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	rec := f.create(t)
	ctx := context.Background()

	_, err := f.svc.UpdatePartial(ctx, f.staff, rec.ID, mustPatch(t, `{"status":"cancelled"}`))
	require.NoError(t, err)

	_, err = f.svc.UpdatePartial(ctx, f.admin, rec.ID, mustPatch(t, `{"status":"pending"}`))
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestUpdatePartial_AdminOverride(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyAdminOverride)
	rec := f.create(t)
	ctx := context.Background()

	_, err := f.svc.UpdatePartial(ctx, f.staff, rec.ID, mustPatch(t, `{"status":"resolved"}`))
	require.NoError(t, err)

	_, err = f.svc.UpdatePartial(ctx, f.staff, rec.ID, mustPatch(t, `{"status":"pending"}`))
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	view, err := f.svc.UpdatePartial(ctx, f.admin, rec.ID, mustPatch(t, `{"status":"pending"}`))
	require.NoError(t, err)
	assert.Equal(t, reconciliation.StatusPending, view.Status)
}

func TestUpdatePartial_Permissive(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyPermissive)
	rec := f.create(t)
	ctx := context.Background()

	_, err := f.svc.UpdatePartial(ctx, f.staff, rec.ID, mustPatch(t, `{"status":"cancelled"}`))
	require.NoError(t, err)
	_, err = f.svc.UpdatePartial(ctx, f.staff, rec.ID, mustPatch(t, `{"status":"disputed"}`))
	require.NoError(t, err)

	_, err = f.svc.UpdatePartial(ctx, f.staff, rec.ID, mustPatch(t, `{"status":"lost"}`))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestUpdatePartial_Assignment(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	rec := f.create(t)
	ctx := context.Background()
	inactive := f.store.addUser("Eski", "Personel", identity.RoleStaff, false)

	view, err := f.svc.UpdatePartial(ctx, f.staff, rec.ID,
		mustPatch(t, `{"assigned_to":"`+f.admin.UserID.String()+`"}`))
	require.NoError(t, err)
	require.NotNil(t, view.AssignedTo)
	assert.Equal(t, "Mehmet Demir", view.AssignedToName)
	assert.Equal(t, testNow, view.UpdatedAt)

	_, err = f.svc.UpdatePartial(ctx, f.staff, rec.ID,
		mustPatch(t, `{"assigned_to":"`+inactive.ID.String()+`"}`))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = f.svc.UpdatePartial(ctx, f.staff, rec.ID,
		mustPatch(t, `{"assigned_to":"`+uuid.NewString()+`"}`))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	view, err = f.svc.UpdatePartial(ctx, f.staff, rec.ID, mustPatch(t, `{"assigned_to":null}`))
	require.NoError(t, err)
	assert.Nil(t, view.AssignedTo)
}

func TestUpdatePartial_NoFieldFailsBeforeAnyRead(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	before := f.store.commits

	_, err := f.svc.UpdatePartial(context.Background(), f.staff, uuid.New(), mustPatch(t, `{"title":"x"}`))
	require.Error(t, err)
	assert.Equal(t, "no field to update", err.Error())
	assert.Equal(t, before, f.store.commits)
}

func TestUpdatePartial_Missing(t *testing.T) {
	f := newFixture(t, reconciliation.PolicyStrict)
	_, err := f.svc.UpdatePartial(context.Background(), f.staff, uuid.New(), mustPatch(t, `{"status":"matched"}`))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestParsePatch(t *testing.T) {
	p, err := ParsePatch([]byte(`{"assigned_to":null}`))
	require.NoError(t, err)
	assert.True(t, p.AssignedToSet)
	assert.Nil(t, p.AssignedTo)
	assert.False(t, p.StatusSet)
	assert.JSONEq(t, `{"assigned_to":null}`, string(p.Raw))

	_, err = ParsePatch([]byte(`{"status":5}`))
	assert.Error(t, err)

	_, err = ParsePatch([]byte(`not json`))
	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}
