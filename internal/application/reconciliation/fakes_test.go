package reconciliation

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	appshared "github.com/iletigo/mutabakat/internal/application/shared"
	"github.com/iletigo/mutabakat/internal/domain/audit"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/partner"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/shared"
)

// memStore is an in-memory database. Transactions snapshot the whole
// store and restore it when the callback fails.
type memStore struct {
	users       map[uuid.UUID]identity.User
	companies   map[string]partner.Company
	recs        map[uuid.UUID]reconciliation.Reconciliation
	details     []reconciliation.Detail
	attachments []reconciliation.Attachment
	comments    []reconciliation.Comment
	periods     []reconciliation.Period
	sequences   map[string]int64
	activities  []audit.Entry

	failActivity error
	commits      int
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]identity.User{},
		companies: map[string]partner.Company{},
		recs:      map[uuid.UUID]reconciliation.Reconciliation{},
		sequences: map[string]int64{},
	}
}

func (m *memStore) snapshot() *memStore {
	return &memStore{
		users:       maps.Clone(m.users),
		companies:   maps.Clone(m.companies),
		recs:        maps.Clone(m.recs),
		details:     slices.Clone(m.details),
		attachments: slices.Clone(m.attachments),
		comments:    slices.Clone(m.comments),
		periods:     slices.Clone(m.periods),
		sequences:   maps.Clone(m.sequences),
		activities:  slices.Clone(m.activities),
	}
}

func (m *memStore) restore(s *memStore) {
	m.users, m.companies, m.recs = s.users, s.companies, s.recs
	m.details, m.attachments, m.comments = s.details, s.attachments, s.comments
	m.periods, m.sequences, m.activities = s.periods, s.sequences, s.activities
}

func (m *memStore) addUser(first, last string, role identity.Role, active bool) identity.User {
	u := identity.User{
		BaseEntity: shared.NewBaseEntity(testNow),
		Email:      strings.ToLower(first) + "@iletigo.com",
		FirstName:  first,
		LastName:   last,
		Role:       role,
		IsActive:   active,
	}
	m.users[u.ID] = u
	return u
}

func (m *memStore) userName(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	if u, ok := m.users[*id]; ok {
		return u.DisplayName()
	}
	return identity.UnknownUserName
}

func (m *memStore) actions() []audit.Action {
	out := make([]audit.Action, len(m.activities))
	for i := range m.activities {
		out[i] = m.activities[i].Action
	}
	return out
}

func (m *memStore) repositories() Repositories {
	return Repositories{
		Reconciliations: memRecRepo{m},
		Details:         memDetailRepo{m},
		Attachments:     memAttachmentRepo{m},
		Comments:        memCommentRepo{m},
	}
}

// Execute implements appshared.TransactionScope
func (m *memStore) Execute(_ context.Context, fn func(repos appshared.TransactionalRepositories) error) error {
	snap := m.snapshot()
	if err := fn(memTx{m}); err != nil {
		m.restore(snap)
		return err
	}
	m.commits++
	return nil
}

type memTx struct{ m *memStore }

func (t memTx) Users() identity.UserRepository { return memUserRepo(t) }
func (t memTx) Companies() partner.CompanyRepository { return memCompanyRepo(t) }
func (t memTx) Reconciliations() reconciliation.Repository { return memRecRepo(t) }
func (t memTx) Details() reconciliation.DetailRepository { return memDetailRepo(t) }
func (t memTx) Attachments() reconciliation.AttachmentRepository { return memAttachmentRepo(t) }
func (t memTx) Comments() reconciliation.CommentRepository { return memCommentRepo(t) }
func (t memTx) Periods() reconciliation.PeriodRepository { return memPeriodRepo(t) }
func (t memTx) Sequences() reconciliation.SequenceRepository { return memSequenceRepo(t) }
func (t memTx) Activities() audit.Repository { return memActivityRepo(t) }

type memUserRepo struct{ m *memStore }

func (r memUserRepo) Create(_ context.Context, u *identity.User) error {
	r.m.users[u.ID] = *u
	return nil
}

func (r memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.m.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (r memUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.m.users {
		if u.Email == identity.NormalizeEmail(email) {
			return &u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r memUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	u, ok := r.m.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.LastLogin = &at
	r.m.users[id] = u
	return nil
}

func (r memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

type memCompanyRepo struct{ m *memStore }

func (r memCompanyRepo) Upsert(_ context.Context, c *partner.Company) (*partner.Company, error) {
	if existing, ok := r.m.companies[c.Code]; ok {
		existing.Merge(c, testNow)
		r.m.companies[c.Code] = existing
		return &existing, nil
	}
	r.m.companies[c.Code] = *c
	out := *c
	return &out, nil
}

func (r memCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Company, error) {
	for _, c := range r.m.companies {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r memCompanyRepo) FindByCode(_ context.Context, code string) (*partner.Company, error) {
	c, ok := r.m.companies[partner.NormalizeCode(code)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

type memRecRepo struct{ m *memStore }

func (r memRecRepo) Create(_ context.Context, rec *reconciliation.Reconciliation) error {
	for _, existing := range r.m.recs {
		if existing.ReferenceNumber == rec.ReferenceNumber {
			return shared.ErrAlreadyExists
		}
	}
	r.m.recs[rec.ID] = *rec
	return nil
}

func (r memRecRepo) Update(_ context.Context, rec *reconciliation.Reconciliation) error {
	stored, ok := r.m.recs[rec.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != rec.Version {
		return shared.ErrConcurrentUpdate
	}
	rec.Version++
	r.m.recs[rec.ID] = *rec
	return nil
}

func (r memRecRepo) FindByID(_ context.Context, id uuid.UUID) (*reconciliation.Reconciliation, error) {
	rec, ok := r.m.recs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &rec, nil
}

func (r memRecRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.m.recs[id]
	return ok, nil
}

func (r memRecRepo) view(rec reconciliation.Reconciliation) reconciliation.View {
	v := reconciliation.View{Reconciliation: rec}
	for _, c := range r.m.companies {
		if c.ID == rec.CompanyID {
			v.CompanyName, v.CompanyCode, v.CompanyTaxNumber = c.Name, c.Code, c.TaxNumber
		}
	}
	for _, p := range r.m.periods {
		if rec.PeriodID != nil && p.ID == *rec.PeriodID {
			v.PeriodName = p.Name
		}
	}
	v.AssignedToName = r.m.userName(rec.AssignedTo)
	v.CreatedByName = r.m.userName(&rec.CreatedBy)
	return v
}

func (r memRecRepo) FindView(_ context.Context, id uuid.UUID) (*reconciliation.View, error) {
	rec, ok := r.m.recs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	v := r.view(rec)
	return &v, nil
}

func (r memRecRepo) matching(filter reconciliation.ListFilter) []reconciliation.View {
	var out []reconciliation.View
	for _, rec := range r.m.recs {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && rec.Priority != filter.Priority {
			continue
		}
		v := r.view(rec)
		if q := strings.ToLower(filter.Search); q != "" &&
			!strings.Contains(strings.ToLower(v.Title), q) &&
			!strings.Contains(strings.ToLower(v.CompanyName), q) &&
			!strings.Contains(strings.ToLower(v.ReferenceNumber), q) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReferenceNumber > out[j].ReferenceNumber })
	return out
}

func (r memRecRepo) List(_ context.Context, filter reconciliation.ListFilter) ([]reconciliation.View, int64, error) {
	all := r.matching(filter)
	start := min(filter.Page.Offset(), len(all))
	end := min(start+filter.Page.PageSize, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r memRecRepo) ListAll(_ context.Context, filter reconciliation.ListFilter, limit int) ([]reconciliation.View, error) {
	all := r.matching(filter)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type memDetailRepo struct{ m *memStore }

func (r memDetailRepo) Create(_ context.Context, d *reconciliation.Detail) error {
	for _, existing := range r.m.details {
		if existing.ReconciliationID == d.ReconciliationID && existing.LineNumber == d.LineNumber {
			return shared.ErrAlreadyExists
		}
	}
	r.m.details = append(r.m.details, *d)
	return nil
}

func (r memDetailRepo) ListByReconciliation(_ context.Context, id uuid.UUID) ([]reconciliation.Detail, error) {
	var out []reconciliation.Detail
	for _, d := range r.m.details {
		if d.ReconciliationID == id {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineNumber < out[j].LineNumber })
	return out, nil
}

func (r memDetailRepo) MaxLineNumber(_ context.Context, id uuid.UUID) (int, error) {
	maxLine := 0
	for _, d := range r.m.details {
		if d.ReconciliationID == id && d.LineNumber > maxLine {
			maxLine = d.LineNumber
		}
	}
	return maxLine, nil
}

type memAttachmentRepo struct{ m *memStore }

func (r memAttachmentRepo) Create(_ context.Context, a *reconciliation.Attachment) error {
	r.m.attachments = append(r.m.attachments, *a)
	return nil
}

func (r memAttachmentRepo) FindByID(_ context.Context, recID, id uuid.UUID) (*reconciliation.Attachment, error) {
	for _, a := range r.m.attachments {
		if a.ID == id && a.ReconciliationID == recID {
			return &a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r memAttachmentRepo) ListByReconciliation(_ context.Context, id uuid.UUID) ([]reconciliation.AttachmentView, error) {
	var out []reconciliation.AttachmentView
	for _, a := range slices.Backward(r.m.attachments) {
		if a.ReconciliationID == id {
			out = append(out, reconciliation.AttachmentView{Attachment: a, UploadedByName: r.m.userName(&a.UploadedBy)})
		}
	}
	return out, nil
}

type memCommentRepo struct{ m *memStore }

func (r memCommentRepo) Create(_ context.Context, c *reconciliation.Comment) error {
	r.m.comments = append(r.m.comments, *c)
	return nil
}

func (r memCommentRepo) ListByReconciliation(_ context.Context, id uuid.UUID) ([]reconciliation.CommentView, error) {
	var out []reconciliation.CommentView
	for _, c := range slices.Backward(r.m.comments) {
		if c.ReconciliationID == id {
			out = append(out, reconciliation.CommentView{Comment: c, UserName: r.m.userName(&c.UserID)})
		}
	}
	return out, nil
}

type memPeriodRepo struct{ m *memStore }

func (r memPeriodRepo) FindActiveContaining(_ context.Context, date time.Time) (*reconciliation.Period, error) {
	for _, p := range r.m.periods {
		if p.Status == reconciliation.PeriodActive && p.Contains(date) {
			return &p, nil
		}
	}
	return nil, nil
}

type memSequenceRepo struct{ m *memStore }

func (r memSequenceRepo) Next(_ context.Context, name string) (int64, error) {
	r.m.sequences[name]++
	return r.m.sequences[name], nil
}

type memActivityRepo struct{ m *memStore }

func (r memActivityRepo) Append(_ context.Context, e *audit.Entry) error {
	if r.m.failActivity != nil {
		return r.m.failActivity
	}
	r.m.activities = append(r.m.activities, *e)
	return nil
}

// memObjects is an in-memory ObjectStorage
type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemObjects() *memObjects {
	return &memObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (o *memObjects) Put(_ context.Context, key string, data []byte, contentType string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.objects[key] = bytes.Clone(data)
	o.types[key] = contentType
	return nil
}

func (o *memObjects) Open(_ context.Context, key string) (io.ReadCloser, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	data, ok := o.objects[key]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (o *memObjects) Delete(_ context.Context, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.objects, key)
	return nil
}

func (o *memObjects) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.objects)
}

type fakeRenderer struct {
	calls   int
	lastAt  time.Time
	details int
}

func (f *fakeRenderer) Render(view *reconciliation.View, details []reconciliation.Detail, at time.Time) ([]byte, error) {
	f.calls++
	f.lastAt = at
	f.details = len(details)
	return []byte("<html>" + view.ReferenceNumber + "</html>"), nil
}

type fakePDF struct {
	err error
}

func (f fakePDF) Convert(_ context.Context, html []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte("%PDF-"), html...), nil
}

type fakeExporter struct {
	rows int
}

func (f *fakeExporter) Write(w io.Writer, rows []reconciliation.View) error {
	f.rows = len(rows)
	_, err := io.WriteString(w, "xlsx")
	return err
}

func (f *fakeExporter) ContentType() string   { return "application/vnd.ms-excel" }
func (f *fakeExporter) FileExtension() string { return "xlsx" }

type recordingMetrics struct {
	created  []reconciliation.Priority
	changes  [][2]reconciliation.Status
	reports  []string
	uploads  int
	exported []int
}

func (r *recordingMetrics) RecordCreated(_ context.Context, p reconciliation.Priority) {
	r.created = append(r.created, p)
}

func (r *recordingMetrics) RecordStatusChange(_ context.Context, from, to reconciliation.Status) {
	r.changes = append(r.changes, [2]reconciliation.Status{from, to})
}

func (r *recordingMetrics) RecordReport(_ context.Context, format string) {
	r.reports = append(r.reports, format)
}

func (r *recordingMetrics) RecordAttachment(context.Context, reconciliation.AttachmentKind, int64) {
	r.uploads++
}

func (r *recordingMetrics) RecordExport(_ context.Context, rows int) {
	r.exported = append(r.exported, rows)
}

var errBoom = errors.New("boom")
