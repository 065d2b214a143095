package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	appshared "github.com/iletigo/mutabakat/internal/application/shared"
	"github.com/iletigo/mutabakat/internal/domain/audit"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/partner"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/shared"
)

type memUsers struct {
	byID map[uuid.UUID]*identity.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]*identity.User{}}
}

func (m *memUsers) Create(_ context.Context, u *identity.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range m.byID {
		if u.Email == identity.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memUsers) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	u, ok := m.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.LastLogin = &at
	return nil
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

type memActivities struct {
	entries []audit.Entry
	fail    error
}

func (m *memActivities) Append(_ context.Context, e *audit.Entry) error {
	if m.fail != nil {
		return m.fail
	}
	m.entries = append(m.entries, *e)
	return nil
}

// memScope runs callbacks against the in-memory user and activity stores.
// Only the repositories the identity services touch are provided.
type memScope struct {
	users      *memUsers
	activities *memActivities
}

func (s *memScope) Execute(_ context.Context, fn func(repos appshared.TransactionalRepositories) error) error {
	return fn(s)
}

func (s *memScope) Users() identity.UserRepository { return s.users }
func (s *memScope) Activities() audit.Repository { return s.activities }
func (s *memScope) Companies() partner.CompanyRepository { return nil }
func (s *memScope) Reconciliations() reconciliation.Repository { return nil }
func (s *memScope) Details() reconciliation.DetailRepository { return nil }
func (s *memScope) Attachments() reconciliation.AttachmentRepository { return nil }
func (s *memScope) Comments() reconciliation.CommentRepository { return nil }
func (s *memScope) Periods() reconciliation.PeriodRepository { return nil }
func (s *memScope) Sequences() reconciliation.SequenceRepository { return nil }
