// Package shared holds application-layer ports used by more than one service.
package shared

import (
	"context"

	"github.com/iletigo/mutabakat/internal/domain/audit"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/partner"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
)

// TransactionScope defines the interface for executing operations within a transaction.
// This allows application services to coordinate multiple repository operations atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a transaction.
// All repositories returned share the same underlying database transaction, so a
// mutation and its activity log entry commit or roll back together.
type TransactionalRepositories interface {
	Users() identity.UserRepository
	Companies() partner.CompanyRepository
	Reconciliations() reconciliation.Repository
	Details() reconciliation.DetailRepository
	Attachments() reconciliation.AttachmentRepository
	Comments() reconciliation.CommentRepository
	Periods() reconciliation.PeriodRepository
	Sequences() reconciliation.SequenceRepository
	Activities() audit.Repository
}
