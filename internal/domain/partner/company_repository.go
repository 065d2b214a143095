package partner

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines persistence for companies
type CompanyRepository interface {
	// Upsert inserts the company or merges it into the existing row with
	// the same code (see Company.Merge), returning the stored row.
	Upsert(ctx context.Context, company *Company) (*Company, error)

	// FindByID finds a company by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByCode finds a company by its normalized code
	FindByCode(ctx context.Context, code string) (*Company, error)
}
