package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/partner"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// newTestDB opens an in-memory sqlite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, first, last string, active bool) *identity.User {
	t.Helper()
	u, err := identity.NewUser(email, "password123", first, last, identity.RoleStaff, testNow)
	require.NoError(t, err)
	u.IsActive = active
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), u))
	return u
}

func seedCompany(t *testing.T, db *gorm.DB, code, name string) *partner.Company {
	t.Helper()
	c, err := partner.NewCompany(partner.CompanyInput{Code: code, Name: name, Email: "info@example.com", Phone: "212"}, testNow)
	require.NoError(t, err)
	stored, err := NewGormCompanyRepository(db).Upsert(context.Background(), c)
	require.NoError(t, err)
	return stored
}

type recOpts struct {
	ref        string
	amount     string
	status     reconciliation.Status
	due        *time.Time
	createdAt  time.Time
	assignedTo *uuid.UUID
}

func seedReconciliation(t *testing.T, db *gorm.DB, company *partner.Company, creator *identity.User, o recOpts) *reconciliation.Reconciliation {
	t.Helper()
	if o.createdAt.IsZero() {
		o.createdAt = testNow
	}
	rec, err := reconciliation.New(reconciliation.NewParams{
		ReferenceNumber:    o.ref,
		CompanyID:          company.ID,
		CompanyName:        company.Name,
		Type:               "cari",
		DebtCredit:         "borc",
		Amount:             decimal.RequireFromString(o.amount),
		ReconciliationDate: testNow,
		DueDate:            o.due,
		CreatedBy:          creator.ID,
	}, o.createdAt)
	require.NoError(t, err)
	if o.status != "" {
		rec.Status = o.status
	}
	rec.AssignedTo = o.assignedTo
	require.NoError(t, NewGormReconciliationRepository(db).Create(context.Background(), rec))
	return rec
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
