package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	appshared "github.com/iletigo/mutabakat/internal/application/shared"
	"github.com/iletigo/mutabakat/internal/domain/audit"
	"github.com/iletigo/mutabakat/internal/domain/partner"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope(t *testing.T) {
	ctx := context.Background()

	t.Run("commits all repositories together", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)

		err := scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
			c, err := partner.NewCompany(partner.CompanyInput{Code: "ACME", Name: "Acme"}, testNow)
			if err != nil {
				return err
			}
			stored, err := repos.Companies().Upsert(ctx, c)
			if err != nil {
				return err
			}
			e, err := audit.NewEntry(ctx, uuid.New(), audit.ActionCreate, "companies", stored.ID, nil, testNow)
			if err != nil {
				return err
			}
			return repos.Activities().Append(ctx, e)
		})
		require.NoError(t, err)

		var companies, logs int64
		require.NoError(t, db.Model(&models.CompanyModel{}).Count(&companies).Error)
		require.NoError(t, db.Model(&models.ActivityLogModel{}).Count(&logs).Error)
		assert.Equal(t, int64(1), companies)
		assert.Equal(t, int64(1), logs)
	})

	t.Run("rolls back every write on error", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)
		boom := errors.New("boom")

		err := scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
			if _, err := repos.Sequences().Next(ctx, "reconciliation:2026"); err != nil {
				return err
			}
			c, _ := partner.NewCompany(partner.CompanyInput{Code: "ACME", Name: "Acme"}, testNow)
			if _, err := repos.Companies().Upsert(ctx, c); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var companies, sequences int64
		require.NoError(t, db.Model(&models.CompanyModel{}).Count(&companies).Error)
		require.NoError(t, db.Model(&models.SequenceModel{}).Count(&sequences).Error)
		assert.Zero(t, companies)
		assert.Zero(t, sequences)
	})
}
