package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodRepository_FindActiveContaining(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPeriodRepository(db)
	ctx := context.Background()

	day := func(m time.Month, d int) time.Time { return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC) }
	periods := []models.PeriodModel{
		{ID: uuid.New(), Name: "Closed Q1", StartDate: day(1, 1), EndDate: day(3, 31), Status: reconciliation.PeriodClosed, CreatedAt: testNow},
		{ID: uuid.New(), Name: "March", StartDate: day(3, 1), EndDate: day(3, 31), Status: reconciliation.PeriodActive, CreatedAt: testNow},
		{ID: uuid.New(), Name: "April", StartDate: day(4, 1), EndDate: day(4, 30), Status: reconciliation.PeriodActive, CreatedAt: testNow},
	}
	require.NoError(t, db.Create(&periods).Error)

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"inside", day(3, 14), "March"},
		{"first day inclusive", day(3, 1), "March"},
		{"last day inclusive with time of day", time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC), "March"},
		{"next period", day(4, 1), "April"},
		{"no active period", day(2, 10), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := repo.FindActiveContaining(ctx, tt.date)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestSequenceRepository_Next(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSequenceRepository(db)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := repo.Next(ctx, reconciliation.SequenceName(2026))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := repo.Next(ctx, reconciliation.SequenceName(2027))
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "each year has its own counter")
}
