package migration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/iletigo/mutabakat/migrations"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("mutabakat"),
		postgres.WithUsername("mutabakat"),
		postgres.WithPassword("mutabakat"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.PingContext(ctx))
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestMigrator_UpAndDown(t *testing.T) {
	db := startPostgres(t)

	m, err := New(db, migrations.FS, zaptest.NewLogger(t))
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, m.Up())
	require.NoError(t, m.Up(), "second run is a no-op")

	for _, table := range []string{"users", "companies", "reconciliation_periods", "reconciliations",
		"reconciliation_details", "attachments", "comments", "activity_logs", "sequences"} {
		assert.True(t, tableExists(t, db, table), table)
	}

	var periods int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM reconciliation_periods WHERE status = 'active'`).Scan(&periods))
	assert.Equal(t, 4, periods)

	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(20260301090200), version)

	t.Run("reconciliations carry a lock version", func(t *testing.T) {
		var count int
		err := db.QueryRow(`SELECT COUNT(*) FROM information_schema.columns
			WHERE table_name = 'reconciliations' AND column_name = 'version'`).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("detail line numbers are unique per reconciliation", func(t *testing.T) {
		var count int
		err := db.QueryRow(`SELECT COUNT(*) FROM pg_indexes WHERE indexname = 'idx_detail_line'`).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	require.NoError(t, m.Steps(-2))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM reconciliation_periods`).Scan(&periods))
	assert.Zero(t, periods)

	require.NoError(t, m.Down())
	assert.False(t, tableExists(t, db, "reconciliations"))
	require.NoError(t, m.Close())
}
