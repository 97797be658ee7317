package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSyncLogRepository creates a GormSyncLogRepository with a mocked SQL connection
func newMockSyncLogRepository(t *testing.T) (*GormSyncLogRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSyncLogRepository(gormDB), mock, mockDB
}

func syncLogRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "entity_type", "direction", "status",
		"records_total", "processed", "failed_count", "started_at",
	}).AddRow(id, "customers", "inbound", "completed", 10, 9, 1, time.Now())
}

func TestGormSyncLogRepository_FindByID(t *testing.T) {
	t.Run("finds existing log", func(t *testing.T) {
		repo, mock, mockDB := newMockSyncLogRepository(t)
		defer mockDB.Close()

		logID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "sync_logs" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(logID, 1).
			WillReturnRows(syncLogRows(logID))

		log, err := repo.FindByID(context.Background(), logID)

		require.NoError(t, err)
		assert.Equal(t, logID, log.ID)
		assert.Equal(t, syncdom.EntityCustomers, log.EntityType)
		assert.Equal(t, syncdom.SyncStatusCompleted, log.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing log", func(t *testing.T) {
		repo, mock, mockDB := newMockSyncLogRepository(t)
		defer mockDB.Close()

		logID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "sync_logs" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(logID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		log, err := repo.FindByID(context.Background(), logID)

		assert.Nil(t, log)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSyncLogRepository_FindAll(t *testing.T) {
	t.Run("applies filter, ordering and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockSyncLogRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "sync_logs" WHERE entity_type = \$1 AND status = \$2 ORDER BY started_at DESC LIMIT .* OFFSET .*`).
			WithArgs("customers", "completed", 20, 20).
			WillReturnRows(syncLogRows(uuid.New()))

		logs, err := repo.FindAll(context.Background(),
			syncdom.SyncLogFilter{EntityType: syncdom.EntityCustomers, Status: syncdom.SyncStatusCompleted},
			shared.Filter{Page: 2, PageSize: 20},
		)

		require.NoError(t, err)
		assert.Len(t, logs, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips pagination when unset", func(t *testing.T) {
		repo, mock, mockDB := newMockSyncLogRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "sync_logs" ORDER BY started_at DESC`).
			WillReturnRows(syncLogRows(uuid.New()))

		logs, err := repo.FindAll(context.Background(), syncdom.SyncLogFilter{}, shared.Filter{})

		require.NoError(t, err)
		assert.Len(t, logs, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSyncLogRepository_Count(t *testing.T) {
	repo, mock, mockDB := newMockSyncLogRepository(t)
	defer mockDB.Close()

	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "sync_logs" WHERE direction = \$1 AND started_at >= \$2`).
		WithArgs("inbound", since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count(context.Background(), syncdom.SyncLogFilter{
		Direction: syncdom.DirectionInbound,
		Since:     &since,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSyncLogRepository_Summarize(t *testing.T) {
	repo, mock, mockDB := newMockSyncLogRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"entity_type", "status", "count"}).
		AddRow("customers", "completed", 12).
		AddRow("products", "failed", 3)

	mock.ExpectQuery(`SELECT entity_type, status, COUNT\(\*\) as count FROM "sync_logs" GROUP BY entity_type, status`).
		WillReturnRows(rows)

	summaries, err := repo.Summarize(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, syncdom.EntityCustomers, summaries[0].EntityType)
	assert.Equal(t, int64(12), summaries[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSyncLogRepository_DeleteOlderThan(t *testing.T) {
	repo, mock, mockDB := newMockSyncLogRepository(t)
	defer mockDB.Close()

	cutoff := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM "sync_logs" WHERE started_at < \$1 AND status <> \$2`).
		WithArgs(cutoff, "running").
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
