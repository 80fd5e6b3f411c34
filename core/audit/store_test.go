package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestRecordRun(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := NewStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sync_runs`").
		WithArgs("run-1", "max", false, 3, 120, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.RecordRun(context.Background(), SyncRun{
		ID:        "run-1",
		MergePlan: "max",
		Sources:   3,
		Domains:   120,
		StartedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordOperation(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := NewStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `operations`").
		WithArgs("run-1", "dest.example", "bad.example", "update", "suspend", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.RecordOperation(context.Background(), Operation{
		RunID:       "run-1",
		Destination: "dest.example",
		Domain:      "bad.example",
		Action:      "update",
		Severity:    "suspend",
		AppliedAt:   time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRun_DBError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := NewStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sync_runs`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.RecordRun(context.Background(), SyncRun{ID: "run-1"})
	assert.Error(t, err)
}
