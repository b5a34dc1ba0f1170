package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	emaildomain "jobsense-backend/internal/email/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func emailColumns() []string {
	return []string{"id", "user_email", "message_id", "sender", "subject", "body", "date", "is_read", "category", "priority", "summary", "suggested_action", "created_at", "updated_at"}
}

func TestListByUserOrdersByDateDesc(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmailRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "emails" WHERE user_email = .+ ORDER BY date DESC`).
		WithArgs("user@example.com").
		WillReturnRows(sqlmock.NewRows(emailColumns()).
			AddRow("id-2", "user@example.com", "2", "a@b.c", "newer", "", now, false, "other", "medium", "", "", now, now).
			AddRow("id-1", "user@example.com", "1", "a@b.c", "older", "", now.Add(-time.Hour), true, "other", "medium", "", "", now, now))

	emails, err := repo.ListByUser("user@example.com")
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "newer", emails[0].Subject)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadAbsentRowReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmailRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "emails" WHERE user_email = .+ AND message_id = .+`).
		WithArgs("user@example.com", "missing", 1).
		WillReturnRows(sqlmock.NewRows(emailColumns()))

	email, err := repo.MarkRead("user@example.com", "missing")
	require.NoError(t, err)
	assert.Nil(t, email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReportsRowsAffected(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmailRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "emails" WHERE user_email = .+ AND message_id = .+`).
		WithArgs("user@example.com", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	found, err := repo.Delete("user@example.com", "1")
	require.NoError(t, err)
	assert.True(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAllCountsRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmailRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "emails" WHERE user_email = .+`).
		WithArgs("user@example.com").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	count, err := repo.DeleteAll("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertBatchRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmailRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "emails" WHERE user_email = .+ AND message_id = .+`).
		WithArgs("user@example.com", "2", 1).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.UpsertBatch("user@example.com", []*emaildomain.Email{{MessageID: "2"}})
	require.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
