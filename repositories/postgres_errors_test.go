package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB PostgreSQL dialect'i ile sqlmock üzerinde bir gorm bağlantısı açar.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestAssignUniqueURLTranslatesUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvitationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "invitations" SET`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.AssignUniqueURL(context.Background(), 7, "abc")
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignUniqueURLAlreadyAssigned(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvitationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "invitations" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.AssignUniqueURL(context.Background(), 7, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateDeleteTranslatesForeignKeyViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTemplateRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "templates"`)).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "update or delete on table violates foreign key constraint"})
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPublishedByUniqueURLErrors(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "invitations" WHERE`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewInvitationRepository(db).FindPublishedByUniqueURL(context.Background(), "yok")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("connection error is not hidden", func(t *testing.T) {
		db, mock := newMockDB(t)
		connErr := errors.New("connection reset by peer")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "invitations" WHERE`)).
			WillReturnError(connErr)

		_, err := NewInvitationRepository(db).FindPublishedByUniqueURL(context.Background(), "abc")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
