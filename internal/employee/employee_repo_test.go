package employee

import (
	"context"
	"regexp"
	"testing"

	employeeerrors "go-cabinet/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_FindActiveByCompany(t *testing.T) {
	db, mock := newMockGorm(t)
	companyID := uuid.NewString()
	id := uuid.New()

	// Scopes run at execution time, so clause order is not asserted.
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE .*company_id = .*ORDER BY full_name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "status"}).AddRow(id.String(), "Marie Dubois", StatusActive))

	got, err := NewRepository(db).FindActiveByCompany(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Marie Dubois", got[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock := newMockGorm(t)
	companyID := uuid.NewString()
	id := uuid.NewString()

	mock.ExpectExec(`DELETE FROM "employees" WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "employees" WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	assert.NoError(t, repo.Delete(context.Background(), companyID, id))
	assert.ErrorIs(t, repo.Delete(context.Background(), companyID, id), employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithTxSharesTransaction(t *testing.T) {
	db, mock := newMockGorm(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	companyID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" WHERE company_id = $1 ORDER BY full_name ASC`)).
		WithArgs(companyID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)
	_, err = NewRepository(db).WithTx(tx).FindAllByCompany(context.Background(), companyID)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapRepositoryError(t *testing.T) {
	assert.Nil(t, mapRepositoryError(nil))
	assert.ErrorIs(t, mapRepositoryError(gorm.ErrRecordNotFound), employeeerrors.ErrEmployeeNotFound)
	assert.ErrorIs(t, mapRepositoryError(employeeerrors.ErrInvalidStatus), employeeerrors.ErrInvalidStatus)
}
