package payroll

import (
	"context"
	"errors"
	"testing"

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

func TestRepository_SnapshotReadsInOneTransaction(t *testing.T) {
	db, mock := newMockGorm(t)
	companyID := uuid.NewString()
	empID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id","full_name","role","base_salary","commission_rate" FROM "employees" WHERE .*status = .*ORDER BY full_name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "role", "base_salary", "commission_rate"}).
			AddRow(empID.String(), "Marie Dubois", "Avocat Senior", 8000, 30))
	mock.ExpectQuery(`SELECT "id","employee_id","fee","expense","status" FROM "cases" WHERE .*week_key = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "fee", "expense", "status"}).
			AddRow(uuid.NewString(), empID.String(), 3000, 0, "open").
			AddRow(uuid.NewString(), nil, 1000, 50, "open"))
	mock.ExpectCommit()

	snap, err := NewRepository(db).Snapshot(context.Background(), companyID, "2025-W01")
	require.NoError(t, err)
	require.Len(t, snap.Employees, 1)
	assert.Equal(t, empID, snap.Employees[0].ID)
	assert.Equal(t, 30, snap.Employees[0].CommissionRate)
	require.Len(t, snap.Cases, 2)
	require.NotNil(t, snap.Cases[0].EmployeeID)
	assert.Equal(t, empID, *snap.Cases[0].EmployeeID)
	assert.Nil(t, snap.Cases[1].EmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SnapshotRollsBackOnError(t *testing.T) {
	db, mock := newMockGorm(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "employees"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`FROM "cases"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := NewRepository(db).Snapshot(context.Background(), uuid.NewString(), "2025-W01")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
