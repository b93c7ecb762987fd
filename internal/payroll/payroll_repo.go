package payroll

import (
	"context"
	"database/sql"

	"go-cabinet/internal/tenant"

	"gorm.io/gorm"
)

const activeStatus = "active"

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock

type Repository interface {
	// Snapshot reads the active employees and the week's cases in one
	// read-only repeatable-read transaction.
	Snapshot(ctx context.Context, companyID, weekKey string) (Snapshot, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Snapshot(ctx context.Context, companyID, weekKey string) (Snapshot, error) {
	snap := Snapshot{
		Employees: make([]EmployeeRow, 0),
		Cases:     make([]CaseRow, 0),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("employees").
			Select("id", "full_name", "role", "base_salary", "commission_rate").
			Scopes(tenant.Scope(companyID)).
			Where("status = ?", activeStatus).
			Order("full_name ASC").
			Scan(&snap.Employees).Error; err != nil {
			return err
		}

		return tx.Table("cases").
			Select("id", "employee_id", "fee", "expense", "status").
			Scopes(tenant.Scope(companyID)).
			Where("week_key = ?", weekKey).
			Order("created_at ASC").
			Scan(&snap.Cases).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})

	return snap, err
}
