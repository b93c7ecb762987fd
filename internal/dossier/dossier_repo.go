package dossier

import (
	"context"
	"database/sql"
	"time"

	dossiererrors "go-cabinet/internal/dossier/errors"
	"go-cabinet/internal/employee"
	"go-cabinet/internal/shared/connection"
	"go-cabinet/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dossier_repo.go -destination=mock/dossier_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Case) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Case, error)
	ListByWeek(ctx context.Context, companyID, weekKey string) ([]Case, error)
	ListWeeks(ctx context.Context, companyID string) ([]string, error)
	UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error
	Delete(ctx context.Context, companyID, id string) error
	FindEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx != nil {
		return connection.GormTx(r.db, r.tx).WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, c *Case) error {
	return r.conn(ctx).Omit("Employee").Create(c).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Case, error) {
	var c Case
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByWeek returns the bucket newest first.
func (r *repository) ListByWeek(ctx context.Context, companyID, weekKey string) ([]Case, error) {
	cases := make([]Case, 0)
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("week_key = ?", weekKey).
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

func (r *repository) ListWeeks(ctx context.Context, companyID string) ([]string, error) {
	weeks := make([]string, 0)
	err := r.conn(ctx).
		Model(&Case{}).
		Scopes(tenant.Scope(companyID)).
		Distinct("week_key").
		Order("week_key DESC").
		Pluck("week_key", &weeks).Error
	return weeks, err
}

func (r *repository) UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error {
	res := r.conn(ctx).
		Model(&Case{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		UpdateColumns(map[string]any{"status": status, "updated_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dossiererrors.ErrCaseNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Case{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dossiererrors.ErrCaseNotFound
	}
	return nil
}

// FindEmployee resolves the assignee inside the same office.
func (r *repository) FindEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	var e employee.Employee
	err := r.conn(ctx).
		Select("id", "company_id", "full_name", "role", "status").
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}
