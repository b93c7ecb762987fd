package employee

import (
	"errors"

	employeeerrors "go-cabinet/internal/employee/errors"
	"go-cabinet/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return employeeerrors.ErrEmployeeAlreadyExists
		case "23514":
			if pgErr.ConstraintName == "chk_employees_commission_rate" {
				return employeeerrors.ErrInvalidCommissionRate
			}
			return employeeerrors.ErrInvalidBaseSalary
		}
	}

	return apperror.StoreUnavailable(err)
}
