package dossier

import (
	"errors"

	dossiererrors "go-cabinet/internal/dossier/errors"
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
		return dossiererrors.ErrCaseNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return dossiererrors.ErrAssignedEmployeeNotFound
		case "23514":
			if pgErr.ConstraintName == "chk_cases_expense" {
				return dossiererrors.ErrNegativeExpense
			}
			return dossiererrors.ErrNegativeFee
		}
	}

	return apperror.StoreUnavailable(err)
}
