package dossiererrors

import (
	"net/http"

	"go-cabinet/internal/shared/apperror"
)

var (
	ErrCaseNotFound = apperror.New(
		apperror.CodeNotFound,
		"Case not found",
		http.StatusNotFound,
	)
	ErrInvalidCaseID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid case ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"Client name, case type and assigned employee are required",
		http.StatusBadRequest,
	)
	ErrNegativeFee = apperror.New(
		apperror.CodeInvalidInput,
		"Fee must not be negative",
		http.StatusBadRequest,
	)
	ErrNegativeExpense = apperror.New(
		apperror.CodeInvalidInput,
		"Expense must not be negative",
		http.StatusBadRequest,
	)
	ErrAssignedEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"assigned employee not found",
		http.StatusBadRequest,
	)
	ErrInvalidWeekKey = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid week, expected YYYY-Www",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be 1 to 50 characters",
		http.StatusBadRequest,
	)
)
