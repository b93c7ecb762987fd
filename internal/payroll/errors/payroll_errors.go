package payrollerrors

import (
	"net/http"

	"go-cabinet/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidWeekKey = apperror.New(
		apperror.CodeInvalidInput,
		"invalid week, expected YYYY-Www",
		http.StatusBadRequest,
	)
)
