package activityerrors

import (
	"net/http"

	"go-cabinet/internal/shared/apperror"
)

var (
	ErrInvalidEvent = apperror.New(
		apperror.CodeInvalidInput,
		"lifecycle event is missing its id, company or type",
		http.StatusBadRequest,
	)
	ErrInvalidLimit = apperror.New(
		apperror.CodeInvalidInput,
		"limit must be between 1 and 200",
		http.StatusBadRequest,
	)
)
