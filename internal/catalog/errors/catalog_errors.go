package catalogerrors

import (
	"net/http"

	"go-salon/internal/shared/apperror"
)

var (
	ErrInvalidServiceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid service id",
		http.StatusBadRequest,
	)
	ErrServiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"service not found",
		http.StatusNotFound,
	)
)
