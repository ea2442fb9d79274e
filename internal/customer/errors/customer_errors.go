package customererrors

import (
	"net/http"

	"go-salon/internal/shared/apperror"
)

var (
	ErrInvalidCustomerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid customer id",
		http.StatusBadRequest,
	)
	ErrInvalidBirthDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid birthDate format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"customer not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyUsed = apperror.New(
		apperror.CodeConflict,
		"a customer with this email already exists",
		http.StatusConflict,
	)
)
