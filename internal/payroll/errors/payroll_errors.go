package payrollerrors

import (
	"net/http"

	"go-salon/internal/shared/apperror"
)

var (
	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll id",
		http.StatusBadRequest,
	)
	ErrInvalidGenerationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll generation id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll period",
		http.StatusBadRequest,
	)
	ErrInvalidPaidAt = apperror.New(
		apperror.CodeInvalidInput,
		"invalid paidAt format, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrGenerationNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll generation not found",
		http.StatusNotFound,
	)
	ErrGenerationExists = apperror.New(
		apperror.CodeConflict,
		"payroll generation for this period already exists",
		http.StatusConflict,
	)
	ErrPayrollExists = apperror.New(
		apperror.CodeConflict,
		"payroll for this employee and period already exists",
		http.StatusConflict,
	)
	ErrPayrollNotPending = apperror.New(
		apperror.CodeInvalidState,
		"payroll cannot be paid in its current status",
		http.StatusConflict,
	)
)
