package appointmenterrors

import (
	"net/http"

	"go-salon/internal/shared/apperror"
)

var (
	ErrInvalidAppointmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid appointment id",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTime = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"endTime must be after startTime",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid appointment status",
		http.StatusBadRequest,
	)
	ErrAppointmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"appointment not found",
		http.StatusNotFound,
	)
	ErrServiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"one or more services were not found",
		http.StatusNotFound,
	)
	ErrTimeSlotTaken = apperror.New(
		apperror.CodeConflict,
		"employee already has an appointment in this time window",
		http.StatusConflict,
	)
)
