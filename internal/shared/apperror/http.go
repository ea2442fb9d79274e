package apperror

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// HTTPError adalah bentuk akhir error untuk ditulis ke response envelope
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP menerjemahkan error apapun dari service layer menjadi HTTPError.
// AppError dipetakan apa adanya, validator error dibuat human-readable,
// sisanya jatuh ke 500 tanpa membocorkan detail internal.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		mapped := MapValidationError(vErrs)
		if mappedApp, ok := mapped.(*AppError); ok {
			return HTTPError{
				Status:  mappedApp.HTTPStatus,
				Code:    mappedApp.Code,
				Message: mappedApp.Message,
			}
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}
