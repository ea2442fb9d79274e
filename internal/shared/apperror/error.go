package apperror

import "fmt"

// AppError membawa kode mesin + pesan user + status HTTP sekaligus,
// jadi handler tinggal memetakan tanpa switch per sentinel.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error // penyebab asli, boleh nil
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap membuat errors.Is/As tembus sampai penyebab asli
func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap membungkus err dengan identitas AppError; nil tetap nil
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
