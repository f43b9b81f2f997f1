package apperror

import "net/http"

// Stable application error codes surfaced to API clients.
const (
	CodeFileLimit    = "FILE_LIMIT"
	CodeMalformedCSV = "MALFORMED_CSV"
)

type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(code, message string) *AppError {
	return New(http.StatusBadRequest, code, message, nil)
}

func PayloadTooLarge(code, message string) *AppError {
	return New(http.StatusRequestEntityTooLarge, code, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, "NOT_FOUND", message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "INTERNAL", "Internal Server Error", err)
}
