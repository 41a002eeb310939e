package errors

import "net/http"

// ErrorCode represents the type of error
type ErrorCode string

const (
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrValidation      ErrorCode = "VALIDATION_ERROR"
	ErrBadRequest      ErrorCode = "BAD_REQUEST"
	ErrInternalError   ErrorCode = "INTERNAL_ERROR"
	ErrDataConsistency ErrorCode = "DATA_CONSISTENCY"
	ErrServiceUnavail  ErrorCode = "SERVICE_UNAVAILABLE"
)

// StatusCodeMap maps ErrorCode to HTTP status code
var StatusCodeMap = map[ErrorCode]int{
	ErrNotFound:        http.StatusNotFound,
	ErrValidation:      http.StatusUnprocessableEntity,
	ErrBadRequest:      http.StatusBadRequest,
	ErrInternalError:   http.StatusInternalServerError,
	ErrDataConsistency: http.StatusInternalServerError,
	ErrServiceUnavail:  http.StatusServiceUnavailable,
}

// StatusCode returns the HTTP status code for this error code
func (e ErrorCode) StatusCode() int {
	if code, ok := StatusCodeMap[e]; ok {
		return code
	}
	return http.StatusInternalServerError
}
