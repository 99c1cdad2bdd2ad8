package apperror

import (
	"errors"
	"net/http"
)

// Error is an operational error with a known HTTP status. Anything that is
// not an *Error is treated as an unexpected failure and surfaced as a 500.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Authentication(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Authorization(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// StatusOf maps any error to an HTTP status code.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// IsOperational reports whether err carries a deliberate status, i.e. its
// message is safe to show to a client.
func IsOperational(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr)
}
