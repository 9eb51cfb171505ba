package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindBackend Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
)

// Error represents an application error
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, code int, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Validation reports missing or malformed input.
func Validation(message string) *Error {
	return newError(KindValidation, http.StatusBadRequest, message, nil)
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...interface{}) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Unauthorized reports bad credentials or a missing/invalid token.
func Unauthorized(message string) *Error {
	return newError(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

// Forbidden reports an authenticated caller without the required role.
func Forbidden(message string) *Error {
	return newError(KindForbidden, http.StatusForbidden, message, nil)
}

// NotFound reports an unknown id or token.
func NotFound(message string) *Error {
	return newError(KindNotFound, http.StatusNotFound, message, nil)
}

// Backend wraps a storage or connection failure.
func Backend(message string, err error) *Error {
	return newError(KindBackend, http.StatusInternalServerError, message, err)
}

// From returns err as *Error, wrapping anything unknown as a backend error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Backend("Internal server error", err)
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// StatusCode maps err to an HTTP status.
func StatusCode(err error) int {
	return From(err).Code
}
