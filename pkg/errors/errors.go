// Package errors carries machine-readable codes on techcloud errors.
//
// Loaders, the pipeline and the config layer return [*Error] values so the
// CLI can print a clean message and the HTTP API can pick a status code and
// put the code in its JSON error body:
//
//	err := errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q", name)
//	errors.Is(err, errors.ErrCodeInvalidStrategy) // true
//	errors.HTTPStatus(err)                        // 400
//
// [Wrap] keeps the cause reachable through the standard errors.Is and
// errors.As.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStrategy Code = "INVALID_STRATEGY"
	ErrCodeInvalidMeasurer Code = "INVALID_MEASURER"
	ErrCodeInvalidSource   Code = "INVALID_SOURCE"
	ErrCodeInvalidRegion   Code = "INVALID_REGION"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeTimeout  Code = "TIMEOUT"
	ErrCodeCanceled Code = "CANCELED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// statusClientClosed is the nginx convention for a client that went away.
const statusClientClosed = 499

var statuses = map[Code]int{
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidFormat:   http.StatusBadRequest,
	ErrCodeInvalidStrategy: http.StatusBadRequest,
	ErrCodeInvalidMeasurer: http.StatusBadRequest,
	ErrCodeInvalidSource:   http.StatusBadRequest,
	ErrCodeInvalidRegion:   http.StatusBadRequest,
	ErrCodeInvalidConfig:   http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeFileNotFound:    http.StatusNotFound,
	ErrCodeTimeout:         http.StatusGatewayTimeout,
	ErrCodeCanceled:        statusClientClosed,
}

// HTTPStatus returns the status an API response uses for c. Unknown codes
// are internal errors.
func (c Code) HTTPStatus() int {
	if s, ok := statuses[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is an error with a code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the outermost *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// CodeOr returns CodeOf(err), or fallback when err carries no code.
func CodeOr(err error, fallback Code) Code {
	if c := CodeOf(err); c != "" {
		return c
	}
	return fallback
}

// Message returns the message of an *Error without its code prefix, or the
// plain error text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err's code to an HTTP status.
func HTTPStatus(err error) int {
	return CodeOf(err).HTTPStatus()
}

// Classify gives uncoded context errors the TIMEOUT or CANCELED code. Other
// errors are returned unchanged.
func Classify(err error) error {
	if err == nil || CodeOf(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(ErrCodeTimeout, err, "request timed out")
	case errors.Is(err, context.Canceled):
		return Wrap(ErrCodeCanceled, err, "request canceled")
	}
	return err
}
