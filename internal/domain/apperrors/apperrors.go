package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a short stable string identifying an error class. The route layer
// maps codes to HTTP statuses; anything it does not recognize becomes a
// generic 500.
type Code string

const (
	CodeUnauthenticated      Code = "UNAUTHENTICATED"
	CodeForbidden            Code = "FORBIDDEN"
	CodeNotFound             Code = "NOT_FOUND"
	CodeInvalidRequest       Code = "INVALID_REQUEST"
	CodeInvalidRestockAmount Code = "INVALID_RESTOCK_AMOUNT"
	CodeReasonRequired       Code = "REASON_REQUIRED"
	CodeBreedExists          Code = "BREED_EXISTS"
	CodeBreedInUse           Code = "BREED_IN_USE"
	CodeInvalidCredentials   Code = "INVALID_CREDENTIALS"
	CodeTimeout              Code = "TIMEOUT"
	CodeServerMisconfigured  Code = "SERVER_MISCONFIGURED"
	CodeInternal             Code = "INTERNAL"
)

var httpStatusByCode = map[Code]int{
	CodeUnauthenticated:      http.StatusUnauthorized,
	CodeForbidden:            http.StatusForbidden,
	CodeNotFound:             http.StatusNotFound,
	CodeInvalidRequest:       http.StatusBadRequest,
	CodeInvalidRestockAmount: http.StatusBadRequest,
	CodeReasonRequired:       http.StatusBadRequest,
	CodeBreedExists:          http.StatusConflict,
	CodeBreedInUse:           http.StatusConflict,
	CodeInvalidCredentials:   http.StatusUnauthorized,
	CodeTimeout:              http.StatusGatewayTimeout,
	CodeServerMisconfigured:  http.StatusInternalServerError,
	CodeInternal:             http.StatusInternalServerError,
}

// Error carries a code plus a caller-facing message, optionally wrapping an
// underlying cause that is only ever logged server-side.
type Error struct {
	code    Code
	message string
	cause   error
}

// New builds an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Newf builds an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code Code, cause error, message string) *Error {
	return &Error{code: code, message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// Code returns the error class.
func (e *Error) Code() Code { return e.code }

// Message returns the caller-facing message.
func (e *Error) Message() string { return e.message }

// As extracts an *Error from an error chain, or nil.
func As(err error) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf returns the code carried by err, or CodeInternal when untyped.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.code
	}
	return CodeInternal
}

// HTTPStatus maps a code to its HTTP response status. Unknown codes fall
// through to 500.
func HTTPStatus(code Code) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
