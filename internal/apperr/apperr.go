// Package apperr provides coded errors shared by the progress service, its
// HTTP API and the API client.
//
// Codes are stable strings carried in API responses as {code, message}, so
// a client can rebuild the same *Error from a response body.
//
//	err := apperr.New(apperr.CodeLevelLocked, "level %s needs %s first", id, prev)
//	if apperr.Is(err, apperr.CodeLevelLocked) {
//	    // show the lock
//	}
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// Input validation errors
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeMissingUser  Code = "MISSING_USER"

	// Resource not found errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeLevelNotFound Code = "LEVEL_NOT_FOUND"
	CodeCardNotFound  Code = "CARD_NOT_FOUND"

	// Access errors
	CodeLevelLocked     Code = "LEVEL_LOCKED"
	CodePremiumRequired Code = "PREMIUM_REQUIRED"

	// Transport errors
	CodeNetwork Code = "NETWORK_ERROR"

	CodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
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

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps a code to the status the API answers with.
func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeMissingUser:
		return http.StatusUnauthorized
	case CodeNotFound, CodeLevelNotFound, CodeCardNotFound:
		return http.StatusNotFound
	case CodeLevelLocked:
		return http.StatusConflict
	case CodePremiumRequired:
		return http.StatusPaymentRequired
	case CodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Body is the JSON shape of an error response.
type Body struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// ToBody converts any error into a response body. Errors without a code
// become INTERNAL_ERROR.
func ToBody(err error) Body {
	var e *Error
	if errors.As(err, &e) {
		return Body{Code: e.Code, Message: e.Message}
	}
	return Body{Code: CodeInternal, Message: err.Error()}
}

// FromBody rebuilds an error from a response body.
func FromBody(b Body) *Error {
	if b.Code == "" {
		b.Code = CodeInternal
	}
	return &Error{Code: b.Code, Message: b.Message}
}
