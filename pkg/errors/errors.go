// Package errors defines the structured error model shared by the CLI,
// the HTTP API, and the evaluation pipeline.
//
// Every failure surfaced to a caller carries a machine-readable Code so
// that handlers can map errors to exit codes or HTTP statuses without
// matching on message text. Codes fall into three families:
//
//   - INVALID_*: the caller supplied bad input (zone, polygon, config)
//   - *_NOT_FOUND: a referenced resource does not exist
//   - INTERNAL_ERROR, UNSUPPORTED: unexpected or unimplemented paths
//
// Construct errors with New or Wrap and inspect them with Is, GetCode,
// or UserMessage:
//
//	if err := decode(path, &table); err != nil {
//	    return errors.Wrap(errors.ErrCodeInvalidConfig, err, "zone table %s", path)
//	}
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code identifies a failure category independent of the message text.
type Code string

// Validation failures caused by caller input.
const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidZoneType   Code = "INVALID_ZONE_TYPE"
	ErrCodeInvalidParcelArea Code = "INVALID_PARCEL_AREA"
	ErrCodeInvalidPolygon    Code = "INVALID_POLYGON"
	ErrCodeInvalidGrid       Code = "INVALID_GRID"
	ErrCodeInvalidPlacement  Code = "INVALID_PLACEMENT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
)

// Missing-resource failures.
const (
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeModuleNotFound Code = "MODULE_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
)

// Everything else.
const (
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a human-readable message and an optional
// underlying cause. It is the only error type this module produces.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// New builds an Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around cause, preserving it for errors.Is/As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap exposes the cause to the stdlib errors helpers.
func (e *Error) Unwrap() error { return e.Cause }

// asStructured finds the outermost *Error in err's chain.
func asStructured(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether the outermost structured error in err's chain
// carries code.
func Is(err error, code Code) bool {
	e, ok := asStructured(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost structured error in err's
// chain, or the empty string when there is none.
func GetCode(err error) Code {
	if e, ok := asStructured(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix for display: structured errors
// yield their Message, anything else its Error() text.
func UserMessage(err error) string {
	if e, ok := asStructured(err); ok {
		return e.Message
	}
	return err.Error()
}
