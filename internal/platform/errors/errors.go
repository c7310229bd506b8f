// Package errors carries the coded error type every layer shares.
// Import it as perr so the name never shadows the stdlib package
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error pairs a machine-facing code with a developer-facing message.
// field names the offending input for validation failures, cause keeps
// the wrapped error for errors.Is and errors.As
type Error struct {
	code  ErrorCode
	text  string
	field string
	cause error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause == nil:
		return e.text
	default:
		return e.text + ": " + e.cause.Error()
	}
}

// Unwrap exposes the cause to the stdlib errors helpers
func (e *Error) Unwrap() error { return e.cause }

// Code returns the machine-facing code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending input field, empty unless set
func (e *Error) Field() string { return e.field }

// ToWire flattens the error into its transport form
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.text, Field: e.field} }

// Wire is what the API envelope serializes for a failed request
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// ErrorCode classifies failures across services. Codes are wire-stable,
// new ones go at the end
type ErrorCode uint16

const (
	ErrorCodeUnknown         ErrorCode = iota // unclassified
	ErrorCodePanic                            // recovered panic
	ErrorCodeUnavailable                      // transient, retry may succeed
	ErrorCodeConflict                         // duplicate registration
	ErrorCodeInvalidArgument                  // bad input parameter
	ErrorCodeValidation                       // input failed validate tags
	ErrorCodeJSON                             // body would not parse
	ErrorCodeNotFound                         // missing resource
	ErrorCodeTaskTimeout                      // task exceeded its deadline
	ErrorCodeTaskFailed                       // task returned an error
	ErrorCodeBatchFailed                      // batch entry rejected by its flush
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeTaskTimeout:     http.StatusGatewayTimeout,
}

// HTTPStatusCode maps a code to its transport status. Anything unmapped,
// including panics and task failures, is a plain 500
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// New builds a coded error
func New(code ErrorCode, text string) error { return &Error{code: code, text: text} }

// Newf builds a coded error with a formatted message
func Newf(code ErrorCode, format string, args ...any) error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap builds a coded error around a cause
func Wrap(cause error, code ErrorCode, text string) error {
	return &Error{code: code, text: text, cause: cause}
}

// Wrapf is Wrap with a formatted message
func Wrapf(cause error, code ErrorCode, format string, args ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, args...))
}

// Shorthand constructors for the codes handlers raise directly

// NotFoundf formats a missing-resource error
func NotFoundf(format string, args ...any) error { return Newf(ErrorCodeNotFound, format, args...) }

// InvalidArgf formats a bad-parameter error
func InvalidArgf(format string, args ...any) error { return Newf(ErrorCodeInvalidArgument, format, args...) }

// JSONErrf formats an unparseable-body error
func JSONErrf(format string, args ...any) error { return Newf(ErrorCodeJSON, format, args...) }

// PanicErrf formats a recovered-panic error
func PanicErrf(format string, args ...any) error { return Newf(ErrorCodePanic, format, args...) }

// Conflictf formats a duplicate-registration error
func Conflictf(format string, args ...any) error { return Newf(ErrorCodeConflict, format, args...) }

// Unavailablef formats a transient failure
func Unavailablef(format string, args ...any) error { return Newf(ErrorCodeUnavailable, format, args...) }

// TaskTimeoutf formats a per-task deadline failure
func TaskTimeoutf(format string, args ...any) error { return Newf(ErrorCodeTaskTimeout, format, args...) }

// BatchFailedf formats a rejected batch entry
func BatchFailedf(format string, args ...any) error { return Newf(ErrorCodeBatchFailed, format, args...) }

// As pulls our *Error out of any wrapped chain
func As(err error) (*Error, bool) {
	var pe *Error
	ok := stderrors.As(err, &pe)
	return pe, ok
}

// CodeOf reads the code off any error, Unknown when it is not ours
func CodeOf(err error) ErrorCode {
	if pe, ok := As(err); ok {
		return pe.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// WireFrom flattens any error for the envelope. Foreign errors go out
// as Unknown with their message, nil stays the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	pe, ok := As(err)
	if !ok {
		return Wire{Message: err.Error(), Code: ErrorCodeUnknown}
	}
	return pe.ToWire()
}

// HTTP resolves status and wire form in one call for reply writers
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	w := WireFrom(err)
	return HTTPStatusCode(w.Code), w
}

// WithField returns a copy of err naming the offending input field.
// Errors that are not ours pass through unchanged
func WithField(err error, field string) error {
	pe, ok := As(err)
	if !ok {
		return err
	}
	return &Error{code: pe.code, text: pe.text, field: field, cause: pe.cause}
}

// Retryable reports whether the failure is transient enough to try again.
// Timeouts are excluded, whoever timed the task out already abandoned it
func Retryable(err error) bool { return IsCode(err, ErrorCodeUnavailable) }
