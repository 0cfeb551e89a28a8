// Package apperr carries the operation-level error taxonomy. Services return
// these; handlers map them to HTTP status codes. Anything that is not an
// *Error is treated as an infrastructure failure (500).
package apperr

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindInsufficientStock
	KindConflict
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Validation(msg string) *Error        { return newError(KindValidation, msg) }
func Authentication(msg string) *Error    { return newError(KindAuthentication, msg) }
func Authorization(msg string) *Error     { return newError(KindAuthorization, msg) }
func NotFound(msg string) *Error          { return newError(KindNotFound, msg) }
func InsufficientStock(msg string) *Error { return newError(KindInsufficientStock, msg) }
func Conflict(msg string) *Error          { return newError(KindConflict, msg) }

// KindOf extracts the taxonomy kind from err, or KindUnknown for
// infrastructure failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps a kind to the status code handlers respond with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return 400
	case KindAuthentication:
		return 401
	case KindAuthorization:
		return 403
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindInsufficientStock:
		// Existing clients expect stock failures as 400
		return 400
	default:
		return 500
	}
}
