// Package apperr is the error taxonomy shared by every service. Handlers
// translate a Kind into an HTTP status; services only choose the kind.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	Unauthenticated
	Forbidden
	NotFound
	Validation
	Conflict
	InvalidCredentials
	InvalidTransition
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case InvalidCredentials:
		return "invalid_credentials"
	case InvalidTransition:
		return "invalid_transition"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Invalid builds a Validation error from a format string.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message is the client-facing text of err. Internal errors are masked.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "Internal server error"
}

var (
	ErrUnauthenticated = New(Unauthenticated, "Unauthorized")
	ErrForbidden       = New(Forbidden, "Forbidden")
)
