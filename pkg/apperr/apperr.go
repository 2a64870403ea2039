// Package apperr defines the closed set of failure kinds surfaced by the
// gateway. Callers switch on [Kind] instead of inspecting error text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Internal is anything unexpected that happened inside the gateway.
	Internal Kind = iota
	// InvalidInput means the client supplied a value the gateway cannot act on.
	InvalidInput
	// Backend means an external service rejected or failed the call.
	Backend
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case Backend:
		return "backend"
	default:
		return "internal"
	}
}

// Error carries a Kind, an optional service error code and a message.
type Error struct {
	Kind    Kind
	Code    string // Service-supplied code (e.g. "ValidationException"), if any.
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind around err. The message is prefix
// followed by err's text.
func Wrap(kind Kind, err error, prefix string) *Error {
	return &Error{Kind: kind, Message: prefix + err.Error(), Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain, or Internal
// when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Prefix returns an error that keeps err's Kind and Code but prepends prefix
// to its message. Non-*Error values become Internal.
func Prefix(err error, prefix string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return &Error{Kind: e.Kind, Code: e.Code, Message: prefix + e.Error(), Err: err}
	}
	return Wrap(Internal, err, prefix)
}
