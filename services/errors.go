package services

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuth
	KindForbidden
	KindUnverified
	KindStock
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindUnverified:
		return "unverified"
	case KindStock:
		return "stock"
	default:
		return "internal"
	}
}

// Error is the error type returned by every service operation. Message is
// safe to show to clients; Err carries the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func validationError(msg string) error { return newError(KindValidation, msg) }
func conflictError(msg string) error { return newError(KindConflict, msg) }
func notFoundError(msg string) error { return newError(KindNotFound, msg) }
func authError(msg string) error { return newError(KindAuth, msg) }
func forbiddenError(msg string) error { return newError(KindForbidden, msg) }
func unverifiedError(msg string) error { return newError(KindUnverified, msg) }
func stockError(msg string) error { return newError(KindStock, msg) }

func internalError(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf classifies err. Anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
