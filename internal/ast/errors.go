package ast

import (
	"errors"
	"fmt"

	"github.com/tinypl/tiny/internal/diag"
)

// ErrorKind classifies the failures this package can produce.
type ErrorKind int

const (
	// NotFound signals a missing parameter or child on a required lookup.
	NotFound ErrorKind = iota
	// WrongValueKind signals a Value or Parameter accessed as the wrong variant.
	WrongValueKind
	// IOFailure signals that a JSON dump could not write to the target path.
	IOFailure
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case WrongValueKind:
		return "WrongValueKind"
	case IOFailure:
		return "IOFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a typed failure carrying the source location it relates to.
// Callers distinguish recoverable lookups from fatal invariant violations by
// matching on Kind via errors.As or the IsX helpers.
type Error struct {
	Kind ErrorKind
	Msg  string
	Meta diag.Metadata
	Err  error // underlying cause, set for IOFailure
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Meta.IsValid() {
		return fmt.Sprintf("%s: %s", e.Meta, e.Msg)
	}
	return e.Msg
}

// Unwrap exposes the underlying cause for errors.Is chains.
func (e *Error) Unwrap() error {
	return e.Err
}

func newNotFound(msg string, meta diag.Metadata) *Error {
	return &Error{Kind: NotFound, Msg: msg, Meta: meta}
}

func newWrongValueKind(msg string, meta diag.Metadata) *Error {
	return &Error{Kind: WrongValueKind, Msg: msg, Meta: meta}
}

func newIOFailure(msg string, err error) *Error {
	return &Error{Kind: IOFailure, Msg: msg, Err: err}
}

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// IsNotFound reports whether err is a NotFound lookup failure.
func IsNotFound(err error) bool {
	return isKind(err, NotFound)
}

// IsWrongValueKind reports whether err is a WrongValueKind access failure.
func IsWrongValueKind(err error) bool {
	return isKind(err, WrongValueKind)
}

// IsIOFailure reports whether err is a failed JSON dump.
func IsIOFailure(err error) bool {
	return isKind(err, IOFailure)
}
