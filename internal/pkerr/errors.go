// Package pkerr defines the error kinds the interpreter core raises, per
// spec.md's "Decode error / Bounds violation / Allocator failure" split.
package pkerr

import "fmt"

// Kind classifies a core error.
type Kind string

const (
	Decode Kind = "DecodeError"
	Bounds Kind = "BoundsError"
	Alloc  Kind = "AllocError"
)

// Error is the error type raised by the pystr/pool/frame packages.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Bug panics with a BoundsError. Used at contract boundaries such as an
// empty-stack pop or top, an out-of-range jump, or an out-of-range string
// index: the contract violation is still detected, just not recoverable
// in-band. A past-end readCode is not routed through Bug; it panics from
// Go's own slice bounds check.
func Bug(format string, args ...interface{}) {
	panic(New(Bounds, format, args...))
}
