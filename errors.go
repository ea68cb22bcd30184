package serialize

import "github.com/cockroachdb/errors"

// ErrUnexpectedEOF is returned when a backend runs out of input bytes while
// a value was still being decoded. No partial value is ever returned
// alongside it.
var ErrUnexpectedEOF = errors.New("serialize: unexpected end of stream")

// ErrTypeMismatch is returned by pkg/typesafe when the tag read from the
// stream does not match the tag of the primitive the caller asked for.
var ErrTypeMismatch = errors.New("serialize: type mismatch")

// ErrInvalidUnionIndex is returned when a decoded tagged-union index falls
// outside the set of alternatives the union type declares, and when
// encoding a union that holds no alternative (the "valueless" state).
var ErrInvalidUnionIndex = errors.New("serialize: invalid union index")

// ErrSinkFailure wraps any I/O error a backend's underlying writer or
// reader reports.
var ErrSinkFailure = errors.New("serialize: sink failure")

// TypeMismatchError carries the tag that was expected and the tag that was
// actually read, for callers that want more than errors.Is(err,
// ErrTypeMismatch).
type TypeMismatchError struct {
	Expected TypeTag
	Actual   TypeTag
}

func (e *TypeMismatchError) Error() string {
	return "serialize: type mismatch: expected " + e.Expected.String() + ", got " + e.Actual.String()
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// newTypeMismatch builds a TypeMismatchError wrapped so that errors.Is(err,
// ErrTypeMismatch) still succeeds.
func newTypeMismatch(expected, actual TypeTag) error {
	return errors.WithStack(&TypeMismatchError{Expected: expected, Actual: actual})
}
