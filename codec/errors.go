package codec

import (
	"errors"
	"fmt"

	"github.com/brentlemons/aws-lambda-events/wire"
)

// Sentinel errors for programmatic matching with errors.Is. Every failure a
// codec returns wraps exactly one of these.
var (
	// ErrTypeMismatch indicates the wire value had the wrong structural kind
	// for the field contract (e.g. a number where a string was required).
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidEncoding indicates the wire value had the right kind but its
	// content could not be interpreted (malformed base64, unparsable
	// timestamp, non-decimal digits, ...).
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrOutOfRange indicates a numeric value that parses but does not fit
	// the declared width. Overflow is always an error, never a truncation.
	ErrOutOfRange = errors.New("value out of range")
)

// Error is the failure type returned by every codec in this package.
// It wraps one of the sentinel errors above with the context needed to
// report which contract was violated and by what.
type Error struct {
	Err      error  // sentinel: ErrTypeMismatch, ErrInvalidEncoding or ErrOutOfRange
	Expected string // what the contract required (kind or form)
	Actual   string // kind actually seen (type mismatches only)
	Reason   string // free-form detail (invalid encodings only)
	Value    string // offending value (range errors only)
}

func (e *Error) Error() string {
	switch {
	case e.Expected != "" && e.Actual != "":
		return fmt.Sprintf("%s: expected %s, got %s", e.Err.Error(), e.Expected, e.Actual)
	case e.Reason != "" && e.Expected != "":
		return fmt.Sprintf("%s: %s: %s", e.Err.Error(), e.Expected, e.Reason)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Reason)
	case e.Value != "" && e.Expected != "":
		return fmt.Sprintf("%s: %q does not fit %s", e.Err.Error(), e.Value, e.Expected)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func typeMismatch(expected string, got wire.Value) *Error {
	return &Error{Err: ErrTypeMismatch, Expected: expected, Actual: got.Kind().String()}
}

func invalidEncoding(expected, reason string) *Error {
	return &Error{Err: ErrInvalidEncoding, Expected: expected, Reason: reason}
}

func outOfRange(value, target string) *Error {
	return &Error{Err: ErrOutOfRange, Expected: target, Value: value}
}
