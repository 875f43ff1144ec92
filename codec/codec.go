// Package codec provides the reusable field codecs that bridge variant wire
// encodings to canonical typed values and back.
//
// A Codec is a stateless pair of pure functions for one semantic kind: a
// tolerant Decode from whatever a producer actually sends, and an Encode
// back to the specific wire form the field contract declares. Codecs are
// value types, shared process-wide and safe for concurrent use.
//
// Decode failures are always a *Error wrapping one of the package sentinel
// errors (ErrTypeMismatch, ErrInvalidEncoding, ErrOutOfRange). Malformed
// input is an expected, recoverable condition: no codec panics.
//
// Field presence is not a codec concern. Codecs see a wire.Value that is
// known to be present; the absent/null/present trichotomy is handled once,
// in the record package's field adapters, with Optional as the canonical
// tri-state carrier.
package codec

import (
	"encoding/json"
	"strconv"

	"github.com/brentlemons/aws-lambda-events/wire"
)

// Codec converts between a wire representation and a canonical typed value
// for one semantic kind. Implementations must be stateless and safe for
// concurrent use.
type Codec[T any] interface {
	// Decode interprets a present wire value. Failures wrap one of the
	// package sentinel errors.
	Decode(wire.Value) (T, error)

	// Encode produces the wire form the field contract declares for v.
	Encode(T) (wire.Value, error)
}

// String is the identity codec for JSON strings.
type String struct{}

var _ Codec[string] = String{}

func (String) Decode(v wire.Value) (string, error) {
	if v.Kind() != wire.String {
		return "", typeMismatch("string", v)
	}
	return v.Str(), nil
}

func (String) Encode(s string) (wire.Value, error) {
	return wire.StringValue(s), nil
}

// Bool is the identity codec for JSON booleans.
type Bool struct{}

var _ Codec[bool] = Bool{}

func (Bool) Decode(v wire.Value) (bool, error) {
	if v.Kind() != wire.Bool {
		return false, typeMismatch("bool", v)
	}
	return v.Bool(), nil
}

func (Bool) Encode(b bool) (wire.Value, error) {
	return wire.BoolValue(b), nil
}

// Int64 decodes a bare JSON number as a signed 64-bit integer. Fractional
// input is a type mismatch, not a rounding.
type Int64 struct{}

var _ Codec[int64] = Int64{}

func (Int64) Decode(v wire.Value) (int64, error) {
	if v.Kind() != wire.Number {
		return 0, typeMismatch("number", v)
	}
	n, err := strconv.ParseInt(v.Num().String(), 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, outOfRange(v.Num().String(), "int64")
		}
		return 0, typeMismatch("integer", v)
	}
	return n, nil
}

func (Int64) Encode(n int64) (wire.Value, error) {
	return wire.NumberValue(json.Number(strconv.FormatInt(n, 10))), nil
}

// Float64 decodes a bare JSON number as a 64-bit float.
type Float64 struct{}

var _ Codec[float64] = Float64{}

func (Float64) Decode(v wire.Value) (float64, error) {
	if v.Kind() != wire.Number {
		return 0, typeMismatch("number", v)
	}
	f, err := v.Num().Float64()
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, outOfRange(v.Num().String(), "float64")
		}
		return 0, invalidEncoding("number", err.Error())
	}
	return f, nil
}

func (Float64) Encode(f float64) (wire.Value, error) {
	return wire.NumberValue(json.Number(strconv.FormatFloat(f, 'g', -1, 64))), nil
}
