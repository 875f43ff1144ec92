package codec

import (
	"strconv"

	"github.com/brentlemons/aws-lambda-events/wire"
)

// StringInt is the string-encoded integer codec. Some producers ship
// numerics as JSON strings to dodge precision loss in transit; the field
// contract then requires a string on the wire in both directions, so Encode
// always emits a string, never a bare number.
//
// Bits declares the target width (32 or 64; 0 means 64). A numeral that
// parses but does not fit the width fails with ErrOutOfRange.
type StringInt struct {
	Bits int
}

var _ Codec[int64] = StringInt{}

func (c StringInt) bits() int {
	if c.Bits == 0 {
		return 64
	}
	return c.Bits
}

func (c StringInt) Decode(v wire.Value) (int64, error) {
	if v.Kind() != wire.String {
		return 0, typeMismatch("string-encoded integer", v)
	}
	n, err := strconv.ParseInt(v.Str(), 10, c.bits())
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, outOfRange(v.Str(), "int"+strconv.Itoa(c.bits()))
		}
		return 0, invalidEncoding("string-encoded integer", "not a decimal numeral: "+strconv.Quote(v.Str()))
	}
	return n, nil
}

func (c StringInt) Encode(n int64) (wire.Value, error) {
	if c.bits() == 32 && (n > 1<<31-1 || n < -(1<<31)) {
		return wire.Value{}, outOfRange(strconv.FormatInt(n, 10), "int32")
	}
	return wire.StringValue(strconv.FormatInt(n, 10)), nil
}

// StringFloat is the string-encoded floating-point codec; same wire policy
// as StringInt. Bits declares 32 or 64 (0 means 64).
type StringFloat struct {
	Bits int
}

var _ Codec[float64] = StringFloat{}

func (c StringFloat) bits() int {
	if c.Bits == 0 {
		return 64
	}
	return c.Bits
}

func (c StringFloat) Decode(v wire.Value) (float64, error) {
	if v.Kind() != wire.String {
		return 0, typeMismatch("string-encoded number", v)
	}
	f, err := strconv.ParseFloat(v.Str(), c.bits())
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, outOfRange(v.Str(), "float"+strconv.Itoa(c.bits()))
		}
		return 0, invalidEncoding("string-encoded number", "not a numeral: "+strconv.Quote(v.Str()))
	}
	return f, nil
}

func (c StringFloat) Encode(f float64) (wire.Value, error) {
	return wire.StringValue(strconv.FormatFloat(f, 'g', -1, c.bits())), nil
}
