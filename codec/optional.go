package codec

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

type optState uint8

const (
	optAbsent optState = iota
	optNull
	optPresent
)

// Optional is the canonical tri-state carrier for optional fields. It keeps
// "key missing from the wire object" (absent) distinct from "key present
// with a JSON null" (null), because producers attach different meaning to
// the two and round-trip encoding must reproduce each as itself.
//
// The zero Optional is absent.
type Optional[T any] struct {
	value T
	state optState
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, state: optPresent}
}

// Null returns an explicitly-null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{state: optNull}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsAbsent reports whether the field key was missing from the wire object.
func (o Optional[T]) IsAbsent() bool { return o.state == optAbsent }

// IsNull reports whether the field was present with an explicit null.
func (o Optional[T]) IsNull() bool { return o.state == optNull }

// Get returns the held value and whether one is present. Absent and null
// both report false.
func (o Optional[T]) Get() (T, bool) {
	if o.state != optPresent {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Or returns the held value, or def when absent or null.
func (o Optional[T]) Or(def T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return def
}

// MarshalJSON renders the optional for auxiliary serialization (envelopes,
// logs). JSON cannot express absence at a value position, so absent and
// null both render as null; wire-faithful encoding goes through the record
// layer, not through this method.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.state != optPresent {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON is the inverse of MarshalJSON: null becomes an explicit
// null, anything else a present value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

var (
	_ msgpack.CustomEncoder = Optional[int64]{}
	_ msgpack.CustomDecoder = (*Optional[int64])(nil)
)

// EncodeMsgpack implements msgpack.CustomEncoder with the same flattening
// as MarshalJSON: absent and null both encode as nil.
func (o Optional[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if o.state != optPresent {
		return enc.EncodeNil()
	}
	return enc.Encode(o.value)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (o *Optional[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}
	if code == msgpcode.Nil {
		if err := dec.DecodeNil(); err != nil {
			return err
		}
		*o = Null[T]()
		return nil
	}
	var v T
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
