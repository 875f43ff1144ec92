// Package record binds named struct fields to wire keys through explicit,
// runtime-introspectable field tables.
//
// A Schema is an ordered table of Fields, one per declared wire key. Each
// Field plugs one codec into one struct field; the absent/null/present
// trichotomy is enforced here, in one place, through the adapter
// constructors (Required, Opt, OptDefault) rather than reimplemented per
// codec or per record.
//
// Decoding is fail-fast and atomic: the first field failure aborts the
// whole record with a *Error naming the record type and the offending wire
// key, and no partially-populated record is ever returned. Unknown wire
// keys are dropped; this is the only declared-lossy transform.
package record

import (
	"errors"
	"fmt"

	"github.com/brentlemons/aws-lambda-events/codec"
	"github.com/brentlemons/aws-lambda-events/wire"
)

// ErrMissingField indicates a required field key was absent from the wire
// object.
var ErrMissingField = errors.New("missing required field")

// Error is the record-level failure: a field-level error annotated with the
// record type name and the field's wire key. Use errors.Is with the codec
// package sentinels (or ErrMissingField) to classify the cause.
type Error struct {
	Record string // record type name, e.g. "s3.Event"
	Key    string // wire key of the offending field; "" for document-level failures
	Err    error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("record %s: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("record %s: field %q: %v", e.Record, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Field is one row of a schema table: the binding of a wire key to a codec
// and a struct field. Build Fields with Required, Opt or OptDefault.
type Field[R any] struct {
	key      string
	required bool
	decode   func(*R, wire.Value) error          // key present (possibly null)
	absent   func(*R) error                      // key missing
	encode   func(*R) (wire.Value, bool, error)  // ok=false omits the key
}

// Key returns the field's wire key.
func (f Field[R]) Key() string { return f.key }

// IsRequired reports whether decoding fails when the key is absent.
func (f Field[R]) IsRequired() bool { return f.required }

// Required declares a field whose key must be present and decodable.
// get and set bind the codec's canonical value to the record struct.
func Required[R, T any](key string, c codec.Codec[T], get func(*R) T, set func(*R, T)) Field[R] {
	return Field[R]{
		key:      key,
		required: true,
		decode: func(r *R, v wire.Value) error {
			decoded, err := c.Decode(v)
			if err != nil {
				return err
			}
			set(r, decoded)
			return nil
		},
		absent: func(*R) error { return ErrMissingField },
		encode: func(r *R) (wire.Value, bool, error) {
			v, err := c.Encode(get(r))
			return v, true, err
		},
	}
}

// Opt declares an optional field carried as a codec.Optional. A missing key
// decodes to absent, an explicit null to null, and each re-encodes as
// itself: absent keys are omitted, null fields are written back as null.
func Opt[R, T any](key string, c codec.Codec[T], get func(*R) codec.Optional[T], set func(*R, codec.Optional[T])) Field[R] {
	return Field[R]{
		key: key,
		decode: func(r *R, v wire.Value) error {
			if v.IsNull() {
				set(r, codec.Null[T]())
				return nil
			}
			decoded, err := c.Decode(v)
			if err != nil {
				return err
			}
			set(r, codec.Some(decoded))
			return nil
		},
		absent: func(r *R) error {
			set(r, codec.None[T]())
			return nil
		},
		encode: func(r *R) (wire.Value, bool, error) {
			o := get(r)
			if o.IsAbsent() {
				return wire.Value{}, false, nil
			}
			if o.IsNull() {
				return wire.NullValue(), true, nil
			}
			v, _ := o.Get()
			encoded, err := c.Encode(v)
			return encoded, true, err
		},
	}
}

// OptDefault declares an optional field with a declared default: a missing
// key decodes to the default, present values decode through the codec, and
// an explicit null stays null, distinct from the default even when the two
// would render identically. Because the default replaces absence at decode
// time, re-encoding writes the key out; fields using OptDefault are
// normalizing, not shape-preserving.
func OptDefault[R, T any](key string, c codec.Codec[T], def T, get func(*R) codec.Optional[T], set func(*R, codec.Optional[T])) Field[R] {
	f := Opt(key, c, get, set)
	f.absent = func(r *R) error {
		set(r, codec.Some(def))
		return nil
	}
	return f
}

// Schema is the ordered field table for one record type. Schemas are built
// once at startup and never mutated; they are safe for concurrent use.
//
// A *Schema[R] is itself a codec.Codec[R], so records nest inside other
// records through the same adapters as primitive values.
type Schema[R any] struct {
	name   string
	fields []Field[R]
}

var _ codec.Codec[struct{}] = (*Schema[struct{}])(nil)

// New builds a schema named name over the given fields, in contract order.
// It panics on a duplicate wire key; schemas are process-wide declarations
// and a duplicate is a programming error, not input.
func New[R any](name string, fields ...Field[R]) *Schema[R] {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.key]; dup {
			panic(fmt.Sprintf("record: schema %s declares key %q twice", name, f.key))
		}
		seen[f.key] = struct{}{}
	}
	return &Schema[R]{name: name, fields: fields}
}

// Name returns the record type name used in errors.
func (s *Schema[R]) Name() string { return s.name }

// Fields returns the field table in contract order, for mechanical
// enumeration by tests and tooling.
func (s *Schema[R]) Fields() []Field[R] {
	return append([]Field[R](nil), s.fields...)
}

// Decode populates a new record from a wire object. The first field failure
// aborts with a *Error; unknown keys in the input are ignored.
func (s *Schema[R]) Decode(v wire.Value) (R, error) {
	var r R
	if v.Kind() != wire.Object {
		return r, &Error{Record: s.name, Err: fmt.Errorf("%w: expected object, got %s", codec.ErrTypeMismatch, v.Kind())}
	}
	obj := v.Object()
	for _, f := range s.fields {
		w, ok := obj.Get(f.key)
		var err error
		if ok {
			err = f.decode(&r, w)
		} else {
			err = f.absent(&r)
		}
		if err != nil {
			var zero R
			return zero, &Error{Record: s.name, Key: f.key, Err: err}
		}
	}
	return r, nil
}

// Encode writes the record's declared fields in contract order. Fields
// whose canonical value is absent are omitted; explicit nulls are written
// as null.
func (s *Schema[R]) Encode(r R) (wire.Value, error) {
	obj := wire.NewObj()
	for _, f := range s.fields {
		v, ok, err := f.encode(&r)
		if err != nil {
			return wire.Value{}, &Error{Record: s.name, Key: f.key, Err: err}
		}
		if ok {
			obj.Set(f.key, v)
		}
	}
	return wire.ObjectValue(obj), nil
}

// DecodeJSON parses data and decodes the record in one step.
func (s *Schema[R]) DecodeJSON(data []byte) (R, error) {
	v, err := wire.Parse(data)
	if err != nil {
		var zero R
		return zero, &Error{Record: s.name, Err: err}
	}
	return s.Decode(v)
}

// EncodeJSON encodes the record and serializes it in one step. The output
// is deterministic: declared fields in contract order.
func (s *Schema[R]) EncodeJSON(r R) ([]byte, error) {
	v, err := s.Encode(r)
	if err != nil {
		return nil, err
	}
	return wire.Marshal(v)
}
