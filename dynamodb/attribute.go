package dynamodb

import (
	"fmt"
	"strconv"

	"github.com/brentlemons/aws-lambda-events/codec"
	"github.com/brentlemons/aws-lambda-events/wire"
)

// AttributeKind identifies the type descriptor of an AttributeValue.
type AttributeKind uint8

const (
	// NullKind is the NULL descriptor.
	NullKind AttributeKind = iota
	// StringKind is the S descriptor.
	StringKind
	// NumberKind is the N descriptor. The numeral stays textual: DynamoDB
	// numbers exceed float64 precision and ship as strings exactly so the
	// digits survive transit.
	NumberKind
	// BinaryKind is the B descriptor (base64 on the wire).
	BinaryKind
	// BoolKind is the BOOL descriptor.
	BoolKind
	// StringSetKind is the SS descriptor.
	StringSetKind
	// NumberSetKind is the NS descriptor.
	NumberSetKind
	// BinarySetKind is the BS descriptor.
	BinarySetKind
	// ListKind is the L descriptor.
	ListKind
	// MapKind is the M descriptor.
	MapKind
)

var attributeKindNames = map[AttributeKind]string{
	NullKind:      "NULL",
	StringKind:    "S",
	NumberKind:    "N",
	BinaryKind:    "B",
	BoolKind:      "BOOL",
	StringSetKind: "SS",
	NumberSetKind: "NS",
	BinarySetKind: "BS",
	ListKind:      "L",
	MapKind:       "M",
}

func (k AttributeKind) String() string {
	if name, ok := attributeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// AttributeValue is one DynamoDB stream attribute: a type descriptor plus
// the value in that type's canonical form. Values are immutable once
// constructed.
type AttributeValue struct {
	kind AttributeKind
	str  string // S and the textual numeral of N
	bin  []byte
	b    bool // BOOL, and the literal written for NULL
	strs []string
	bins [][]byte
	list []AttributeValue
	m    map[string]AttributeValue
}

// NewNull returns a NULL attribute.
func NewNull() AttributeValue { return AttributeValue{kind: NullKind, b: true} }

// NewString returns an S attribute.
func NewString(s string) AttributeValue { return AttributeValue{kind: StringKind, str: s} }

// NewNumber returns an N attribute holding the textual numeral verbatim.
func NewNumber(n string) AttributeValue { return AttributeValue{kind: NumberKind, str: n} }

// NewBinary returns a B attribute.
func NewBinary(b []byte) AttributeValue { return AttributeValue{kind: BinaryKind, bin: b} }

// NewBool returns a BOOL attribute.
func NewBool(b bool) AttributeValue { return AttributeValue{kind: BoolKind, b: b} }

// NewStringSet returns an SS attribute.
func NewStringSet(items ...string) AttributeValue {
	return AttributeValue{kind: StringSetKind, strs: items}
}

// NewNumberSet returns an NS attribute of textual numerals.
func NewNumberSet(items ...string) AttributeValue {
	return AttributeValue{kind: NumberSetKind, strs: items}
}

// NewBinarySet returns a BS attribute.
func NewBinarySet(items ...[]byte) AttributeValue {
	return AttributeValue{kind: BinarySetKind, bins: items}
}

// NewList returns an L attribute.
func NewList(items ...AttributeValue) AttributeValue {
	return AttributeValue{kind: ListKind, list: items}
}

// NewMap returns an M attribute.
func NewMap(m map[string]AttributeValue) AttributeValue {
	return AttributeValue{kind: MapKind, m: m}
}

// Kind returns the type descriptor.
func (av AttributeValue) Kind() AttributeKind { return av.kind }

// IsNull reports whether the attribute is NULL.
func (av AttributeValue) IsNull() bool { return av.kind == NullKind }

// String returns the S payload, "" for other kinds.
func (av AttributeValue) String() string {
	if av.kind != StringKind {
		return ""
	}
	return av.str
}

// Number returns the textual N numeral, "" for other kinds.
func (av AttributeValue) Number() string {
	if av.kind != NumberKind {
		return ""
	}
	return av.str
}

// Int64 interprets an N attribute as a 64-bit integer under the
// string-encoded numeric policy: overflow is an error, never a truncation.
func (av AttributeValue) Int64() (int64, error) {
	if av.kind != NumberKind {
		return 0, fmt.Errorf("attribute is %s, not N", av.kind)
	}
	return codec.StringInt{Bits: 64}.Decode(wire.StringValue(av.str))
}

// Float64 interprets an N attribute as a 64-bit float.
func (av AttributeValue) Float64() (float64, error) {
	if av.kind != NumberKind {
		return 0, fmt.Errorf("attribute is %s, not N", av.kind)
	}
	return codec.StringFloat{Bits: 64}.Decode(wire.StringValue(av.str))
}

// Binary returns the B payload, nil for other kinds.
func (av AttributeValue) Binary() []byte {
	if av.kind != BinaryKind {
		return nil
	}
	return av.bin
}

// Bool returns the BOOL payload, false for other kinds.
func (av AttributeValue) Bool() bool { return av.kind == BoolKind && av.b }

// StringSet returns the SS payload, nil for other kinds.
func (av AttributeValue) StringSet() []string {
	if av.kind != StringSetKind {
		return nil
	}
	return av.strs
}

// NumberSet returns the NS payload as textual numerals, nil for other kinds.
func (av AttributeValue) NumberSet() []string {
	if av.kind != NumberSetKind {
		return nil
	}
	return av.strs
}

// BinarySet returns the BS payload, nil for other kinds.
func (av AttributeValue) BinarySet() [][]byte {
	if av.kind != BinarySetKind {
		return nil
	}
	return av.bins
}

// List returns the L payload, nil for other kinds.
func (av AttributeValue) List() []AttributeValue {
	if av.kind != ListKind {
		return nil
	}
	return av.list
}

// Map returns the M payload, nil for other kinds. The map is shared and
// must be treated as read-only.
func (av AttributeValue) Map() map[string]AttributeValue {
	if av.kind != MapKind {
		return nil
	}
	return av.m
}

// MarshalJSON renders the attribute in its wire descriptor form, for
// auxiliary serialization paths (envelopes, logs).
func (av AttributeValue) MarshalJSON() ([]byte, error) {
	v, err := attributeCodec{}.Encode(av)
	if err != nil {
		return nil, err
	}
	return wire.Marshal(v)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (av *AttributeValue) UnmarshalJSON(data []byte) error {
	v, err := wire.Parse(data)
	if err != nil {
		return err
	}
	decoded, err := attributeCodec{}.Decode(v)
	if err != nil {
		return err
	}
	*av = decoded
	return nil
}

// MarshalMsgpack carries the wire descriptor form through MessagePack
// payload codecs unchanged.
func (av AttributeValue) MarshalMsgpack() ([]byte, error) { return av.MarshalJSON() }

// UnmarshalMsgpack is the inverse of MarshalMsgpack.
func (av *AttributeValue) UnmarshalMsgpack(data []byte) error { return av.UnmarshalJSON(data) }

// attributeCodec converts between the wire descriptor object (exactly one
// member, keyed by type descriptor) and AttributeValue, recursively for L
// and M.
type attributeCodec struct{}

// AttributeCodec returns the codec for a single AttributeValue, for use in
// custom schemas.
func AttributeCodec() codec.Codec[AttributeValue] { return attributeCodec{} }

var _ codec.Codec[AttributeValue] = attributeCodec{}

func (c attributeCodec) Decode(v wire.Value) (AttributeValue, error) {
	if v.Kind() != wire.Object {
		return AttributeValue{}, fmt.Errorf("%w: attribute must be an object, got %s", codec.ErrTypeMismatch, v.Kind())
	}
	members := v.Object().Members()
	if len(members) != 1 {
		return AttributeValue{}, fmt.Errorf("%w: attribute must have exactly one type descriptor, got %d members", codec.ErrInvalidEncoding, len(members))
	}
	desc, payload := members[0].Key, members[0].Value
	switch desc {
	case "NULL":
		b, err := codec.Bool{}.Decode(payload)
		if err != nil {
			return AttributeValue{}, descErr(desc, err)
		}
		return AttributeValue{kind: NullKind, b: b}, nil
	case "S":
		s, err := codec.String{}.Decode(payload)
		if err != nil {
			return AttributeValue{}, descErr(desc, err)
		}
		return NewString(s), nil
	case "N":
		n, err := decodeNumeral(payload)
		if err != nil {
			return AttributeValue{}, descErr(desc, err)
		}
		return NewNumber(n), nil
	case "B":
		b, err := codec.Bytes{}.Decode(payload)
		if err != nil {
			return AttributeValue{}, descErr(desc, err)
		}
		return NewBinary(b), nil
	case "BOOL":
		b, err := codec.Bool{}.Decode(payload)
		if err != nil {
			return AttributeValue{}, descErr(desc, err)
		}
		return NewBool(b), nil
	case "SS":
		items, err := codec.List[string](codec.String{}).Decode(payload)
		if err != nil {
			return AttributeValue{}, descErr(desc, err)
		}
		return AttributeValue{kind: StringSetKind, strs: items}, nil
	case "NS":
		items, err := codec.List[string](numeralCodec{}).Decode(payload)
		if err != nil {
			return AttributeValue{}, descErr(desc, err)
		}
		return AttributeValue{kind: NumberSetKind, strs: items}, nil
	case "BS":
		items, err := codec.List[[]byte](codec.Bytes{}).Decode(payload)
		if err != nil {
			return AttributeValue{}, descErr(desc, err)
		}
		return AttributeValue{kind: BinarySetKind, bins: items}, nil
	case "L":
		items, err := codec.List[AttributeValue](c).Decode(payload)
		if err != nil {
			return AttributeValue{}, descErr(desc, err)
		}
		return AttributeValue{kind: ListKind, list: items}, nil
	case "M":
		m, err := codec.Map[AttributeValue](c).Decode(payload)
		if err != nil {
			return AttributeValue{}, descErr(desc, err)
		}
		return NewMap(m), nil
	}
	return AttributeValue{}, fmt.Errorf("%w: unknown type descriptor %q", codec.ErrInvalidEncoding, desc)
}

func (c attributeCodec) Encode(av AttributeValue) (wire.Value, error) {
	obj := wire.NewObj()
	switch av.kind {
	case NullKind:
		obj.Set("NULL", wire.BoolValue(av.b))
	case StringKind:
		obj.Set("S", wire.StringValue(av.str))
	case NumberKind:
		obj.Set("N", wire.StringValue(av.str))
	case BinaryKind:
		v, err := codec.Bytes{}.Encode(av.bin)
		if err != nil {
			return wire.Value{}, err
		}
		obj.Set("B", v)
	case BoolKind:
		obj.Set("BOOL", wire.BoolValue(av.b))
	case StringSetKind:
		obj.Set("SS", stringArray(av.strs))
	case NumberSetKind:
		obj.Set("NS", stringArray(av.strs))
	case BinarySetKind:
		v, err := codec.List[[]byte](codec.Bytes{}).Encode(av.bins)
		if err != nil {
			return wire.Value{}, err
		}
		obj.Set("BS", v)
	case ListKind:
		v, err := codec.List[AttributeValue](c).Encode(av.list)
		if err != nil {
			return wire.Value{}, err
		}
		obj.Set("L", v)
	case MapKind:
		v, err := codec.Map[AttributeValue](c).Encode(av.m)
		if err != nil {
			return wire.Value{}, err
		}
		obj.Set("M", v)
	default:
		return wire.Value{}, fmt.Errorf("%w: unknown attribute kind %d", codec.ErrInvalidEncoding, av.kind)
	}
	return wire.ObjectValue(obj), nil
}

func descErr(desc string, err error) error {
	return fmt.Errorf("descriptor %s: %w", desc, err)
}

func stringArray(items []string) wire.Value {
	out := make([]wire.Value, len(items))
	for i, s := range items {
		out[i] = wire.StringValue(s)
	}
	return wire.ArrayValue(out...)
}

// numeralCodec validates N/NS payloads: a string whose content is a decimal
// numeral, kept textual.
type numeralCodec struct{}

var _ codec.Codec[string] = numeralCodec{}

func (numeralCodec) Decode(v wire.Value) (string, error) {
	s, err := codec.String{}.Decode(v)
	if err != nil {
		return "", err
	}
	return decodeNumeralString(s)
}

func (numeralCodec) Encode(s string) (wire.Value, error) {
	return wire.StringValue(s), nil
}

func decodeNumeral(v wire.Value) (string, error) {
	s, err := codec.String{}.Decode(v)
	if err != nil {
		return "", err
	}
	return decodeNumeralString(s)
}

func decodeNumeralString(s string) (string, error) {
	// Syntax check only; the numeral stays textual to keep full precision.
	// ParseFloat alone is too permissive: it also takes "Inf", "NaN" and hex
	// floats, none of which are legal numerals.
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == '.' || r == 'e' || r == 'E':
		default:
			return "", fmt.Errorf("%w: not a numeral: %q", codec.ErrInvalidEncoding, s)
		}
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		if numErr, ok := err.(*strconv.NumError); !ok || numErr.Err != strconv.ErrRange {
			return "", fmt.Errorf("%w: not a numeral: %q", codec.ErrInvalidEncoding, s)
		}
	}
	return s, nil
}
