package codec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brentlemons/aws-lambda-events/wire"
)

// StringList is the delimited-list codec: one wire string split on a fixed
// delimiter into an ordered sequence of trimmed substrings. An empty wire
// string decodes to an empty sequence, not to [""]
//
// Empty elements ("a,b,,c") are preserved unless the field contract sets
// DropEmpty; which applies is part of each field's declaration.
type StringList struct {
	Sep       string // delimiter; "," when empty
	DropEmpty bool   // drop empty elements after trimming
}

var _ Codec[[]string] = StringList{}

func (c StringList) sep() string {
	if c.Sep == "" {
		return ","
	}
	return c.Sep
}

func (c StringList) Decode(v wire.Value) ([]string, error) {
	if v.Kind() != wire.String {
		return nil, typeMismatch("delimited string", v)
	}
	if v.Str() == "" {
		return []string{}, nil
	}
	parts := strings.Split(v.Str(), c.sep())
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" && c.DropEmpty {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (c StringList) Encode(items []string) (wire.Value, error) {
	return wire.StringValue(strings.Join(items, c.sep())), nil
}

// List lifts an element codec to a codec for a JSON array of that element.
// Element failures keep their sentinel kind and gain index context.
func List[T any](inner Codec[T]) Codec[[]T] {
	return listCodec[T]{inner: inner}
}

type listCodec[T any] struct {
	inner Codec[T]
}

func (c listCodec[T]) Decode(v wire.Value) ([]T, error) {
	if v.Kind() != wire.Array {
		return nil, typeMismatch("array", v)
	}
	items := v.Array()
	out := make([]T, 0, len(items))
	for i, item := range items {
		decoded, err := c.inner.Decode(item)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out = append(out, decoded)
	}
	return out, nil
}

func (c listCodec[T]) Encode(items []T) (wire.Value, error) {
	out := make([]wire.Value, 0, len(items))
	for i, item := range items {
		encoded, err := c.inner.Encode(item)
		if err != nil {
			return wire.Value{}, fmt.Errorf("index %d: %w", i, err)
		}
		out = append(out, encoded)
	}
	return wire.ArrayValue(out...), nil
}

// Map lifts a value codec to a codec for a JSON object with arbitrary
// string keys. The canonical form is a plain Go map; member order is not
// part of the contract, so Encode writes keys sorted for determinism.
func Map[T any](inner Codec[T]) Codec[map[string]T] {
	return mapCodec[T]{inner: inner}
}

type mapCodec[T any] struct {
	inner Codec[T]
}

func (c mapCodec[T]) Decode(v wire.Value) (map[string]T, error) {
	if v.Kind() != wire.Object {
		return nil, typeMismatch("object", v)
	}
	out := make(map[string]T, v.Object().Len())
	for _, m := range v.Object().Members() {
		decoded, err := c.inner.Decode(m.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", m.Key, err)
		}
		out[m.Key] = decoded
	}
	return out, nil
}

func (c mapCodec[T]) Encode(m map[string]T) (wire.Value, error) {
	obj := wire.NewObj()
	for _, key := range sortedKeys(m) {
		encoded, err := c.inner.Encode(m[key])
		if err != nil {
			return wire.Value{}, fmt.Errorf("key %q: %w", key, err)
		}
		obj.Set(key, encoded)
	}
	return wire.ObjectValue(obj), nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
