package codec

import (
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/brentlemons/aws-lambda-events/wire"
)

// Values is an ordered, case-insensitive multi-map of string to
// sequence-of-string, the canonical form for header-like wire objects whose
// values may be a single string or an array of strings.
//
// Lookup folds case; the first-seen casing of each key is preserved, and so
// is whether each key's original wire value was a scalar or an array.
// Dropping that shape distinction would be information loss: a consumer of
// the re-encoded document may accept only the shape its producer sent.
type Values struct {
	entries []valuesEntry
	index   map[string]int // folded key -> entries index
}

type valuesEntry struct {
	key    string // first-seen casing
	values []string
	scalar bool // wire shape was a bare string
}

func foldKey(key string) string { return strings.ToLower(key) }

// Add appends values under key, creating the key in array shape if new.
// Later casings of an existing key fold into the first-seen entry.
func (m *Values) Add(key string, values ...string) {
	m.upsert(key, values, false)
}

// Set replaces the values under key with a single value in scalar shape,
// creating the key if new. Position and first-seen casing are kept for an
// existing key.
func (m *Values) Set(key, value string) {
	folded := foldKey(key)
	if i, ok := m.index[folded]; ok {
		m.entries[i].values = []string{value}
		m.entries[i].scalar = true
		return
	}
	m.upsert(key, []string{value}, true)
}

func (m *Values) upsert(key string, values []string, scalar bool) {
	folded := foldKey(key)
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[folded]; ok {
		m.entries[i].values = append(m.entries[i].values, values...)
		m.entries[i].scalar = false
		return
	}
	m.index[folded] = len(m.entries)
	m.entries = append(m.entries, valuesEntry{key: key, values: append([]string(nil), values...), scalar: scalar})
}

// Get returns the values for key, looked up case-insensitively. Nil when
// the key is not present.
func (m *Values) Get(key string) []string {
	if m == nil || m.index == nil {
		return nil
	}
	i, ok := m.index[foldKey(key)]
	if !ok {
		return nil
	}
	return m.entries[i].values
}

// First returns the first value for key, or "" when absent.
func (m *Values) First(key string) string {
	vs := m.Get(key)
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Has reports whether key is present, case-insensitively.
func (m *Values) Has(key string) bool {
	if m == nil || m.index == nil {
		return false
	}
	_, ok := m.index[foldKey(key)]
	return ok
}

// Len returns the number of distinct keys.
func (m *Values) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in first-seen order and casing.
func (m *Values) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

// MultiMap is the codec binding Values to its wire object form. Decode
// accepts each member as either a single string or an array of strings and
// records which shape it saw; Encode reproduces, per key, the recorded
// shape in the recorded order.
type MultiMap struct{}

var _ Codec[Values] = MultiMap{}

func (MultiMap) Decode(v wire.Value) (Values, error) {
	if v.Kind() != wire.Object {
		return Values{}, typeMismatch("object", v)
	}
	var out Values
	for _, m := range v.Object().Members() {
		switch m.Value.Kind() {
		case wire.String:
			out.upsert(m.Key, []string{m.Value.Str()}, true)
		case wire.Array:
			items := m.Value.Array()
			values := make([]string, 0, len(items))
			for _, item := range items {
				if item.Kind() != wire.String {
					return Values{}, fmt.Errorf("key %q: %w", m.Key, typeMismatch("string", item))
				}
				values = append(values, item.Str())
			}
			out.upsert(m.Key, values, false)
		default:
			return Values{}, fmt.Errorf("key %q: %w", m.Key, typeMismatch("string or string array", m.Value))
		}
	}
	return out, nil
}

func (MultiMap) Encode(m Values) (wire.Value, error) {
	obj := wire.NewObj()
	for _, e := range m.entries {
		if e.scalar && len(e.values) == 1 {
			obj.Set(e.key, wire.StringValue(e.values[0]))
			continue
		}
		items := make([]wire.Value, len(e.values))
		for i, v := range e.values {
			items[i] = wire.StringValue(v)
		}
		obj.Set(e.key, wire.ArrayValue(items...))
	}
	return wire.ObjectValue(obj), nil
}

// MarshalJSON renders the multi-map in its wire shape for auxiliary
// serialization paths (envelopes, logs).
func (m Values) MarshalJSON() ([]byte, error) {
	v, err := MultiMap{}.Encode(m)
	if err != nil {
		return nil, err
	}
	return wire.Marshal(v)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (m *Values) UnmarshalJSON(data []byte) error {
	v, err := wire.Parse(data)
	if err != nil {
		return err
	}
	decoded, err := MultiMap{}.Decode(v)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder for the auxiliary envelope
// path: each key maps to a string for scalar shape or a string array
// otherwise, mirroring the wire form.
func (m Values) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(m.entries)); err != nil {
		return err
	}
	for _, e := range m.entries {
		if err := enc.EncodeString(e.key); err != nil {
			return err
		}
		if e.scalar && len(e.values) == 1 {
			if err := enc.EncodeString(e.values[0]); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(e.values); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder, the inverse of
// EncodeMsgpack.
func (m *Values) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	*m = Values{}
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return err
		}
		raw, err := dec.DecodeInterface()
		if err != nil {
			return err
		}
		switch v := raw.(type) {
		case string:
			m.upsert(key, []string{v}, true)
		case []interface{}:
			values := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return invalidEncoding("multi-map", "non-string element")
				}
				values = append(values, s)
			}
			m.upsert(key, values, false)
		default:
			return invalidEncoding("multi-map", "unexpected value type")
		}
	}
	return nil
}

var (
	_ msgpack.CustomEncoder = Values{}
	_ msgpack.CustomDecoder = (*Values)(nil)
)
