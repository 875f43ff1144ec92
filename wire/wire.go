// Package wire models JSON documents as untyped structural values prior to
// typed interpretation.
//
// The model is deliberately richer than a bare map[string]any in two ways:
//
//   - Objects preserve member insertion order, and lookups report presence,
//     so "key missing" and "key present with a null value" stay distinct all
//     the way to the codec layer.
//   - Numbers are kept in their textual wire form (json.Number), so a value
//     that is merely passed through decode and encode reproduces the exact
//     digits the producer sent.
//
// Values are immutable once built; sharing them across goroutines is safe.
package wire

import (
	"encoding/json"
)

// Kind identifies the structural type of a Value.
type Kind uint8

const (
	// Null is a JSON null. It is also the Kind of the zero Value.
	Null Kind = iota
	// String is a JSON string.
	String
	// Number is a JSON number, held in textual form.
	Number
	// Bool is a JSON boolean.
	Bool
	// Array is an ordered sequence of Values.
	Array
	// Object is an ordered mapping of string keys to Values.
	Object
)

// String returns the lowercase name of the kind, as used in error messages.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Value is a single structural JSON value. The zero Value is null.
type Value struct {
	kind Kind
	str  string // String and Number payloads
	b    bool
	arr  []Value
	obj  *Obj
}

// NullValue returns the null Value.
func NullValue() Value { return Value{} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: String, str: s} }

// NumberValue returns a number Value holding the given textual form.
// The caller is responsible for n being a valid JSON number.
func NumberValue(n json.Number) Value { return Value{kind: Number, str: string(n)} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// ArrayValue returns an array Value over the given items. The slice is
// retained; callers must not mutate it afterwards.
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, arr: items}
}

// ObjectValue returns an object Value over the given members. The Obj is
// retained; callers must not mutate it afterwards.
func ObjectValue(o *Obj) Value {
	if o == nil {
		o = NewObj()
	}
	return Value{kind: Object, obj: o}
}

// Kind reports the structural type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == Null }

// Str returns the string payload. It is the empty string for non-string kinds.
func (v Value) Str() string {
	if v.kind != String {
		return ""
	}
	return v.str
}

// Num returns the textual number payload. It is empty for non-number kinds.
func (v Value) Num() json.Number {
	if v.kind != Number {
		return ""
	}
	return json.Number(v.str)
}

// Bool returns the boolean payload, false for non-bool kinds.
func (v Value) Bool() bool { return v.kind == Bool && v.b }

// Array returns the item slice for array values, nil otherwise.
// The returned slice is shared and must be treated as read-only.
func (v Value) Array() []Value {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// Object returns the member table for object values, nil otherwise.
// The returned Obj is shared and must be treated as read-only.
func (v Value) Object() *Obj {
	if v.kind != Object {
		return nil
	}
	return v.obj
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Obj is an ordered string-keyed member table. Keys are case-sensitive;
// member order is insertion order. A repeated Set for an existing key
// replaces the value in place, keeping the original position.
type Obj struct {
	members []Member
	index   map[string]int
}

// NewObj returns an empty object table.
func NewObj() *Obj {
	return &Obj{index: make(map[string]int)}
}

// Set adds or replaces the member for key. It returns the receiver so member
// tables can be built as a chain.
func (o *Obj) Set(key string, v Value) *Obj {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return o
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
	return o
}

// Get returns the value for key. The second result distinguishes an absent
// key (false) from a key that is present, including present with null.
func (o *Obj) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

// Has reports whether key is present.
func (o *Obj) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[key]
	return ok
}

// Len returns the number of members.
func (o *Obj) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Members returns the members in insertion order. The slice is shared and
// must be treated as read-only.
func (o *Obj) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}

// Keys returns the member keys in insertion order.
func (o *Obj) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Equal reports structural equality of two values. Object member order is
// not significant; everything else is, including the textual form of
// numbers (so "1e3" and "1000" compare unequal only if neither parses, see
// numberEqual).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case String:
		return a.str == b.str
	case Number:
		return numberEqual(a.str, b.str)
	case Bool:
		return a.b == b.b
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, m := range a.obj.Members() {
			other, ok := b.obj.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

func numberEqual(a, b string) bool {
	if a == b {
		return true
	}
	af, errA := json.Number(a).Float64()
	bf, errB := json.Number(b).Float64()
	if errA != nil || errB != nil {
		return false
	}
	return af == bf
}
