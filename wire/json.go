package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
)

var (
	// ErrTrailingData is returned by Parse when valid JSON is followed by
	// further non-whitespace input.
	ErrTrailingData = errors.New("trailing data after document")
)

// Parse reads one JSON document from data into a Value. Object member order
// and number spellings are preserved. A repeated key within one object keeps
// the last value, matching encoding/json.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("wire: parse: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("wire: parse: %w", ErrTrailingData)
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return NullValue(), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case bool:
		return BoolValue(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := parseValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return Value{}, err
			}
			return ArrayValue(items...), nil
		case '{':
			obj := NewObj()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key token %v", keyTok)
				}
				val, err := parseValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return Value{}, err
			}
			return ObjectValue(obj), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// Marshal serializes the value to compact JSON. Object members are written
// in their insertion order.
func Marshal(v Value) ([]byte, error) {
	return appendJSON(nil, v)
}

func appendJSON(dst []byte, v Value) ([]byte, error) {
	switch v.kind {
	case Null:
		return append(dst, "null"...), nil
	case String:
		quoted, err := json.Marshal(v.str)
		if err != nil {
			return nil, err
		}
		return append(dst, quoted...), nil
	case Number:
		if v.str == "" {
			return nil, errors.New("wire: marshal: empty number")
		}
		return append(dst, v.str...), nil
	case Bool:
		return strconv.AppendBool(dst, v.b), nil
	case Array:
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = appendJSON(dst, item)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case Object:
		dst = append(dst, '{')
		for i, m := range v.obj.Members() {
			if i > 0 {
				dst = append(dst, ',')
			}
			quoted, err := json.Marshal(m.Key)
			if err != nil {
				return nil, err
			}
			dst = append(dst, quoted...)
			dst = append(dst, ':')
			dst, err = appendJSON(dst, m.Value)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	}
	return nil, fmt.Errorf("wire: marshal: unknown kind %d", v.kind)
}

// SortedObj returns a copy of o with members ordered by key. Used by codecs
// whose canonical form carries no member order of its own.
func SortedObj(o *Obj) *Obj {
	members := append([]Member(nil), o.Members()...)
	sort.Slice(members, func(i, j int) bool { return members[i].Key < members[j].Key })
	out := NewObj()
	for _, m := range members {
		out.Set(m.Key, m.Value)
	}
	return out
}
