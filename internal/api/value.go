package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a recursively defined tagged union over the six JSON shapes.
// Included-resource attributes are loosely typed on the wire; decoding them
// into Value keeps every variant explicit instead of hiding behind a
// dynamically-typed container.
//
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Kind returns the variant this Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean variant, or false for any other kind.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the number variant, or 0 for any other kind.
func (v Value) AsNumber() float64 { return v.n }

// AsString returns the string variant, or "" for any other kind.
func (v Value) AsString() string { return v.s }

// AsArray returns the array variant, or nil for any other kind.
func (v Value) AsArray() []Value { return v.arr }

// AsObject returns the object variant, or nil for any other kind.
func (v Value) AsObject() map[string]Value { return v.obj }

// UnmarshalJSON decodes any JSON value into the matching variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty JSON value")
	}

	switch trimmed[0] {
	case 'n':
		*v = Value{kind: KindNull}
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*v = Value{kind: KindBool, b: b}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = Value{kind: KindString, s: s}
		return nil
	case '[':
		var arr []Value
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return err
		}
		if arr == nil {
			arr = []Value{}
		}
		*v = Value{kind: KindArray, arr: arr}
		return nil
	case '{':
		var obj map[string]Value
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		if obj == nil {
			obj = map[string]Value{}
		}
		*v = Value{kind: KindObject, obj: obj}
		return nil
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*v = Value{kind: KindNumber, n: n}
		return nil
	}
}

// MarshalJSON encodes the variant back to its JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		return json.Marshal(v.arr)
	case KindObject:
		return json.Marshal(v.obj)
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}
