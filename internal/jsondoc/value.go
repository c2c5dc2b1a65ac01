package jsondoc

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Uint
	Float
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Member is a named entry of an object value.
type Member struct {
	Name  string
	Value *Value
}

// Value is a slot holding one JSON value. The zero Value is null and can be
// overwritten by any setter. Values are handles into their Document: strings
// and child values must be created through the owning Document.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	u       uint64
	f       float64
	s       string
	elems   []*Value
	members []Member
}

func (v *Value) reset(k Kind) {
	*v = Value{kind: k}
}

// Kind returns the JSON type currently stored in v.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds null.
func (v *Value) IsNull() bool { return v.kind == Null }

// SetNull clears v.
func (v *Value) SetNull() { v.reset(Null) }

// SetBool stores a boolean.
func (v *Value) SetBool(b bool) {
	v.reset(Bool)
	v.b = b
}

// SetInt stores a signed integer.
func (v *Value) SetInt(i int64) {
	v.reset(Int)
	v.i = i
}

// SetUint stores an unsigned integer.
func (v *Value) SetUint(u uint64) {
	v.reset(Uint)
	v.u = u
}

// SetFloat stores a floating point number.
func (v *Value) SetFloat(f float64) {
	v.reset(Float)
	v.f = f
}

// SetString stores a copy of s allocated through doc.
func (v *Value) SetString(s string, doc *Document) {
	v.reset(String)
	v.s = doc.CopyString(s)
}

// SetArray turns v into an empty array.
func (v *Value) SetArray() { v.reset(Array) }

// SetObject turns v into an empty object.
func (v *Value) SetObject() { v.reset(Object) }

// Append adds a null element to the array v and returns its slot.
// It panics if v is not an array.
func (v *Value) Append(doc *Document) *Value {
	v.mustBe(Array)
	elem := doc.NewValue()
	v.elems = append(v.elems, elem)
	return elem
}

// AddMember returns the slot for name in the object v, creating it if needed.
// An existing member is reset to null. It panics if v is not an object.
func (v *Value) AddMember(name string, doc *Document) *Value {
	v.mustBe(Object)
	for _, m := range v.members {
		if m.Name == name {
			m.Value.SetNull()
			return m.Value
		}
	}
	slot := doc.NewValue()
	v.members = append(v.members, Member{Name: doc.CopyString(name), Value: slot})
	return slot
}

func (v *Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("jsondoc: value is %s, not %s", v.kind, k))
	}
}

// Bool returns the boolean held by v, or false.
func (v *Value) Bool() bool { return v.kind == Bool && v.b }

// Int returns the number held by v as int64.
func (v *Value) Int() int64 {
	switch v.kind {
	case Int:
		return v.i
	case Uint:
		return int64(v.u)
	case Float:
		return int64(v.f)
	}
	return 0
}

// Uint returns the number held by v as uint64.
func (v *Value) Uint() uint64 {
	switch v.kind {
	case Int:
		return uint64(v.i)
	case Uint:
		return v.u
	case Float:
		return uint64(v.f)
	}
	return 0
}

// Float returns the number held by v as float64.
func (v *Value) Float() float64 {
	switch v.kind {
	case Int:
		return float64(v.i)
	case Uint:
		return float64(v.u)
	case Float:
		return v.f
	}
	return 0
}

// Str returns the string held by v, or "".
func (v *Value) Str() string {
	if v.kind != String {
		return ""
	}
	return v.s
}

// Len returns the number of elements or members of an array or object.
func (v *Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.elems)
	case Object:
		return len(v.members)
	}
	return 0
}

// Index returns the i'th element of an array, or nil when out of range.
func (v *Value) Index(i int) *Value {
	if v.kind != Array || i < 0 || i >= len(v.elems) {
		return nil
	}
	return v.elems[i]
}

// Member returns the value stored under name in an object, or nil.
func (v *Value) Member(name string) *Value {
	if v.kind != Object {
		return nil
	}
	for _, m := range v.members {
		if m.Name == name {
			return m.Value
		}
	}
	return nil
}

// Members returns the object members in insertion order.
func (v *Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	out := make([]Member, len(v.members))
	copy(out, v.members)
	return out
}

// CopyFrom replaces v with a deep copy of src. Strings are copied through doc.
func (v *Value) CopyFrom(src *Value, doc *Document) {
	if src == v {
		return
	}
	switch src.kind {
	case String:
		v.SetString(src.s, doc)
	case Array:
		elems := src.elems
		v.SetArray()
		for _, e := range elems {
			v.Append(doc).CopyFrom(e, doc)
		}
	case Object:
		members := src.members
		v.SetObject()
		for _, m := range members {
			v.AddMember(m.Name, doc).CopyFrom(m.Value, doc)
		}
	default:
		*v = Value{kind: src.kind, b: src.b, i: src.i, u: src.u, f: src.f}
	}
}

// Equal reports whether v and other hold the same JSON value. Numbers of
// different kinds are not equal; object member order is significant.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == other.b
	case Int:
		return v.i == other.i
	case Uint:
		return v.u == other.u
	case Float:
		return v.f == other.f || (math.IsNaN(v.f) && math.IsNaN(other.f))
	case String:
		return v.s == other.s
	case Array:
		if len(v.elems) != len(other.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(other.elems[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.members) != len(other.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Name != other.members[i].Name || !v.members[i].Value.Equal(other.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(jsontext.NewEncoder(&buf)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (v *Value) encode(enc *jsontext.Encoder) error {
	switch v.kind {
	case Null:
		return enc.WriteToken(jsontext.Null)
	case Bool:
		return enc.WriteToken(jsontext.Bool(v.b))
	case Int:
		return enc.WriteToken(jsontext.Int(v.i))
	case Uint:
		return enc.WriteToken(jsontext.Uint(v.u))
	case Float:
		// JSON has no literal for NaN or infinities.
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return enc.WriteToken(jsontext.String(strconv.FormatFloat(v.f, 'f', -1, 64)))
		}
		return enc.WriteToken(jsontext.Float(v.f))
	case String:
		return enc.WriteToken(jsontext.String(v.s))
	case Array:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, e := range v.elems {
			if err := e.encode(enc); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	case Object:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for _, m := range v.members {
			if err := enc.WriteToken(jsontext.String(m.Name)); err != nil {
				return err
			}
			if err := m.Value.encode(enc); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	default:
		return fmt.Errorf("jsondoc: cannot encode value of kind %s", v.kind)
	}
}
