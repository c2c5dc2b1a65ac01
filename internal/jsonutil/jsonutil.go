// Package jsonutil writes typed Go values into jsondoc value slots.
//
// Numbers go through ToJSONValue, which pretty-prints them when a unit other
// than units.None is given. Everything else is copied as-is and the unit is
// ignored. The choice between the two is made by the type checker: calling
// ToJSONValue with a non-numeric type does not compile.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/mcncl/prettyjson/internal/jsondoc"
	"github.com/mcncl/prettyjson/internal/prettyprint"
	"github.com/mcncl/prettyjson/internal/units"
)

// ErrUnsupportedType is returned by ToJSON for values with no JSON mapping.
var ErrUnsupportedType = errors.New("unsupported value type")

// Arithmetic is the set of integer and floating point types.
type Arithmetic interface {
	constraints.Integer | constraints.Float
}

// ToJSONValue stores value in out. With units.None the raw number is kept,
// otherwise out holds the string prettyprint.Print(value, unit).
func ToJSONValue[T Arithmetic](value T, unit units.Unit, doc *jsondoc.Document, out *jsondoc.Value) {
	if unit != units.None {
		ToJSONString(prettyprint.Print(value, unit), unit, doc, out)
		return
	}
	setNumber(value, out)
}

func setNumber[T Arithmetic](value T, out *jsondoc.Value) {
	half, minusOne := 0.5, -1
	switch {
	case T(half) != 0:
		out.SetFloat(float64(value))
	case T(minusOne) < 0:
		out.SetInt(int64(value))
	default:
		out.SetUint(uint64(value))
	}
}

// ToJSONString stores a copy of value, allocated through doc. The unit is
// ignored.
func ToJSONString[T ~string](value T, _ units.Unit, doc *jsondoc.Document, out *jsondoc.Value) {
	out.SetString(string(value), doc)
}

// ToJSONBool stores value. The unit is ignored.
func ToJSONBool[T ~bool](value T, _ units.Unit, _ *jsondoc.Document, out *jsondoc.Value) {
	out.SetBool(bool(value))
}

// ToJSONLiteral deep copies an existing JSON value into out. The unit is
// ignored.
func ToJSONLiteral(value *jsondoc.Value, _ units.Unit, doc *jsondoc.Document, out *jsondoc.Value) {
	if value == nil {
		out.SetNull()
		return
	}
	out.CopyFrom(value, doc)
}

// ToJSON is for values whose static type is unknown, such as decoded input.
// It switches on the dynamic type and forwards to the typed functions above.
// Slices and string-keyed maps are copied as-is: the unit applies to scalar
// numbers only, so their elements are converted with units.None. Types with
// no JSON mapping yield ErrUnsupportedType.
func ToJSON(value any, unit units.Unit, doc *jsondoc.Document, out *jsondoc.Value) error {
	switch v := value.(type) {
	case nil:
		out.SetNull()
	case int:
		ToJSONValue(v, unit, doc, out)
	case int8:
		ToJSONValue(v, unit, doc, out)
	case int16:
		ToJSONValue(v, unit, doc, out)
	case int32:
		ToJSONValue(v, unit, doc, out)
	case int64:
		ToJSONValue(v, unit, doc, out)
	case uint:
		ToJSONValue(v, unit, doc, out)
	case uint8:
		ToJSONValue(v, unit, doc, out)
	case uint16:
		ToJSONValue(v, unit, doc, out)
	case uint32:
		ToJSONValue(v, unit, doc, out)
	case uint64:
		ToJSONValue(v, unit, doc, out)
	case uintptr:
		ToJSONValue(v, unit, doc, out)
	case float32:
		ToJSONValue(v, unit, doc, out)
	case float64:
		ToJSONValue(v, unit, doc, out)
	case json.Number:
		return numberToJSON(v, unit, doc, out)
	case string:
		ToJSONString(v, unit, doc, out)
	case bool:
		ToJSONBool(v, unit, doc, out)
	case *jsondoc.Value:
		ToJSONLiteral(v, unit, doc, out)
	case []any:
		out.SetArray()
		for i, elem := range v {
			if err := ToJSON(elem, units.None, doc, out.Append(doc)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	case map[string]any:
		out.SetObject()
		for _, key := range slices.Sorted(maps.Keys(v)) {
			if err := ToJSON(v[key], units.None, doc, out.AddMember(key, doc)); err != nil {
				return fmt.Errorf("member %q: %w", key, err)
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
	return nil
}

func numberToJSON(n json.Number, unit units.Unit, doc *jsondoc.Document, out *jsondoc.Value) error {
	if i, err := n.Int64(); err == nil {
		ToJSONValue(i, unit, doc, out)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", n.String(), err)
	}
	ToJSONValue(f, unit, doc, out)
	return nil
}
