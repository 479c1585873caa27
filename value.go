package ogmo

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// ValueKind identifies which variant of a Value is populated
type ValueKind string

const (
	ValueBoolean     ValueKind = "Boolean"
	ValueColor       ValueKind = "Color"
	ValueEnum        ValueKind = "Enum"
	ValueInteger     ValueKind = "Integer"
	ValueFloat       ValueKind = "Float"
	ValueString      ValueKind = "String"
	ValueArrayString ValueKind = "ArrayString"
	ValueArrayEnum   ValueKind = "ArrayEnum"
)

// Value is one custom field value attached to a level, layer or entity.
// Exactly one variant is populated; build instances with the *Value
// constructors and read them back with the typed accessors.
//
// The level format does not store a type tag next to each value, so decoding
// infers the kind from the JSON shape: enum and color values read from a
// level come back as String values unless the caller cross-references the
// project's templates. Integer and Float are told apart by the source
// literal: 5 decodes as Integer, 5.0 as Float.
type Value struct {
	Name string

	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
	c    Color
	list []string
}

// BoolValue builds a Boolean value
func BoolValue(name string, v bool) Value {
	return Value{Name: name, kind: ValueBoolean, b: v}
}

// ColorValue builds a Color value
func ColorValue(name string, c Color) Value {
	return Value{Name: name, kind: ValueColor, c: c}
}

// EnumValue builds an Enum value holding one of a template's choices
func EnumValue(name, choice string) Value {
	return Value{Name: name, kind: ValueEnum, s: choice}
}

// IntValue builds an Integer value
func IntValue(name string, v int64) Value {
	return Value{Name: name, kind: ValueInteger, i: v}
}

// FloatValue builds a Float value
func FloatValue(name string, v float64) Value {
	return Value{Name: name, kind: ValueFloat, f: v}
}

// StringValue builds a String value
func StringValue(name, v string) Value {
	return Value{Name: name, kind: ValueString, s: v}
}

// StringArrayValue builds an ArrayString value
func StringArrayValue(name string, v []string) Value {
	return Value{Name: name, kind: ValueArrayString, list: v}
}

// EnumArrayValue builds an ArrayEnum value
func EnumArrayValue(name string, v []string) Value {
	return Value{Name: name, kind: ValueArrayEnum, list: v}
}

// Kind reports which variant is populated
func (v Value) Kind() ValueKind {
	return v.kind
}

// Bool unpacks a Boolean value
func (v Value) Bool() (bool, error) {
	if v.kind != ValueBoolean {
		return false, &UnpackError{Expected: string(ValueBoolean), Actual: string(v.kind)}
	}
	return v.b, nil
}

// Color unpacks a Color value
func (v Value) Color() (Color, error) {
	if v.kind != ValueColor {
		return Color{}, &UnpackError{Expected: string(ValueColor), Actual: string(v.kind)}
	}
	return v.c, nil
}

// Enum unpacks an Enum value
func (v Value) Enum() (string, error) {
	if v.kind != ValueEnum {
		return "", &UnpackError{Expected: string(ValueEnum), Actual: string(v.kind)}
	}
	return v.s, nil
}

// Int unpacks an Integer value
func (v Value) Int() (int64, error) {
	if v.kind != ValueInteger {
		return 0, &UnpackError{Expected: string(ValueInteger), Actual: string(v.kind)}
	}
	return v.i, nil
}

// Float unpacks a Float value
func (v Value) Float() (float64, error) {
	if v.kind != ValueFloat {
		return 0, &UnpackError{Expected: string(ValueFloat), Actual: string(v.kind)}
	}
	return v.f, nil
}

// Str unpacks a String value
func (v Value) Str() (string, error) {
	if v.kind != ValueString {
		return "", &UnpackError{Expected: string(ValueString), Actual: string(v.kind)}
	}
	return v.s, nil
}

// StringArray unpacks an ArrayString value
func (v Value) StringArray() ([]string, error) {
	if v.kind != ValueArrayString {
		return nil, &UnpackError{Expected: string(ValueArrayString), Actual: string(v.kind)}
	}
	return v.list, nil
}

// EnumArray unpacks an ArrayEnum value
func (v Value) EnumArray() ([]string, error) {
	if v.kind != ValueArrayEnum {
		return nil, &UnpackError{Expected: string(ValueArrayEnum), Actual: string(v.kind)}
	}
	return v.list, nil
}

// MarshalJSON encodes the value's payload in its wire form. Integer values
// never gain a decimal point and Float values always carry one, so the
// integer/float distinction survives a round trip.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueBoolean:
		return json.Marshal(v.b)
	case ValueColor:
		return v.c.MarshalJSON()
	case ValueEnum, ValueString:
		return json.Marshal(v.s)
	case ValueInteger:
		return strconv.AppendInt(nil, v.i, 10), nil
	case ValueFloat:
		return appendFloat(nil, v.f, v.Name)
	case ValueArrayString, ValueArrayEnum:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return json.Marshal(nil)
	}
}

// appendFloat formats a float for the wire, keeping a decimal point (or
// exponent) so the literal stays float-shaped even for integral values
func appendFloat(b []byte, f float64, path string) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &NumericRangeError{Path: path, Value: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	out := strconv.AppendFloat(b, f, 'g', -1, 64)
	if !bytes.ContainsAny(out[len(b):], ".eE") {
		out = append(out, '.', '0')
	}
	return out, nil
}

// Values is the ordered collection of custom values owned by one level,
// layer or entity. On the wire it is a JSON object; source key order is
// preserved through decode and encode.
type Values []Value

// Get returns the value with the given name
func (vs Values) Get(name string) (Value, bool) {
	for _, v := range vs {
		if v.Name == name {
			return v, true
		}
	}
	return Value{}, false
}

// MarshalJSON encodes the collection as a JSON object in declaration order
func (vs Values) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, v := range vs {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		b.Write(name)
		b.WriteByte(':')
		payload, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(payload)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
