package ogmo

import "encoding/json"

// TemplateKind identifies a value template's declared type. The constants
// match the "definition" strings used by the project file format.
type TemplateKind string

const (
	TemplateBoolean     TemplateKind = "Boolean"
	TemplateColor       TemplateKind = "Color"
	TemplateEnum        TemplateKind = "Enum"
	TemplateInteger     TemplateKind = "Integer"
	TemplateFloat       TemplateKind = "Float"
	TemplateString      TemplateKind = "String"
	TemplateText        TemplateKind = "Text"
	TemplateArrayString TemplateKind = "ArrayString"
	TemplateArrayEnum   TemplateKind = "ArrayEnum"
)

// TemplateData is the kind-specific payload of a ValueTemplate.
// Implemented by BooleanTemplate, ColorTemplate, EnumTemplate,
// IntegerTemplate, FloatTemplate, StringTemplate, TextTemplate,
// ArrayStringTemplate and ArrayEnumTemplate.
type TemplateData interface {
	Kind() TemplateKind
	templateData()
}

// ValueTemplate declares one custom field in the project file: its name,
// which Value kind it holds, and its default
type ValueTemplate struct {
	Name string
	Data TemplateData
}

// Kind reports the template's declared type
func (t ValueTemplate) Kind() TemplateKind {
	if t.Data == nil {
		return ""
	}
	return t.Data.Kind()
}

// DefaultValue materializes the template's declared default as a Value.
// Text templates yield String values; an Enum template with no default
// selected (index -1) yields an empty Enum value.
func (t ValueTemplate) DefaultValue() Value {
	switch d := t.Data.(type) {
	case BooleanTemplate:
		return BoolValue(t.Name, d.Default)
	case ColorTemplate:
		return ColorValue(t.Name, d.Default)
	case EnumTemplate:
		if d.Default >= 0 && d.Default < len(d.Choices) {
			return EnumValue(t.Name, d.Choices[d.Default])
		}
		return EnumValue(t.Name, "")
	case IntegerTemplate:
		return IntValue(t.Name, d.Default)
	case FloatTemplate:
		return FloatValue(t.Name, d.Default)
	case StringTemplate:
		return StringValue(t.Name, d.Default)
	case TextTemplate:
		return StringValue(t.Name, d.Default)
	case ArrayStringTemplate:
		return StringArrayValue(t.Name, d.Default)
	case ArrayEnumTemplate:
		return EnumArrayValue(t.Name, d.Default)
	default:
		return Value{Name: t.Name}
	}
}

// Boolean unpacks a boolean template's payload
func (t ValueTemplate) Boolean() (BooleanTemplate, error) {
	d, ok := t.Data.(BooleanTemplate)
	if !ok {
		return BooleanTemplate{}, &UnpackError{Expected: string(TemplateBoolean), Actual: string(t.Kind())}
	}
	return d, nil
}

// Color unpacks a color template's payload
func (t ValueTemplate) Color() (ColorTemplate, error) {
	d, ok := t.Data.(ColorTemplate)
	if !ok {
		return ColorTemplate{}, &UnpackError{Expected: string(TemplateColor), Actual: string(t.Kind())}
	}
	return d, nil
}

// Enum unpacks an enum template's payload
func (t ValueTemplate) Enum() (EnumTemplate, error) {
	d, ok := t.Data.(EnumTemplate)
	if !ok {
		return EnumTemplate{}, &UnpackError{Expected: string(TemplateEnum), Actual: string(t.Kind())}
	}
	return d, nil
}

// Integer unpacks an integer template's payload
func (t ValueTemplate) Integer() (IntegerTemplate, error) {
	d, ok := t.Data.(IntegerTemplate)
	if !ok {
		return IntegerTemplate{}, &UnpackError{Expected: string(TemplateInteger), Actual: string(t.Kind())}
	}
	return d, nil
}

// Float unpacks a float template's payload
func (t ValueTemplate) Float() (FloatTemplate, error) {
	d, ok := t.Data.(FloatTemplate)
	if !ok {
		return FloatTemplate{}, &UnpackError{Expected: string(TemplateFloat), Actual: string(t.Kind())}
	}
	return d, nil
}

// String unpacks a string template's payload
func (t ValueTemplate) String() (StringTemplate, error) {
	d, ok := t.Data.(StringTemplate)
	if !ok {
		return StringTemplate{}, &UnpackError{Expected: string(TemplateString), Actual: string(t.Kind())}
	}
	return d, nil
}

// Text unpacks a text template's payload
func (t ValueTemplate) Text() (TextTemplate, error) {
	d, ok := t.Data.(TextTemplate)
	if !ok {
		return TextTemplate{}, &UnpackError{Expected: string(TemplateText), Actual: string(t.Kind())}
	}
	return d, nil
}

// StringArray unpacks a string-array template's payload
func (t ValueTemplate) StringArray() (ArrayStringTemplate, error) {
	d, ok := t.Data.(ArrayStringTemplate)
	if !ok {
		return ArrayStringTemplate{}, &UnpackError{Expected: string(TemplateArrayString), Actual: string(t.Kind())}
	}
	return d, nil
}

// EnumArray unpacks an enum-array template's payload
func (t ValueTemplate) EnumArray() (ArrayEnumTemplate, error) {
	d, ok := t.Data.(ArrayEnumTemplate)
	if !ok {
		return ArrayEnumTemplate{}, &UnpackError{Expected: string(TemplateArrayEnum), Actual: string(t.Kind())}
	}
	return d, nil
}

// BooleanTemplate declares a boolean field
type BooleanTemplate struct {
	Default bool
}

// ColorTemplate declares a color field
type ColorTemplate struct {
	Default      Color
	IncludeAlpha bool // whether the alpha component is part of the value
}

// EnumTemplate declares an enum field. Default indexes into Choices;
// -1 means no default is selected.
type EnumTemplate struct {
	Default int
	Choices []string
}

// IntegerTemplate declares an integer field, optionally bounded
type IntegerTemplate struct {
	Default int64
	Bounded bool
	Min     int64
	Max     int64
}

// FloatTemplate declares a float field, optionally bounded
type FloatTemplate struct {
	Default float64
	Bounded bool
	Min     float64
	Max     float64
}

// StringTemplate declares a single-line string field
type StringTemplate struct {
	Default        string
	MaxLength      int
	TrimWhitespace bool
}

// TextTemplate declares a multi-line text field
type TextTemplate struct {
	Default string
}

// ArrayStringTemplate declares an ordered list of strings
type ArrayStringTemplate struct {
	Default []string
}

// ArrayEnumTemplate declares an ordered list of enum choices
type ArrayEnumTemplate struct {
	Default []string
	Choices []string
}

func (BooleanTemplate) Kind() TemplateKind     { return TemplateBoolean }
func (ColorTemplate) Kind() TemplateKind       { return TemplateColor }
func (EnumTemplate) Kind() TemplateKind        { return TemplateEnum }
func (IntegerTemplate) Kind() TemplateKind     { return TemplateInteger }
func (FloatTemplate) Kind() TemplateKind       { return TemplateFloat }
func (StringTemplate) Kind() TemplateKind      { return TemplateString }
func (TextTemplate) Kind() TemplateKind        { return TemplateText }
func (ArrayStringTemplate) Kind() TemplateKind { return TemplateArrayString }
func (ArrayEnumTemplate) Kind() TemplateKind   { return TemplateArrayEnum }

func (BooleanTemplate) templateData()     {}
func (ColorTemplate) templateData()       {}
func (EnumTemplate) templateData()        {}
func (IntegerTemplate) templateData()     {}
func (FloatTemplate) templateData()       {}
func (StringTemplate) templateData()      {}
func (TextTemplate) templateData()        {}
func (ArrayStringTemplate) templateData() {}
func (ArrayEnumTemplate) templateData()   {}

// MarshalJSON encodes the template with its "definition" tag and
// kind-specific fields
func (t ValueTemplate) MarshalJSON() ([]byte, error) {
	type header struct {
		Name       string       `json:"name"`
		Definition TemplateKind `json:"definition"`
	}
	h := header{Name: t.Name, Definition: t.Kind()}

	switch d := t.Data.(type) {
	case BooleanTemplate:
		return json.Marshal(struct {
			header
			Defaults bool `json:"defaults"`
		}{h, d.Default})
	case ColorTemplate:
		return json.Marshal(struct {
			header
			Defaults     Color `json:"defaults"`
			IncludeAlpha bool  `json:"includeAlpha"`
		}{h, d.Default, d.IncludeAlpha})
	case EnumTemplate:
		return json.Marshal(struct {
			header
			Defaults int      `json:"defaults"`
			Choices  []string `json:"choices"`
		}{h, d.Default, emptyIfNil(d.Choices)})
	case IntegerTemplate:
		return json.Marshal(struct {
			header
			Defaults int64 `json:"defaults"`
			Bounded  bool  `json:"bounded"`
			Min      int64 `json:"min"`
			Max      int64 `json:"max"`
		}{h, d.Default, d.Bounded, d.Min, d.Max})
	case FloatTemplate:
		return json.Marshal(struct {
			header
			Defaults float64 `json:"defaults"`
			Bounded  bool    `json:"bounded"`
			Min      float64 `json:"min"`
			Max      float64 `json:"max"`
		}{h, d.Default, d.Bounded, d.Min, d.Max})
	case StringTemplate:
		return json.Marshal(struct {
			header
			Defaults       string `json:"defaults"`
			MaxLength      int    `json:"maxLength"`
			TrimWhitespace bool   `json:"trimWhitespace"`
		}{h, d.Default, d.MaxLength, d.TrimWhitespace})
	case TextTemplate:
		return json.Marshal(struct {
			header
			Defaults string `json:"defaults"`
		}{h, d.Default})
	case ArrayStringTemplate:
		return json.Marshal(struct {
			header
			Defaults []string `json:"defaults"`
		}{h, emptyIfNil(d.Default)})
	case ArrayEnumTemplate:
		return json.Marshal(struct {
			header
			Defaults []string `json:"defaults"`
			Choices  []string `json:"choices"`
		}{h, emptyIfNil(d.Default), emptyIfNil(d.Choices)})
	default:
		return json.Marshal(h)
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
