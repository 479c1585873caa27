package ogmo

import (
	"fmt"
	"strings"
)

// MalformedInputError reports input that is not valid JSON at all.
// It wraps the underlying encoding/json error.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return "malformed JSON input: " + e.Err.Error()
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a required key absent at a field path
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Path)
}

// TypeMismatchError reports a field whose JSON type does not match the schema
type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: expected %s, found %s", e.Path, e.Expected, e.Actual)
}

// AmbiguousVariantError reports an object that matches more than one union
// variant, e.g. a layer carrying both tile data and an entity list.
type AmbiguousVariantError struct {
	Path    string
	Matched []string
}

func (e *AmbiguousVariantError) Error() string {
	return fmt.Sprintf("object at %q matches multiple variants: %s", e.Path, strings.Join(e.Matched, ", "))
}

// UnknownVariantError reports an object that matches no union variant.
// Got holds the unrecognized discriminant value, if one was present.
type UnknownVariantError struct {
	Path string
	Got  string
}

func (e *UnknownVariantError) Error() string {
	if e.Got != "" {
		return fmt.Sprintf("object at %q has unknown variant %q", e.Path, e.Got)
	}
	return fmt.Sprintf("object at %q matches no known variant", e.Path)
}

// NumericRangeError reports a numeric value outside its representable bounds,
// during decode (overflow, invalid enum ordinal) or encode (non-finite float).
type NumericRangeError struct {
	Path  string
	Value string
}

func (e *NumericRangeError) Error() string {
	return fmt.Sprintf("field %q: numeric value %s out of range", e.Path, e.Value)
}

// UnpackError reports an unpack accessor called on the wrong union variant.
// It is only ever returned by accessors, never by decoding or encoding.
type UnpackError struct {
	Expected string
	Actual   string
}

func (e *UnpackError) Error() string {
	return fmt.Sprintf("cannot unpack %s as %s", e.Actual, e.Expected)
}
