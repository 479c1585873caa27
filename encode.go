package ogmo

import (
	"encoding/json"
	"errors"
)

// EncodeProject serializes a project back to the pretty-printed JSON form
// the editor itself writes.
func EncodeProject(p *Project) ([]byte, error) {
	return encode(p)
}

// EncodeLevel serializes a level back to the pretty-printed JSON form the
// editor itself writes.
func EncodeLevel(l *Level) ([]byte, error) {
	return encode(l)
}

func encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, encodeError(err)
	}
	return data, nil
}

// encodeError unwraps the json package's marshaler-error wrapping so callers
// see the typed error the field's MarshalJSON produced
func encodeError(err error) error {
	var rangeErr *NumericRangeError
	if errors.As(err, &rangeErr) {
		return rangeErr
	}
	var valErr *json.UnsupportedValueError
	if errors.As(err, &valErr) {
		return &NumericRangeError{Value: valErr.Str}
	}
	return err
}
