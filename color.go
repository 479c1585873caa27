package ogmo

import (
	"fmt"
	"strconv"
)

// Color is an RGBA color parsed from the editor's hex notation.
// HasAlpha records whether the source form was "#rrggbbaa" rather than
// "#rrggbb", so re-encoding reproduces the original form.
type Color struct {
	R, G, B, A uint8
	HasAlpha   bool
}

// RGB builds an opaque color that encodes as "#rrggbb"
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// RGBA builds a color that encodes as "#rrggbbaa"
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a, HasAlpha: true}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa" hex notation
func ParseColor(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, fmt.Errorf("color %q: missing leading '#'", s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: expected 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: invalid hex digits", s)
	}
	if len(hex) == 6 {
		return Color{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 0xff,
		}, nil
	}
	return Color{
		R:        uint8(v >> 24),
		G:        uint8(v >> 16),
		B:        uint8(v >> 8),
		A:        uint8(v),
		HasAlpha: true,
	}, nil
}

// String formats the color in the editor's hex notation
func (c Color) String() string {
	if c.HasAlpha {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalJSON encodes the color as a hex string
func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalJSON decodes the color from a hex string
func (c *Color) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return &TypeMismatchError{Path: "color", Expected: "string", Actual: jsonTypeName(data)}
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
