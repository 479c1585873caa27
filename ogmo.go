// Package ogmo parses and serializes projects and levels created with
// Ogmo Editor 3 (https://ogmo-editor-3.github.io/).
//
// The package maps the editor's JSON files onto a typed model. Ambiguous
// objects in the format (layers, layer definitions, custom values) are
// represented as tagged unions that are resolved once, at decode time, so a
// decoded Project or Level can never hold contradictory data. Decoding is
// atomic: the first schema violation aborts the whole parse and reports the
// offending field path. Encoding projects the model back into JSON that the
// editor accepts.
package ogmo

import (
	"fmt"
	"os"
)

// Vec2 is an X and Y value in pixels
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec2i is an X and Y value in whole units (grid cells, tile sizes)
type Vec2i struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LoadProject reads and parses an Ogmo project (.ogmo) file
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", path, err)
	}
	p, err := ParseProject(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	return p, nil
}

// LoadLevel reads and parses an Ogmo level JSON file
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", path, err)
	}
	l, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", path, err)
	}
	return l, nil
}
