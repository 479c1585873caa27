package ogmo

import "encoding/json"

// Level is the root of an Ogmo level file: one playable area's concrete
// layer contents and custom values. Layer order is the editor's paint order
// and is preserved through a round trip.
type Level struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OffsetX float64 `json:"offsetX"` // offsets are useful for chunked multi-level maps
	OffsetY float64 `json:"offsetY"`
	Layers  []Layer `json:"layers"`
	Values  Values  `json:"values,omitempty"`
}

// Layer returns the first layer with the given name
func (l *Level) Layer(name string) (Layer, bool) {
	for _, layer := range l.Layers {
		if layer.Name() == name {
			return layer, true
		}
	}
	return Layer{}, false
}

// MarshalJSON encodes the level, writing an empty array rather than null
// when the level has no layers
func (l Level) MarshalJSON() ([]byte, error) {
	type alias Level
	a := alias(l)
	if a.Layers == nil {
		a.Layers = []Layer{}
	}
	return json.Marshal(a)
}
