package ogmo

import "encoding/json"

// LayerKind identifies a layer variant. Layer definitions use tile, grid,
// entity and decal; level layer instances additionally use tileCoords when
// their tile data is stored as tileset co-ordinates.
type LayerKind string

const (
	LayerTile       LayerKind = "tile"
	LayerTileCoords LayerKind = "tileCoords"
	LayerGrid       LayerKind = "grid"
	LayerEntity     LayerKind = "entity"
	LayerDecal      LayerKind = "decal"
)

// ExportMode defines whether tile data is stored as IDs or co-ordinates
type ExportMode int

const (
	// ExportIDs stores tiles as IDs counting left to right, top to bottom
	ExportIDs ExportMode = 0

	// ExportCoords stores tiles as tileset co-ordinates
	ExportCoords ExportMode = 1
)

// ArrayMode defines whether packed data is stored as a 1D or 2D array
type ArrayMode int

const (
	Array1D ArrayMode = 0
	Array2D ArrayMode = 1
)

// LayerDef is the kind-specific payload of a LayerTemplate.
// Implemented by TileDef, GridDef, EntityDef and DecalDef.
type LayerDef interface {
	Kind() LayerKind
	layerDef()
}

// LayerTemplate declares one layer kind in the project file. The order of a
// project's templates is the editor's display order and is preserved.
type LayerTemplate struct {
	Name     string
	ExportID string
	GridSize Vec2i // size of each cell in the layer's grid
	Data     LayerDef
}

// Kind reports which layer kind the template declares
func (t LayerTemplate) Kind() LayerKind {
	if t.Data == nil {
		return ""
	}
	return t.Data.Kind()
}

// Tile unpacks a tile layer definition
func (t LayerTemplate) Tile() (TileDef, error) {
	d, ok := t.Data.(TileDef)
	if !ok {
		return TileDef{}, &UnpackError{Expected: string(LayerTile), Actual: string(t.Kind())}
	}
	return d, nil
}

// Grid unpacks a grid layer definition
func (t LayerTemplate) Grid() (GridDef, error) {
	d, ok := t.Data.(GridDef)
	if !ok {
		return GridDef{}, &UnpackError{Expected: string(LayerGrid), Actual: string(t.Kind())}
	}
	return d, nil
}

// Entity unpacks an entity layer definition
func (t LayerTemplate) Entity() (EntityDef, error) {
	d, ok := t.Data.(EntityDef)
	if !ok {
		return EntityDef{}, &UnpackError{Expected: string(LayerEntity), Actual: string(t.Kind())}
	}
	return d, nil
}

// Decal unpacks a decal layer definition
func (t LayerTemplate) Decal() (DecalDef, error) {
	d, ok := t.Data.(DecalDef)
	if !ok {
		return DecalDef{}, &UnpackError{Expected: string(LayerDecal), Actual: string(t.Kind())}
	}
	return d, nil
}

// TileDef declares a tile layer
type TileDef struct {
	ExportMode     ExportMode
	ArrayMode      ArrayMode
	DefaultTileset string
}

// GridDef declares a grid layer
type GridDef struct {
	ArrayMode ArrayMode
	Legend    map[string]string // descriptions for the available cell values
}

// EntityDef declares an entity layer
type EntityDef struct {
	RequiredTags []string // tags an entity must carry to appear on this layer
	ExcludedTags []string // tags an entity must not carry
}

// DecalDef declares a decal layer
type DecalDef struct {
	Folder               string // image search path, relative to the project
	IncludeImageSequence bool
	Scaleable            bool
	Rotatable            bool
	Values               []ValueTemplate
}

func (TileDef) Kind() LayerKind   { return LayerTile }
func (GridDef) Kind() LayerKind   { return LayerGrid }
func (EntityDef) Kind() LayerKind { return LayerEntity }
func (DecalDef) Kind() LayerKind  { return LayerDecal }

func (TileDef) layerDef()   {}
func (GridDef) layerDef()   {}
func (EntityDef) layerDef() {}
func (DecalDef) layerDef()  {}

// MarshalJSON encodes the template with its "definition" tag and
// kind-specific fields
func (t LayerTemplate) MarshalJSON() ([]byte, error) {
	type header struct {
		Definition LayerKind `json:"definition"`
		Name       string    `json:"name"`
		GridSize   Vec2i     `json:"gridSize"`
		ExportID   string    `json:"exportID"`
	}
	h := header{Definition: t.Kind(), Name: t.Name, GridSize: t.GridSize, ExportID: t.ExportID}

	switch d := t.Data.(type) {
	case TileDef:
		return json.Marshal(struct {
			header
			ExportMode     ExportMode `json:"exportMode"`
			ArrayMode      ArrayMode  `json:"arrayMode"`
			DefaultTileset string     `json:"defaultTileset"`
		}{h, d.ExportMode, d.ArrayMode, d.DefaultTileset})
	case GridDef:
		legend := d.Legend
		if legend == nil {
			legend = map[string]string{}
		}
		return json.Marshal(struct {
			header
			ArrayMode ArrayMode         `json:"arrayMode"`
			Legend    map[string]string `json:"legend"`
		}{h, d.ArrayMode, legend})
	case EntityDef:
		return json.Marshal(struct {
			header
			RequiredTags []string `json:"requiredTags"`
			ExcludedTags []string `json:"excludedTags"`
		}{h, emptyIfNil(d.RequiredTags), emptyIfNil(d.ExcludedTags)})
	case DecalDef:
		values := d.Values
		if values == nil {
			values = []ValueTemplate{}
		}
		return json.Marshal(struct {
			header
			Folder               string          `json:"folder"`
			IncludeImageSequence bool            `json:"includeImageSequence"`
			Scaleable            bool            `json:"scaleable"`
			Rotatable            bool            `json:"rotatable"`
			Values               []ValueTemplate `json:"values"`
		}{h, d.Folder, d.IncludeImageSequence, d.Scaleable, d.Rotatable, values})
	default:
		return json.Marshal(h)
	}
}
