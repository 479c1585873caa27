package ogmo

import "encoding/json"

// Project is the root of an Ogmo project (.ogmo) file: the editor's global
// schema of layer kinds, tilesets, entity templates and custom-value
// templates. It is an immutable snapshot of the file; the library performs no
// schema evolution on it.
type Project struct {
	Name                 string            `json:"name"`
	OgmoVersion          string            `json:"ogmoVersion"`
	LevelPaths           []string          `json:"levelPaths"`
	BackgroundColor      Color             `json:"backgroundColor"`
	GridColor            Color             `json:"gridColor"`
	AnglesRadians        bool              `json:"anglesRadians"`
	DefaultExportMode    string            `json:"defaultExportMode"`
	DirectoryDepth       int               `json:"directoryDepth"`
	LevelDefaultSize     Vec2i             `json:"levelDefaultSize"`
	LevelMinSize         Vec2i             `json:"levelMinSize"`
	LevelMaxSize         Vec2i             `json:"levelMaxSize"`
	LevelValues          []ValueTemplate   `json:"levelValues"`
	EntityTags           []string          `json:"entityTags"`
	Layers               []LayerTemplate   `json:"layers"` // display order
	Entities             []EntityTemplate  `json:"entities"`
	Tilesets             []Tileset         `json:"tilesets"`
	LayerGridDefaultSize Vec2i             `json:"layerGridDefaultSize"`
}

// MarshalJSON encodes the project, writing empty arrays rather than null for
// absent collections, as the editor does
func (p Project) MarshalJSON() ([]byte, error) {
	type alias Project
	a := alias(p)
	a.LevelPaths = emptyIfNil(a.LevelPaths)
	a.EntityTags = emptyIfNil(a.EntityTags)
	if a.LevelValues == nil {
		a.LevelValues = []ValueTemplate{}
	}
	if a.Layers == nil {
		a.Layers = []LayerTemplate{}
	}
	if a.Entities == nil {
		a.Entities = []EntityTemplate{}
	}
	if a.Tilesets == nil {
		a.Tilesets = []Tileset{}
	}
	return json.Marshal(a)
}

// EntityTemplate declares one entity kind that can be placed on entity layers
type EntityTemplate struct {
	Name            string          `json:"name"`
	ExportID        string          `json:"exportID"`
	Limit           int             `json:"limit"` // maximum instances, 0 to ignore
	Size            Vec2            `json:"size"`
	Origin          Vec2            `json:"origin"`
	OriginAnchored  bool            `json:"originAnchored"`
	Shape           Shape           `json:"shape"`
	Color           Color           `json:"color"`
	TileX           bool            `json:"tileX"`
	TileY           bool            `json:"tileY"`
	TileSize        Vec2            `json:"tileSize"`
	ResizeableX     bool            `json:"resizeableX"`
	ResizeableY     bool            `json:"resizeableY"`
	Rotatable       bool            `json:"rotatable"`
	RotationDegrees float64         `json:"rotationDegrees"`
	CanFlipX        bool            `json:"canFlipX"`
	CanFlipY        bool            `json:"canFlipY"`
	CanSetColor     bool            `json:"canSetColor"`
	HasNodes        bool            `json:"hasNodes"`
	NodeLimit       int             `json:"nodeLimit"` // maximum nodes, 0 to ignore
	NodeDisplay     int             `json:"nodeDisplay"`
	NodeGhost       bool            `json:"nodeGhost"`
	Tags            []string        `json:"tags"`
	Values          []ValueTemplate `json:"values"`
	Texture         *string         `json:"texture,omitempty"`
	TextureImage    *string         `json:"textureImage,omitempty"` // base64-encoded
}

// MarshalJSON encodes the template, writing empty arrays for absent
// collections
func (t EntityTemplate) MarshalJSON() ([]byte, error) {
	type alias EntityTemplate
	a := alias(t)
	a.Tags = emptyIfNil(a.Tags)
	if a.Values == nil {
		a.Values = []ValueTemplate{}
	}
	return json.Marshal(a)
}

// Shape is an entity template's editor icon shape
type Shape struct {
	Label  string `json:"label"`
	Points []Vec2 `json:"points"`
}

// MarshalJSON encodes the shape, writing an empty array rather than null
// when it has no points
func (s Shape) MarshalJSON() ([]byte, error) {
	type alias Shape
	a := alias(s)
	if a.Points == nil {
		a.Points = []Vec2{}
	}
	return json.Marshal(a)
}

// Tileset is a source image sliced into a grid of reusable tile cells
type Tileset struct {
	Label           string `json:"label"`
	Path            string `json:"path"` // relative to the project's path
	Image           string `json:"image"` // base64-encoded copy of the image
	TileWidth       int    `json:"tileWidth"`
	TileHeight      int    `json:"tileHeight"`
	TileSeparationX int    `json:"tileSeparationX"`
	TileSeparationY int    `json:"tileSeparationY"`
	TileMarginX     int    `json:"tileMarginX"`
	TileMarginY     int    `json:"tileMarginY"`
}

// TileCoords returns the top-left pixel of every cell in the tileset, left
// to right, top to bottom. The project file does not store the texture's
// size, only its path, so the caller must supply the dimensions.
func (t Tileset) TileCoords(textureWidth, textureHeight int) []Vec2i {
	stepX := t.TileWidth + t.TileSeparationX
	stepY := t.TileHeight + t.TileSeparationY
	if stepX <= 0 || stepY <= 0 {
		return nil
	}

	tilesX := (textureWidth - 2*t.TileMarginX) / stepX
	tilesY := (textureHeight - 2*t.TileMarginY) / stepY

	var out []Vec2i
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			out = append(out, Vec2i{
				X: t.TileMarginX + tx*stepX,
				Y: t.TileMarginY + ty*stepY,
			})
		}
	}
	return out
}
