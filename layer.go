package ogmo

import "encoding/json"

// Layer is one layer instance inside a level. It is a tagged union over the
// five layer kinds; which variant an object holds is decided at decode time
// from the storage key present on it (data/data2D, dataCoords/dataCoords2D,
// grid/grid2D, entities, decals). Build instances with the variant structs'
// AsLayer methods and read them back with the typed accessors.
type Layer struct {
	kind       LayerKind
	tile       *TileLayer
	tileCoords *TileCoordsLayer
	grid       *GridLayer
	entity     *EntityLayer
	decal      *DecalLayer
}

// Kind reports which variant the layer holds
func (l Layer) Kind() LayerKind {
	return l.kind
}

// Name returns the layer's name, common to all variants
func (l Layer) Name() string {
	switch l.kind {
	case LayerTile:
		return l.tile.Name
	case LayerTileCoords:
		return l.tileCoords.Name
	case LayerGrid:
		return l.grid.Name
	case LayerEntity:
		return l.entity.Name
	case LayerDecal:
		return l.decal.Name
	}
	return ""
}

// ExportID returns the layer's unique export ID, common to all variants
func (l Layer) ExportID() string {
	switch l.kind {
	case LayerTile:
		return l.tile.ExportID
	case LayerTileCoords:
		return l.tileCoords.ExportID
	case LayerGrid:
		return l.grid.ExportID
	case LayerEntity:
		return l.entity.ExportID
	case LayerDecal:
		return l.decal.ExportID
	}
	return ""
}

// Offset returns the layer's pixel offset, common to all variants
func (l Layer) Offset() Vec2 {
	switch l.kind {
	case LayerTile:
		return Vec2{X: l.tile.OffsetX, Y: l.tile.OffsetY}
	case LayerTileCoords:
		return Vec2{X: l.tileCoords.OffsetX, Y: l.tileCoords.OffsetY}
	case LayerGrid:
		return Vec2{X: l.grid.OffsetX, Y: l.grid.OffsetY}
	case LayerEntity:
		return Vec2{X: l.entity.OffsetX, Y: l.entity.OffsetY}
	case LayerDecal:
		return Vec2{X: l.decal.OffsetX, Y: l.decal.OffsetY}
	}
	return Vec2{}
}

// Values returns the layer's custom values, common to all variants
func (l Layer) Values() Values {
	switch l.kind {
	case LayerTile:
		return l.tile.Values
	case LayerTileCoords:
		return l.tileCoords.Values
	case LayerGrid:
		return l.grid.Values
	case LayerEntity:
		return l.entity.Values
	case LayerDecal:
		return l.decal.Values
	}
	return nil
}

// Tile unpacks a tile layer
func (l Layer) Tile() (*TileLayer, error) {
	if l.kind != LayerTile {
		return nil, &UnpackError{Expected: string(LayerTile), Actual: string(l.kind)}
	}
	return l.tile, nil
}

// TileCoords unpacks a tile co-ordinates layer
func (l Layer) TileCoords() (*TileCoordsLayer, error) {
	if l.kind != LayerTileCoords {
		return nil, &UnpackError{Expected: string(LayerTileCoords), Actual: string(l.kind)}
	}
	return l.tileCoords, nil
}

// Grid unpacks a grid layer
func (l Layer) Grid() (*GridLayer, error) {
	if l.kind != LayerGrid {
		return nil, &UnpackError{Expected: string(LayerGrid), Actual: string(l.kind)}
	}
	return l.grid, nil
}

// Entity unpacks an entity layer
func (l Layer) Entity() (*EntityLayer, error) {
	if l.kind != LayerEntity {
		return nil, &UnpackError{Expected: string(LayerEntity), Actual: string(l.kind)}
	}
	return l.entity, nil
}

// Decal unpacks a decal layer
func (l Layer) Decal() (*DecalLayer, error) {
	if l.kind != LayerDecal {
		return nil, &UnpackError{Expected: string(LayerDecal), Actual: string(l.kind)}
	}
	return l.decal, nil
}

// TileData is a tile layer's packed cell data in one of its two wire forms:
// a flat array ("data") or rows ("data2D"). Empty cells are -1.
type TileData struct {
	flat []int
	rows [][]int
}

// TileData1D builds flat tile data
func TileData1D(cells []int) TileData {
	if cells == nil {
		cells = []int{}
	}
	return TileData{flat: cells}
}

// TileData2D builds row-major tile data
func TileData2D(rows [][]int) TileData {
	if rows == nil {
		rows = [][]int{}
	}
	return TileData{rows: rows}
}

// Flat returns the 1D form, if that is how the data is stored
func (d TileData) Flat() ([]int, bool) {
	return d.flat, d.rows == nil
}

// Rows returns the 2D form, if that is how the data is stored
func (d TileData) Rows() ([][]int, bool) {
	return d.rows, d.rows != nil
}

// TileCoordsData is a tile co-ordinates layer's packed cell data. Each cell
// is an [x, y] pair of tileset cell co-ordinates; empty cells are [-1].
type TileCoordsData struct {
	flat [][]int
	rows [][][]int
}

// TileCoordsData1D builds flat co-ordinate data
func TileCoordsData1D(cells [][]int) TileCoordsData {
	if cells == nil {
		cells = [][]int{}
	}
	return TileCoordsData{flat: cells}
}

// TileCoordsData2D builds row-major co-ordinate data
func TileCoordsData2D(rows [][][]int) TileCoordsData {
	if rows == nil {
		rows = [][][]int{}
	}
	return TileCoordsData{rows: rows}
}

// Flat returns the 1D form, if that is how the data is stored
func (d TileCoordsData) Flat() ([][]int, bool) {
	return d.flat, d.rows == nil
}

// Rows returns the 2D form, if that is how the data is stored
func (d TileCoordsData) Rows() ([][][]int, bool) {
	return d.rows, d.rows != nil
}

// GridData is a grid layer's packed cell data. By default "0" means empty,
// but the legend is customizable in the editor.
type GridData struct {
	flat []string
	rows [][]string
}

// GridData1D builds flat grid data
func GridData1D(cells []string) GridData {
	if cells == nil {
		cells = []string{}
	}
	return GridData{flat: cells}
}

// GridData2D builds row-major grid data
func GridData2D(rows [][]string) GridData {
	if rows == nil {
		rows = [][]string{}
	}
	return GridData{rows: rows}
}

// Flat returns the 1D form, if that is how the data is stored
func (d GridData) Flat() ([]string, bool) {
	return d.flat, d.rows == nil
}

// Rows returns the 2D form, if that is how the data is stored
func (d GridData) Rows() ([][]string, bool) {
	return d.rows, d.rows != nil
}

// TileLayer is a layer of tiles addressed by tileset cell index
type TileLayer struct {
	Name           string
	ExportID       string
	OffsetX        float64
	OffsetY        float64
	GridCellWidth  int
	GridCellHeight int
	GridCellsX     int
	GridCellsY     int
	Tileset        string // name of the tileset used for this layer
	Data           TileData
	Values         Values
}

// AsLayer wraps the tile layer in the Layer union
func (t TileLayer) AsLayer() Layer {
	return Layer{kind: LayerTile, tile: &t}
}

// Tile is one cell expanded from a TileLayer's packed data
type Tile struct {
	ID            int // tileset cell index; -1 when the cell is empty
	GridPosition  Vec2i
	PixelPosition Vec2i
}

// Empty reports whether the cell holds no tile
func (t Tile) Empty() bool {
	return t.ID < 0
}

// Tiles expands the packed data into one record per cell, with grid and
// pixel positions computed from the layer's cell size
func (t *TileLayer) Tiles() []Tile {
	if rows, ok := t.Data.Rows(); ok {
		var out []Tile
		for y, row := range rows {
			for x, id := range row {
				out = append(out, Tile{
					ID:            id,
					GridPosition:  Vec2i{X: x, Y: y},
					PixelPosition: Vec2i{X: x * t.GridCellWidth, Y: y * t.GridCellHeight},
				})
			}
		}
		return out
	}
	flat, _ := t.Data.Flat()
	if len(flat) > 0 && t.GridCellsX <= 0 {
		return nil
	}
	out := make([]Tile, 0, len(flat))
	for i, id := range flat {
		x := i % t.GridCellsX
		y := i / t.GridCellsX
		out = append(out, Tile{
			ID:            id,
			GridPosition:  Vec2i{X: x, Y: y},
			PixelPosition: Vec2i{X: x * t.GridCellWidth, Y: y * t.GridCellHeight},
		})
	}
	return out
}

// TileCoordsLayer is a layer of tiles addressed by tileset co-ordinates
type TileCoordsLayer struct {
	Name           string
	ExportID       string
	OffsetX        float64
	OffsetY        float64
	GridCellWidth  int
	GridCellHeight int
	GridCellsX     int
	GridCellsY     int
	Tileset        string
	Data           TileCoordsData
	Values         Values
}

// AsLayer wraps the tile co-ordinates layer in the Layer union
func (t TileCoordsLayer) AsLayer() Layer {
	return Layer{kind: LayerTileCoords, tileCoords: &t}
}

// CoordTile is one cell expanded from a TileCoordsLayer's packed data
type CoordTile struct {
	Coords        *Vec2i // position of the tile in the tileset, in cells; nil when empty
	PixelCoords   *Vec2i // position of the tile in the tileset, in pixels; nil when empty
	GridPosition  Vec2i
	PixelPosition Vec2i
}

func (t *TileCoordsLayer) coordTile(cell []int, x, y int) CoordTile {
	out := CoordTile{
		GridPosition:  Vec2i{X: x, Y: y},
		PixelPosition: Vec2i{X: x * t.GridCellWidth, Y: y * t.GridCellHeight},
	}
	if len(cell) >= 2 && cell[0] >= 0 {
		out.Coords = &Vec2i{X: cell[0], Y: cell[1]}
		out.PixelCoords = &Vec2i{X: cell[0] * t.GridCellWidth, Y: cell[1] * t.GridCellHeight}
	}
	return out
}

// Tiles expands the packed data into one record per cell
func (t *TileCoordsLayer) Tiles() []CoordTile {
	if rows, ok := t.Data.Rows(); ok {
		var out []CoordTile
		for y, row := range rows {
			for x, cell := range row {
				out = append(out, t.coordTile(cell, x, y))
			}
		}
		return out
	}
	flat, _ := t.Data.Flat()
	if len(flat) > 0 && t.GridCellsX <= 0 {
		return nil
	}
	out := make([]CoordTile, 0, len(flat))
	for i, cell := range flat {
		out = append(out, t.coordTile(cell, i%t.GridCellsX, i/t.GridCellsX))
	}
	return out
}

// GridLayer is a layer of free-form string cells
type GridLayer struct {
	Name           string
	ExportID       string
	OffsetX        float64
	OffsetY        float64
	GridCellWidth  int
	GridCellHeight int
	GridCellsX     int
	GridCellsY     int
	Data           GridData
	Values         Values
}

// AsLayer wraps the grid layer in the Layer union
func (g GridLayer) AsLayer() Layer {
	return Layer{kind: LayerGrid, grid: &g}
}

// GridCell is one cell expanded from a GridLayer's packed data
type GridCell struct {
	Value         string
	GridPosition  Vec2i
	PixelPosition Vec2i
}

// Cells expands the packed data into one record per cell
func (g *GridLayer) Cells() []GridCell {
	if rows, ok := g.Data.Rows(); ok {
		var out []GridCell
		for y, row := range rows {
			for x, v := range row {
				out = append(out, GridCell{
					Value:         v,
					GridPosition:  Vec2i{X: x, Y: y},
					PixelPosition: Vec2i{X: x * g.GridCellWidth, Y: y * g.GridCellHeight},
				})
			}
		}
		return out
	}
	flat, _ := g.Data.Flat()
	if len(flat) > 0 && g.GridCellsX <= 0 {
		return nil
	}
	out := make([]GridCell, 0, len(flat))
	for i, v := range flat {
		x := i % g.GridCellsX
		y := i / g.GridCellsX
		out = append(out, GridCell{
			Value:         v,
			GridPosition:  Vec2i{X: x, Y: y},
			PixelPosition: Vec2i{X: x * g.GridCellWidth, Y: y * g.GridCellHeight},
		})
	}
	return out
}

// EntityLayer is a layer of entity instances
type EntityLayer struct {
	Name           string
	ExportID       string
	OffsetX        float64
	OffsetY        float64
	GridCellWidth  int
	GridCellHeight int
	GridCellsX     int
	GridCellsY     int
	Entities       []Entity
	Values         Values
}

// AsLayer wraps the entity layer in the Layer union
func (e EntityLayer) AsLayer() Layer {
	return Layer{kind: LayerEntity, entity: &e}
}

// DecalLayer is a layer of decal instances
type DecalLayer struct {
	Name           string
	ExportID       string
	OffsetX        float64
	OffsetY        float64
	GridCellWidth  int
	GridCellHeight int
	GridCellsX     int
	GridCellsY     int
	Folder         string // path containing the decal images, relative to the project
	Decals         []Decal
	Values         Values
}

// AsLayer wraps the decal layer in the Layer union
func (d DecalLayer) AsLayer() Layer {
	return Layer{kind: LayerDecal, decal: &d}
}

// Entity is one placed entity instance. The optional fields are present only
// when the entity's template enables them; pointers keep that presence
// through a round trip.
type Entity struct {
	Name     string   `json:"name"`
	ID       int      `json:"id"`
	ExportID string   `json:"_eid"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	OriginX  *float64 `json:"originX,omitempty"`
	OriginY  *float64 `json:"originY,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	FlippedX *bool    `json:"flippedX,omitempty"`
	FlippedY *bool    `json:"flippedY,omitempty"`
	Nodes    []Vec2   `json:"nodes,omitempty"`
	Values   Values   `json:"values,omitempty"`
}

// Decal is one placed decal instance
type Decal struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Texture  string   `json:"texture"`
	Rotation *float64 `json:"rotation,omitempty"`
	ScaleX   *float64 `json:"scaleX,omitempty"`
	ScaleY   *float64 `json:"scaleY,omitempty"`
	Values   Values   `json:"values,omitempty"`
}

// layerHeader is the wire form of the fields every layer variant carries
type layerHeader struct {
	Name           string  `json:"name"`
	ExportID       string  `json:"_eid"`
	OffsetX        float64 `json:"offsetX"`
	OffsetY        float64 `json:"offsetY"`
	GridCellWidth  int     `json:"gridCellWidth"`
	GridCellHeight int     `json:"gridCellHeight"`
	GridCellsX     int     `json:"gridCellsX"`
	GridCellsY     int     `json:"gridCellsY"`
}

// MarshalJSON encodes the layer with the storage key its variant implies
func (l Layer) MarshalJSON() ([]byte, error) {
	switch l.kind {
	case LayerTile:
		t := l.tile
		w := struct {
			layerHeader
			Tileset string          `json:"tileset"`
			Data    json.RawMessage `json:"data,omitempty"`
			Data2D  json.RawMessage `json:"data2D,omitempty"`
			Values  Values          `json:"values,omitempty"`
		}{layerHeader: tileHeader(t), Tileset: t.Tileset, Values: t.Values}
		if rows, ok := t.Data.Rows(); ok {
			raw, err := json.Marshal(rows)
			if err != nil {
				return nil, err
			}
			w.Data2D = raw
		} else {
			flat, _ := t.Data.Flat()
			if flat == nil {
				flat = []int{}
			}
			raw, err := json.Marshal(flat)
			if err != nil {
				return nil, err
			}
			w.Data = raw
		}
		return json.Marshal(w)

	case LayerTileCoords:
		t := l.tileCoords
		w := struct {
			layerHeader
			Tileset      string          `json:"tileset"`
			DataCoords   json.RawMessage `json:"dataCoords,omitempty"`
			DataCoords2D json.RawMessage `json:"dataCoords2D,omitempty"`
			Values       Values          `json:"values,omitempty"`
		}{layerHeader: tileCoordsHeader(t), Tileset: t.Tileset, Values: t.Values}
		if rows, ok := t.Data.Rows(); ok {
			raw, err := json.Marshal(rows)
			if err != nil {
				return nil, err
			}
			w.DataCoords2D = raw
		} else {
			flat, _ := t.Data.Flat()
			if flat == nil {
				flat = [][]int{}
			}
			raw, err := json.Marshal(flat)
			if err != nil {
				return nil, err
			}
			w.DataCoords = raw
		}
		return json.Marshal(w)

	case LayerGrid:
		g := l.grid
		w := struct {
			layerHeader
			Grid   json.RawMessage `json:"grid,omitempty"`
			Grid2D json.RawMessage `json:"grid2D,omitempty"`
			Values Values          `json:"values,omitempty"`
		}{layerHeader: gridHeader(g), Values: g.Values}
		if rows, ok := g.Data.Rows(); ok {
			raw, err := json.Marshal(rows)
			if err != nil {
				return nil, err
			}
			w.Grid2D = raw
		} else {
			flat, _ := g.Data.Flat()
			if flat == nil {
				flat = []string{}
			}
			raw, err := json.Marshal(flat)
			if err != nil {
				return nil, err
			}
			w.Grid = raw
		}
		return json.Marshal(w)

	case LayerEntity:
		e := l.entity
		entities := e.Entities
		if entities == nil {
			entities = []Entity{}
		}
		return json.Marshal(struct {
			layerHeader
			Entities []Entity `json:"entities"`
			Values   Values   `json:"values,omitempty"`
		}{entityHeader(e), entities, e.Values})

	case LayerDecal:
		d := l.decal
		decals := d.Decals
		if decals == nil {
			decals = []Decal{}
		}
		return json.Marshal(struct {
			layerHeader
			Folder string  `json:"folder"`
			Decals []Decal `json:"decals"`
			Values Values  `json:"values,omitempty"`
		}{decalHeader(d), d.Folder, decals, d.Values})
	}
	return nil, &UnpackError{Expected: "layer", Actual: "empty"}
}

func tileHeader(t *TileLayer) layerHeader {
	return layerHeader{t.Name, t.ExportID, t.OffsetX, t.OffsetY, t.GridCellWidth, t.GridCellHeight, t.GridCellsX, t.GridCellsY}
}

func tileCoordsHeader(t *TileCoordsLayer) layerHeader {
	return layerHeader{t.Name, t.ExportID, t.OffsetX, t.OffsetY, t.GridCellWidth, t.GridCellHeight, t.GridCellsX, t.GridCellsY}
}

func gridHeader(g *GridLayer) layerHeader {
	return layerHeader{g.Name, g.ExportID, g.OffsetX, g.OffsetY, g.GridCellWidth, g.GridCellHeight, g.GridCellsX, g.GridCellsY}
}

func entityHeader(e *EntityLayer) layerHeader {
	return layerHeader{e.Name, e.ExportID, e.OffsetX, e.OffsetY, e.GridCellWidth, e.GridCellHeight, e.GridCellsX, e.GridCellsY}
}

func decalHeader(d *DecalLayer) layerHeader {
	return layerHeader{d.Name, d.ExportID, d.OffsetX, d.OffsetY, d.GridCellWidth, d.GridCellHeight, d.GridCellsX, d.GridCellsY}
}
