package ogmo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLevel(t *testing.T) {
	l, err := LoadLevel("testdata/levels/uno.json")
	require.NoError(t, err)

	assert.Equal(t, 32.0, l.Width)
	assert.Equal(t, 16.0, l.Height)
	assert.Equal(t, 0.0, l.OffsetX)
	require.Len(t, l.Layers, 4)

	// paint order from the file is preserved
	assert.Equal(t, "scenery", l.Layers[0].Name())
	assert.Equal(t, "actors", l.Layers[1].Name())
	assert.Equal(t, "collision", l.Layers[2].Name())
	assert.Equal(t, "tiles", l.Layers[3].Name())

	tiles, ok := l.Layer("tiles")
	require.True(t, ok)
	assert.Equal(t, "37408016", tiles.ExportID())
	_, ok = l.Layer("nope")
	assert.False(t, ok)
}

func TestLoadLevelValues(t *testing.T) {
	l, err := LoadLevel("testdata/levels/uno.json")
	require.NoError(t, err)
	require.Len(t, l.Values, 2)

	// the level file carries no type tags, so an enum choice reads back as a
	// plain string
	theme := l.Values[0]
	assert.Equal(t, "theme", theme.Name)
	assert.Equal(t, ValueString, theme.Kind())
	s, err := theme.Str()
	require.NoError(t, err)
	assert.Equal(t, "cave", s)

	darkness, ok := l.Values.Get("darkness")
	require.True(t, ok)
	assert.Equal(t, ValueFloat, darkness.Kind())
	f, err := darkness.Float()
	require.NoError(t, err)
	assert.Equal(t, 0.25, f)

	_, ok = l.Values.Get("missing")
	assert.False(t, ok)
}

func TestLoadLevelTileLayer(t *testing.T) {
	l, err := LoadLevel("testdata/levels/uno.json")
	require.NoError(t, err)

	layer, ok := l.Layer("tiles")
	require.True(t, ok)
	require.Equal(t, LayerTile, layer.Kind())
	assert.Equal(t, Vec2{X: 0, Y: 0}, layer.Offset())

	tile, err := layer.Tile()
	require.NoError(t, err)
	assert.Equal(t, "main", tile.Tileset)
	assert.Equal(t, 8, tile.GridCellWidth)
	assert.Equal(t, 4, tile.GridCellsX)

	flat, ok := tile.Data.Flat()
	require.True(t, ok)
	assert.Equal(t, []int{-1, -1, 3, -1, 0, 1, 2, 3}, flat)
	_, ok = tile.Data.Rows()
	assert.False(t, ok)

	expanded := tile.Tiles()
	require.Len(t, expanded, 8)
	assert.True(t, expanded[0].Empty())
	assert.Equal(t, 3, expanded[2].ID)
	assert.Equal(t, Vec2i{X: 2, Y: 0}, expanded[2].GridPosition)
	assert.Equal(t, Vec2i{X: 16, Y: 0}, expanded[2].PixelPosition)
	assert.Equal(t, Vec2i{X: 3, Y: 1}, expanded[7].GridPosition)

	// tile layers do not unpack as anything else
	_, err = layer.Entity()
	var unpackErr *UnpackError
	require.ErrorAs(t, err, &unpackErr)
	assert.Equal(t, "entity", unpackErr.Expected)
	assert.Equal(t, "tile", unpackErr.Actual)
}

func TestLoadLevelGridLayer(t *testing.T) {
	l, err := LoadLevel("testdata/levels/uno.json")
	require.NoError(t, err)

	layer, ok := l.Layer("collision")
	require.True(t, ok)
	grid, err := layer.Grid()
	require.NoError(t, err)

	rows, ok := grid.Data.Rows()
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "1", "2", "1"}, rows[1])

	cells := grid.Cells()
	require.Len(t, cells, 8)
	assert.Equal(t, "2", cells[6].Value)
	assert.Equal(t, Vec2i{X: 2, Y: 1}, cells[6].GridPosition)
	assert.Equal(t, Vec2i{X: 16, Y: 8}, cells[6].PixelPosition)
}

func TestLoadLevelEntityLayer(t *testing.T) {
	l, err := LoadLevel("testdata/levels/uno.json")
	require.NoError(t, err)

	layer, ok := l.Layer("actors")
	require.True(t, ok)
	entities, err := layer.Entity()
	require.NoError(t, err)
	require.Len(t, entities.Entities, 2)

	player := entities.Entities[0]
	assert.Equal(t, "player", player.Name)
	assert.Equal(t, 0, player.ID)
	assert.Equal(t, "37416854", player.ExportID)
	assert.Equal(t, 4.0, player.X)
	require.NotNil(t, player.OriginY)
	assert.Equal(t, 12.0, *player.OriginY)
	require.NotNil(t, player.FlippedX)
	assert.False(t, *player.FlippedX)
	assert.Nil(t, player.Width)
	assert.Nil(t, player.Nodes)
	health, ok := player.Values.Get("health")
	require.True(t, ok)
	n, err := health.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	spike := entities.Entities[1]
	require.NotNil(t, spike.Width)
	assert.Equal(t, 16.0, *spike.Width)
	assert.Nil(t, spike.Height)
	require.Len(t, spike.Nodes, 2)
	assert.Equal(t, Vec2{X: 24, Y: 0}, spike.Nodes[1])
	assert.Empty(t, spike.Values)
}

func TestLoadLevelDecalLayer(t *testing.T) {
	l, err := LoadLevel("testdata/levels/uno.json")
	require.NoError(t, err)

	layer, ok := l.Layer("scenery")
	require.True(t, ok)
	decals, err := layer.Decal()
	require.NoError(t, err)
	assert.Equal(t, "decals", decals.Folder)
	require.Len(t, decals.Decals, 1)

	bush := decals.Decals[0]
	assert.Equal(t, 12.0, bush.X)
	assert.Equal(t, "decals/bush.png", bush.Texture)
	require.NotNil(t, bush.ScaleX)
	assert.Equal(t, 1.0, *bush.ScaleX)
	assert.Nil(t, bush.Rotation)
}

func TestParseLevelTileCoords(t *testing.T) {
	l, err := ParseLevel([]byte(`{
		"width": 16, "height": 8, "offsetX": 0, "offsetY": 0,
		"layers": [{
			"name": "tiles", "_eid": "1",
			"offsetX": 0, "offsetY": 0,
			"gridCellWidth": 8, "gridCellHeight": 8,
			"gridCellsX": 2, "gridCellsY": 1,
			"tileset": "main",
			"dataCoords": [[-1], [1, 0]]
		}]
	}`))
	require.NoError(t, err)

	layer, err := l.Layers[0].TileCoords()
	require.NoError(t, err)
	cells, ok := layer.Data.Flat()
	require.True(t, ok)
	assert.Equal(t, [][]int{{-1}, {1, 0}}, cells)

	expanded := layer.Tiles()
	require.Len(t, expanded, 2)
	assert.Nil(t, expanded[0].Coords)
	require.NotNil(t, expanded[1].Coords)
	assert.Equal(t, Vec2i{X: 1, Y: 0}, *expanded[1].Coords)
	assert.Equal(t, Vec2i{X: 8, Y: 0}, *expanded[1].PixelCoords)
	assert.Equal(t, Vec2i{X: 1, Y: 0}, expanded[1].GridPosition)
}

func TestParseLevelLayerDiscrimination(t *testing.T) {
	header := `"name": "x", "_eid": "1", "offsetX": 0, "offsetY": 0,
		"gridCellWidth": 8, "gridCellHeight": 8, "gridCellsX": 1, "gridCellsY": 1`

	// no storage key at all
	_, err := ParseLevel([]byte(`{
		"width": 8, "height": 8, "offsetX": 0, "offsetY": 0,
		"layers": [{` + header + `}]
	}`))
	var unknownErr *UnknownVariantError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "layers[0]", unknownErr.Path)

	// two competing storage keys
	_, err = ParseLevel([]byte(`{
		"width": 8, "height": 8, "offsetX": 0, "offsetY": 0,
		"layers": [{` + header + `, "tileset": "main", "data": [], "entities": []}]
	}`))
	var ambiguousErr *AmbiguousVariantError
	require.ErrorAs(t, err, &ambiguousErr)
	assert.Equal(t, []string{"data", "entities"}, ambiguousErr.Matched)
}

func TestParseLevelErrors(t *testing.T) {
	_, err := ParseLevel([]byte(`{"width": `))
	var malformedErr *MalformedInputError
	require.ErrorAs(t, err, &malformedErr)

	_, err = ParseLevel([]byte(`{"width": "wide", "height": 8, "offsetX": 0, "offsetY": 0, "layers": []}`))
	var mismatchErr *TypeMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, "width", mismatchErr.Path)
	assert.Equal(t, "number", mismatchErr.Expected)
	assert.Equal(t, "string", mismatchErr.Actual)

	_, err = ParseLevel([]byte(`{"width": 8, "height": 8, "offsetX": 0, "offsetY": 0,
		"layers": [{
			"name": "x", "_eid": "1", "offsetX": 0, "offsetY": 0,
			"gridCellWidth": 8, "gridCellHeight": 8, "gridCellsX": 1,
			"tileset": "main", "data": [0]
		}]
	}`))
	var missingErr *MissingFieldError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "layers[0].gridCellsY", missingErr.Path)

	// non-empty flat storage cannot be addressed without a positive column
	// count
	_, err = ParseLevel([]byte(`{"width": 8, "height": 8, "offsetX": 0, "offsetY": 0,
		"layers": [{
			"name": "x", "_eid": "1", "offsetX": 0, "offsetY": 0,
			"gridCellWidth": 8, "gridCellHeight": 8, "gridCellsX": 0, "gridCellsY": 0,
			"tileset": "main", "data": [0, 1]
		}]
	}`))
	var rangeErr *NumericRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "layers[0].gridCellsX", rangeErr.Path)
	assert.Equal(t, "0", rangeErr.Value)

	// tile IDs must be whole numbers
	_, err = ParseLevel([]byte(`{"width": 8, "height": 8, "offsetX": 0, "offsetY": 0,
		"layers": [{
			"name": "x", "_eid": "1", "offsetX": 0, "offsetY": 0,
			"gridCellWidth": 8, "gridCellHeight": 8, "gridCellsX": 2, "gridCellsY": 1,
			"tileset": "main", "data": [0, 1.5]
		}]
	}`))
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, "layers[0].data[1]", mismatchErr.Path)
	assert.Equal(t, "integer", mismatchErr.Expected)
	assert.Equal(t, "float", mismatchErr.Actual)
}
