package ogmo

import (
	"encoding/json"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertSameJSON compares two JSON documents structurally, ignoring key order
// and formatting
func assertSameJSON(t *testing.T, want, got []byte) {
	t.Helper()
	var w, g any
	require.NoError(t, json.Unmarshal(want, &w))
	require.NoError(t, json.Unmarshal(got, &g))
	assert.Equal(t, w, g)
}

func TestProjectRoundTrip(t *testing.T) {
	src, err := os.ReadFile("testdata/test.ogmo")
	require.NoError(t, err)

	p, err := ParseProject(src)
	require.NoError(t, err)

	out, err := EncodeProject(p)
	require.NoError(t, err)
	assertSameJSON(t, src, out)

	again, err := ParseProject(out)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestLevelRoundTrip(t *testing.T) {
	src, err := os.ReadFile("testdata/levels/uno.json")
	require.NoError(t, err)

	l, err := ParseLevel(src)
	require.NoError(t, err)

	out, err := EncodeLevel(l)
	require.NoError(t, err)
	assertSameJSON(t, src, out)

	again, err := ParseLevel(out)
	require.NoError(t, err)
	assert.Equal(t, l, again)
}

func TestNumericLiteralFidelity(t *testing.T) {
	l, err := ParseLevel([]byte(`{
		"width": 8, "height": 8, "offsetX": 0, "offsetY": 0,
		"layers": [],
		"values": {"count": 5, "ratio": 5.0}
	}`))
	require.NoError(t, err)

	count, ok := l.Values.Get("count")
	require.True(t, ok)
	assert.Equal(t, ValueInteger, count.Kind())
	ratio, ok := l.Values.Get("ratio")
	require.True(t, ok)
	assert.Equal(t, ValueFloat, ratio.Kind())

	// the source literals' shapes survive the trip out
	out, err := EncodeLevel(l)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"count": 5`)
	assert.Contains(t, string(out), `"ratio": 5.0`)
}

func TestValuesOrderPreserved(t *testing.T) {
	l, err := ParseLevel([]byte(`{
		"width": 8, "height": 8, "offsetX": 0, "offsetY": 0,
		"layers": [],
		"values": {"zeta": 1, "alpha": 2, "mid": 3}
	}`))
	require.NoError(t, err)

	require.Len(t, l.Values, 3)
	assert.Equal(t, "zeta", l.Values[0].Name)
	assert.Equal(t, "alpha", l.Values[1].Name)
	assert.Equal(t, "mid", l.Values[2].Name)

	out, err := EncodeLevel(l)
	require.NoError(t, err)
	again, err := ParseLevel(out)
	require.NoError(t, err)
	assert.Equal(t, l.Values, again.Values)
}

func Test2DTileStorageRoundTrip(t *testing.T) {
	src := []byte(`{
		"width": 16, "height": 16, "offsetX": 0, "offsetY": 0,
		"layers": [
			{
				"name": "tiles", "_eid": "1",
				"offsetX": 0, "offsetY": 0,
				"gridCellWidth": 8, "gridCellHeight": 8,
				"gridCellsX": 2, "gridCellsY": 2,
				"tileset": "main",
				"data2D": [[0, 1], [-1, 3]]
			},
			{
				"name": "overlay", "_eid": "2",
				"offsetX": 0, "offsetY": 0,
				"gridCellWidth": 8, "gridCellHeight": 8,
				"gridCellsX": 2, "gridCellsY": 1,
				"tileset": "main",
				"dataCoords2D": [[[-1], [1, 0]]]
			}
		]
	}`)
	l, err := ParseLevel(src)
	require.NoError(t, err)

	tile, err := l.Layers[0].Tile()
	require.NoError(t, err)
	rows, ok := tile.Data.Rows()
	require.True(t, ok)
	assert.Equal(t, [][]int{{0, 1}, {-1, 3}}, rows)
	_, ok = tile.Data.Flat()
	assert.False(t, ok)
	expanded := tile.Tiles()
	require.Len(t, expanded, 4)
	assert.Equal(t, 3, expanded[3].ID)
	assert.Equal(t, Vec2i{X: 1, Y: 1}, expanded[3].GridPosition)
	assert.Equal(t, Vec2i{X: 8, Y: 8}, expanded[3].PixelPosition)

	coords, err := l.Layers[1].TileCoords()
	require.NoError(t, err)
	coordRows, ok := coords.Data.Rows()
	require.True(t, ok)
	assert.Equal(t, [][][]int{{{-1}, {1, 0}}}, coordRows)

	// the 2D wire form survives re-encoding
	out, err := EncodeLevel(l)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"data2D"`)
	assert.NotContains(t, string(out), `"data"`)
	assert.Contains(t, string(out), `"dataCoords2D"`)
	assert.NotContains(t, string(out), `"dataCoords"`)
	assertSameJSON(t, src, out)

	again, err := ParseLevel(out)
	require.NoError(t, err)
	assert.Equal(t, l, again)
}

func TestEmptyTileDataSurvives(t *testing.T) {
	l, err := ParseLevel([]byte(`{
		"width": 8, "height": 8, "offsetX": 0, "offsetY": 0,
		"layers": [{
			"name": "tiles", "_eid": "1",
			"offsetX": 0, "offsetY": 0,
			"gridCellWidth": 8, "gridCellHeight": 8,
			"gridCellsX": 0, "gridCellsY": 0,
			"tileset": "main",
			"data": []
		}]
	}`))
	require.NoError(t, err)

	tile, err := l.Layers[0].Tile()
	require.NoError(t, err)
	flat, ok := tile.Data.Flat()
	require.True(t, ok)
	assert.Empty(t, flat)

	out, err := EncodeLevel(l)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"data": []`)
	assert.NotContains(t, string(out), `"data2D"`)
}

func TestEmptyValuesOmitted(t *testing.T) {
	l, err := ParseLevel([]byte(`{
		"width": 8, "height": 8, "offsetX": 0, "offsetY": 0,
		"layers": [],
		"values": {}
	}`))
	require.NoError(t, err)
	assert.Empty(t, l.Values)

	out, err := EncodeLevel(l)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"values"`)
	assert.Contains(t, string(out), `"layers": []`)
}

func TestEncodeNonFiniteFloat(t *testing.T) {
	l := &Level{
		Width: 8, Height: 8,
		Values: Values{FloatValue("bad", math.NaN())},
	}
	_, err := EncodeLevel(l)
	var rangeErr *NumericRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "bad", rangeErr.Path)
}

func TestBuildEncodeParse(t *testing.T) {
	project := &Project{
		Name:        "minimal",
		OgmoVersion: "3.3.0",
		Layers: []LayerTemplate{{
			Name:     "tiles",
			ExportID: "1",
			GridSize: Vec2i{X: 8, Y: 8},
			Data:     TileDef{DefaultTileset: "main"},
		}},
		Tilesets: []Tileset{{Label: "main", Path: "main.png", TileWidth: 8, TileHeight: 8}},
	}
	encodedProject, err := EncodeProject(project)
	require.NoError(t, err)
	parsedProject, err := ParseProject(encodedProject)
	require.NoError(t, err)
	require.Len(t, parsedProject.Layers, 1)
	assert.Equal(t, LayerTile, parsedProject.Layers[0].Kind())

	tiles := TileLayer{
		Name:           "tiles",
		ExportID:       "1",
		GridCellWidth:  8,
		GridCellHeight: 8,
		GridCellsX:     2,
		GridCellsY:     1,
		Tileset:        "main",
		Data:           TileData1D([]int{3, 3}),
	}
	built := &Level{Width: 16, Height: 8, Layers: []Layer{tiles.AsLayer()}}

	out, err := EncodeLevel(built)
	require.NoError(t, err)

	parsed, err := ParseLevel(out)
	require.NoError(t, err)
	assert.Equal(t, built, parsed)

	tile, err := parsed.Layers[0].Tile()
	require.NoError(t, err)
	expanded := tile.Tiles()
	require.Len(t, expanded, 2)
	assert.Equal(t, Vec2i{X: 0, Y: 0}, expanded[0].GridPosition)
	assert.Equal(t, Vec2i{X: 1, Y: 0}, expanded[1].GridPosition)
	assert.Equal(t, Vec2i{X: 8, Y: 0}, expanded[1].PixelPosition)
	assert.Equal(t, 3, expanded[1].ID)
}
