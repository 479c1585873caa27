package main

import (
	"bytes"
	"encoding/base64"
	"flag"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/ogmo"
)

// Colors for layers without textures
var (
	colorGridCell = color.RGBA{200, 50, 50, 160}
	colorEntity   = color.RGBA{100, 200, 100, 255}
	colorDecal    = color.RGBA{200, 200, 100, 255}
	colorMissing  = color.RGBA{255, 0, 255, 255}
)

// tilesetSheet is one tileset image sliced into per-cell sprites
type tilesetSheet struct {
	image *ebiten.Image
	tiles []*ebiten.Image
}

// Viewer implements ebiten.Game, rendering one level's layers in paint order
type Viewer struct {
	project *ogmo.Project
	level   *ogmo.Level
	sheets  map[string]*tilesetSheet
	colors  map[string]color.RGBA // entity template name to editor color
	screenW int
	screenH int
}

// NewViewer builds a viewer for the given project and level
func NewViewer(project *ogmo.Project, level *ogmo.Level, projectDir string) *Viewer {
	v := &Viewer{
		project: project,
		level:   level,
		sheets:  make(map[string]*tilesetSheet),
		colors:  make(map[string]color.RGBA),
		screenW: int(level.Width),
		screenH: int(level.Height),
	}

	for _, ts := range project.Tilesets {
		sheet, err := loadTileset(ts, projectDir)
		if err != nil {
			log.Printf("Skipping tileset %q: %v", ts.Label, err)
			continue
		}
		v.sheets[ts.Label] = sheet
	}

	for _, et := range project.Entities {
		v.colors[et.Name] = color.RGBA{et.Color.R, et.Color.G, et.Color.B, et.Color.A}
	}

	return v
}

// loadTileset reads the tileset texture from disk, falling back to the
// base64 copy embedded in the project file, and slices it into cells
func loadTileset(ts ogmo.Tileset, projectDir string) (*tilesetSheet, error) {
	img, err := loadTexture(ts, projectDir)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	coords := ts.TileCoords(bounds.Dx(), bounds.Dy())
	sheet := &tilesetSheet{image: img, tiles: make([]*ebiten.Image, 0, len(coords))}
	for _, c := range coords {
		rect := image.Rect(c.X, c.Y, c.X+ts.TileWidth, c.Y+ts.TileHeight)
		sheet.tiles = append(sheet.tiles, img.SubImage(rect).(*ebiten.Image))
	}
	return sheet, nil
}

func loadTexture(ts ogmo.Tileset, projectDir string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(filepath.Join(projectDir, ts.Path))
	if err == nil {
		return img, nil
	}

	encoded, ok := strings.CutPrefix(ts.Image, "data:image/png;base64,")
	if !ok {
		return nil, err
	}
	raw, decErr := base64.StdEncoding.DecodeString(encoded)
	if decErr != nil {
		return nil, decErr
	}
	decoded, _, decErr := image.Decode(bytes.NewReader(raw))
	if decErr != nil {
		return nil, decErr
	}
	return ebiten.NewImageFromImage(decoded), nil
}

// Update handles input
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the level's layers bottom to top
func (v *Viewer) Draw(screen *ebiten.Image) {
	c := v.project.BackgroundColor
	screen.Fill(color.RGBA{c.R, c.G, c.B, 255})

	for _, layer := range v.level.Layers {
		switch layer.Kind() {
		case ogmo.LayerTile:
			v.drawTileLayer(screen, layer)
		case ogmo.LayerTileCoords:
			v.drawTileCoordsLayer(screen, layer)
		case ogmo.LayerGrid:
			v.drawGridLayer(screen, layer)
		case ogmo.LayerEntity:
			v.drawEntityLayer(screen, layer)
		case ogmo.LayerDecal:
			v.drawDecalLayer(screen, layer)
		}
	}
}

func (v *Viewer) drawTileLayer(screen *ebiten.Image, layer ogmo.Layer) {
	t, err := layer.Tile()
	if err != nil {
		return
	}
	offset := layer.Offset()
	sheet := v.sheets[t.Tileset]

	for _, tile := range t.Tiles() {
		if tile.Empty() {
			continue
		}
		x := offset.X + float64(tile.PixelPosition.X)
		y := offset.Y + float64(tile.PixelPosition.Y)

		if sheet == nil || tile.ID >= len(sheet.tiles) {
			ebitenutil.DrawRect(screen, x, y, float64(t.GridCellWidth), float64(t.GridCellHeight), colorMissing)
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(sheet.tiles[tile.ID], op)
	}
}

func (v *Viewer) drawTileCoordsLayer(screen *ebiten.Image, layer ogmo.Layer) {
	t, err := layer.TileCoords()
	if err != nil {
		return
	}
	offset := layer.Offset()
	sheet := v.sheets[t.Tileset]

	for _, tile := range t.Tiles() {
		if tile.PixelCoords == nil {
			continue
		}
		x := offset.X + float64(tile.PixelPosition.X)
		y := offset.Y + float64(tile.PixelPosition.Y)

		if sheet == nil {
			ebitenutil.DrawRect(screen, x, y, float64(t.GridCellWidth), float64(t.GridCellHeight), colorMissing)
			continue
		}
		rect := image.Rect(tile.PixelCoords.X, tile.PixelCoords.Y,
			tile.PixelCoords.X+t.GridCellWidth, tile.PixelCoords.Y+t.GridCellHeight)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(sheet.image.SubImage(rect).(*ebiten.Image), op)
	}
}

func (v *Viewer) drawGridLayer(screen *ebiten.Image, layer ogmo.Layer) {
	g, err := layer.Grid()
	if err != nil {
		return
	}
	offset := layer.Offset()

	for _, cell := range g.Cells() {
		if cell.Value == "0" || cell.Value == "" {
			continue
		}
		x := offset.X + float64(cell.PixelPosition.X)
		y := offset.Y + float64(cell.PixelPosition.Y)
		ebitenutil.DrawRect(screen, x, y, float64(g.GridCellWidth), float64(g.GridCellHeight), colorGridCell)
	}
}

func (v *Viewer) drawEntityLayer(screen *ebiten.Image, layer ogmo.Layer) {
	e, err := layer.Entity()
	if err != nil {
		return
	}
	offset := layer.Offset()

	for _, entity := range e.Entities {
		w, h := 8.0, 8.0
		if entity.Width != nil {
			w = *entity.Width
		}
		if entity.Height != nil {
			h = *entity.Height
		}

		c := colorEntity
		if ec, ok := v.colors[entity.Name]; ok {
			c = ec
		}
		ebitenutil.DrawRect(screen, offset.X+entity.X, offset.Y+entity.Y, w, h, c)

		for _, node := range entity.Nodes {
			ebitenutil.DrawRect(screen, offset.X+node.X-1, offset.Y+node.Y-1, 2, 2, c)
		}
	}
}

func (v *Viewer) drawDecalLayer(screen *ebiten.Image, layer ogmo.Layer) {
	d, err := layer.Decal()
	if err != nil {
		return
	}
	offset := layer.Offset()

	for _, decal := range d.Decals {
		ebitenutil.DrawRect(screen, offset.X+decal.X-2, offset.Y+decal.Y-2, 4, 4, colorDecal)
	}
}

// Layout returns the level's dimensions
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.screenW, v.screenH
}

func main() {
	projectFlag := flag.String("project", "", "Path to the .ogmo project file")
	levelFlag := flag.String("level", "", "Path to the level .json file")
	scaleFlag := flag.Int("scale", 2, "Window scale factor")
	flag.Parse()

	if *projectFlag == "" || *levelFlag == "" {
		log.Fatal("Usage: levelviewer -project game.ogmo -level levels/level.json")
	}

	project, err := ogmo.LoadProject(*projectFlag)
	if err != nil {
		log.Fatalf("Failed to load project: %v", err)
	}
	level, err := ogmo.LoadLevel(*levelFlag)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	viewer := NewViewer(project, level, filepath.Dir(*projectFlag))

	scale := *scaleFlag
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(viewer.screenW*scale, viewer.screenH*scale)
	ebiten.SetWindowTitle(project.Name)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
