package world

import (
	"errors"
	"fmt"
)

// Map layers, in draw order.
const (
	LayerGround     = 0 // collidable terrain, drawn first
	LayerDecoration = 1 // never collidable, drawn below entities
	LayerOverhead   = 2 // collidable, drawn above entities (trees)
	LayerCount      = 3
)

// EmptyTile marks a cell with no tile.
const EmptyTile = -1

// collidableLayers are the layers the resolver checks.
var collidableLayers = [...]int{LayerGround, LayerOverhead}

var (
	// ErrMapDimensions is returned for empty, ragged or truncated maps.
	ErrMapDimensions = errors.New("world: malformed map dimensions")
	// ErrUnknownTile is returned when a cell names a tile the catalog lacks.
	ErrUnknownTile = errors.New("world: unknown tile index")
)

// Grid is a fixed-size layered tile map. Cells hold catalog indices or a
// negative value for "no tile". It is written only while loading.
type Grid struct {
	cols  int
	rows  int
	cells [LayerCount][]int
}

// NewGrid allocates a cols x rows grid with every cell empty.
func NewGrid(cols, rows int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrMapDimensions, cols, rows)
	}
	g := &Grid{cols: cols, rows: rows}
	for l := range g.cells {
		g.cells[l] = make([]int, cols*rows)
		for i := range g.cells[l] {
			g.cells[l][i] = EmptyTile
		}
	}
	return g, nil
}

// Cols returns the world width in tiles.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the world height in tiles.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether (col, row) addresses a cell.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

func (g *Grid) offset(layer, col, row int) int {
	if layer < 0 || layer >= LayerCount || !g.InBounds(col, row) {
		panic(fmt.Sprintf("world: tile query (layer %d, col %d, row %d) outside %dx%d grid",
			layer, col, row, g.cols, g.rows))
	}
	return row*g.cols + col
}

// TileAt returns the tile index at (layer, col, row). Out-of-bounds queries
// are programming errors and panic.
func (g *Grid) TileAt(layer, col, row int) int {
	return g.cells[layer][g.offset(layer, col, row)]
}

// SetTile writes a cell. Only map loading should call it.
func (g *Grid) SetTile(layer, col, row, index int) {
	g.cells[layer][g.offset(layer, col, row)] = index
}

// Validate checks that every cell is empty or a catalog index.
func (g *Grid) Validate(c *Catalog) error {
	for layer := 0; layer < LayerCount; layer++ {
		for i, idx := range g.cells[layer] {
			if idx < 0 {
				continue
			}
			col, row := i%g.cols, i/g.cols
			if !c.Contains(idx) {
				return fmt.Errorf("%w: %d at layer %d col %d row %d (catalog has %d types)",
					ErrUnknownTile, idx, layer, col, row, c.Len())
			}
		}
	}
	return nil
}

// Stats counts non-empty and collidable cells per layer. Used by diagnostics.
type Stats struct {
	Filled     [LayerCount]int
	Collidable [LayerCount]int
}

// Stats summarizes the grid against a catalog. The grid must be valid.
func (g *Grid) Stats(c *Catalog) Stats {
	var s Stats
	for layer := 0; layer < LayerCount; layer++ {
		for _, idx := range g.cells[layer] {
			if idx < 0 {
				continue
			}
			s.Filled[layer]++
			if c.IsCollidable(idx) {
				s.Collidable[layer]++
			}
		}
	}
	return s
}
