package world

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
)

// TileType describes one kind of tile. Glyph and Color are the appearance
// handle used by the renderer; the collision code only reads Collision.
type TileType struct {
	Name      string
	Glyph     rune
	Color     core.Color
	Collision bool
}

// Catalog maps tile indices to tile types. It is immutable after construction.
type Catalog struct {
	types []TileType
}

// NewCatalog copies the given tile types into a catalog. Index i of the slice
// becomes tile index i.
func NewCatalog(types []TileType) *Catalog {
	c := &Catalog{types: make([]TileType, len(types))}
	copy(c.types, types)
	return c
}

// Len returns the number of tile types.
func (c *Catalog) Len() int {
	return len(c.types)
}

// Contains reports whether index names a tile type.
func (c *Catalog) Contains(index int) bool {
	return index >= 0 && index < len(c.types)
}

// Type returns the tile type for index. Negative indices report false.
func (c *Catalog) Type(index int) (TileType, bool) {
	if !c.Contains(index) {
		return TileType{}, false
	}
	return c.types[index], true
}

// IsCollidable reports whether the tile blocks movement. A negative index is
// an empty cell and never blocks. An index past the end of the catalog means
// the map was not validated and panics.
func (c *Catalog) IsCollidable(index int) bool {
	if index < 0 {
		return false
	}
	if index >= len(c.types) {
		panic(fmt.Sprintf("world: tile index %d outside catalog of %d types", index, len(c.types)))
	}
	return c.types[index].Collision
}
