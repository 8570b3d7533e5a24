package world

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tilequest/internal/core"
)

// Context is the state one update tick operates on: the static map, the
// resolver bound to it, the entity collection and the seeded RNG.
type Context struct {
	Grid     *Grid
	Catalog  *Catalog
	Resolver *Resolver
	TileSize int

	Player *Entity
	NPCs   []*Entity

	Rng  *rand.Rand
	Tick uint64

	nextID int
}

// NewContext validates the grid against the catalog and builds a context with
// no entities.
func NewContext(grid *Grid, catalog *Catalog, tileSize int, seed int64) (*Context, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("world: tile size must be positive, got %d", tileSize)
	}
	if err := grid.Validate(catalog); err != nil {
		return nil, err
	}
	return &Context{
		Grid:     grid,
		Catalog:  catalog,
		Resolver: NewResolver(grid, catalog, tileSize),
		TileSize: tileSize,
		Rng:      rand.New(rand.NewSource(seed)),
		nextID:   1,
	}, nil
}

// Reset drops every entity, restarts ID assignment and the tick counter, and
// reseeds the RNG. The map and resolver are kept.
func (c *Context) Reset(seed int64) {
	c.Player = nil
	c.NPCs = nil
	c.Tick = 0
	c.nextID = 1
	c.Rng = rand.New(rand.NewSource(seed))
}

// WorldWidth returns the map width in pixels.
func (c *Context) WorldWidth() int { return c.Grid.Cols() * c.TileSize }

// WorldHeight returns the map height in pixels.
func (c *Context) WorldHeight() int { return c.Grid.Rows() * c.TileSize }

// TileOrigin converts a tile coordinate to the world pixel at its top-left.
func (c *Context) TileOrigin(col, row int) (int, int) {
	return col * c.TileSize, row * c.TileSize
}

// Add assigns e an ID and stores it. Adding a player replaces the previous one.
func (c *Context) Add(e *Entity) {
	e.ID = c.nextID
	c.nextID++
	switch e.Kind {
	case KindPlayer:
		c.Player = e
	case KindNPC:
		c.NPCs = append(c.NPCs, e)
	}
}

// RemoveDead drops NPCs whose health reached zero and returns how many went.
func (c *Context) RemoveDead() int {
	kept := c.NPCs[:0]
	removed := 0
	for _, n := range c.NPCs {
		if n.Alive() {
			kept = append(kept, n)
		} else {
			removed++
		}
	}
	for i := len(kept); i < len(c.NPCs); i++ {
		c.NPCs[i] = nil
	}
	c.NPCs = kept
	return removed
}

// ClampToWorld keeps e's hitbox inside the map.
func (c *Context) ClampToWorld(e *Entity) {
	e.X = core.Clamp(e.X, -e.Hitbox.X, c.WorldWidth()-e.Hitbox.Right())
	e.Y = core.Clamp(e.Y, -e.Hitbox.Y, c.WorldHeight()-e.Hitbox.Bottom())
}

// Distance returns the Euclidean distance between the origins of a and b.
func Distance(a, b *Entity) float64 {
	return math.Sqrt(float64(DistanceSq(a, b)))
}

// DistanceSq returns the squared distance between the origins of a and b.
func DistanceSq(a, b *Entity) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
