package world

import "github.com/vovakirdan/tilequest/internal/core"

// BlockedAxes records which axes of a move were rejected by terrain.
type BlockedAxes uint8

const (
	BlockedX BlockedAxes = 1 << iota
	BlockedY
)

// X reports whether the horizontal component was rejected.
func (b BlockedAxes) X() bool { return b&BlockedX != 0 }

// Y reports whether the vertical component was rejected.
func (b BlockedAxes) Y() bool { return b&BlockedY != 0 }

// Any reports whether either component was rejected.
func (b BlockedAxes) Any() bool { return b != 0 }

func (b BlockedAxes) String() string {
	switch b {
	case 0:
		return "none"
	case BlockedX:
		return "x"
	case BlockedY:
		return "y"
	case BlockedX | BlockedY:
		return "xy"
	}
	return "invalid"
}

// Resolver constrains entity movement against the tile grid. It reads the
// grid and catalog only and keeps no per-entity state.
type Resolver struct {
	grid     *Grid
	catalog  *Catalog
	tileSize int
}

// NewResolver returns a resolver for a validated grid.
func NewResolver(grid *Grid, catalog *Catalog, tileSize int) *Resolver {
	return &Resolver{grid: grid, catalog: catalog, tileSize: tileSize}
}

// TileSize returns the edge length of a tile in pixels.
func (r *Resolver) TileSize() int { return r.tileSize }

// blockedAt reports whether the pixel (px, py) lies in a collidable tile.
// Points outside the world count as blocked.
func (r *Resolver) blockedAt(px, py int) bool {
	col := core.FloorDiv(px, r.tileSize)
	row := core.FloorDiv(py, r.tileSize)
	if !r.grid.InBounds(col, row) {
		return true
	}
	for _, layer := range collidableLayers {
		if r.catalog.IsCollidable(r.grid.TileAt(layer, col, row)) {
			return true
		}
	}
	return false
}

// CheckTile samples the two corners of e's leading edge after a move of dist
// pixels in dir. It does not change e. Invalid directions never block.
//
// Only the corners are sampled, so a hitbox wider than a tile can pass over a
// one-tile obstacle between them, and a dist larger than a tile can skip a
// thin wall entirely.
func (r *Resolver) CheckTile(e *Entity, dir Direction, dist int) bool {
	if e == nil {
		return false
	}
	b := e.Bounds()
	switch dir {
	case DirUp:
		edge := b.Y - dist
		return r.blockedAt(b.X, edge) || r.blockedAt(b.Right(), edge)
	case DirDown:
		edge := b.Bottom() + dist
		return r.blockedAt(b.X, edge) || r.blockedAt(b.Right(), edge)
	case DirLeft:
		edge := b.X - dist
		return r.blockedAt(edge, b.Y) || r.blockedAt(edge, b.Bottom())
	case DirRight:
		edge := b.Right() + dist
		return r.blockedAt(edge, b.Y) || r.blockedAt(edge, b.Bottom())
	}
	return false
}

// AttemptMove applies (dx, dy) to e one axis at a time, X first. Each axis is
// checked from the position left by the previous one and is either committed
// in full or discarded. CollisionOn reflects this move only.
//
// A zero move leaves e untouched.
func (r *Resolver) AttemptMove(e *Entity, dx, dy int) BlockedAxes {
	if e == nil || (dx == 0 && dy == 0) {
		return 0
	}
	e.CollisionOn = false

	var blocked BlockedAxes
	if dx != 0 {
		dir, dist := DirRight, dx
		if dx < 0 {
			dir, dist = DirLeft, -dx
		}
		if r.CheckTile(e, dir, dist) {
			blocked |= BlockedX
		} else {
			e.X += dx
		}
	}
	if dy != 0 {
		dir, dist := DirDown, dy
		if dy < 0 {
			dir, dist = DirUp, -dy
		}
		if r.CheckTile(e, dir, dist) {
			blocked |= BlockedY
		} else {
			e.Y += dy
		}
	}

	e.CollisionOn = blocked.Any()
	return blocked
}

// MoveDir moves e by its speed in dir.
func (r *Resolver) MoveDir(e *Entity, dir Direction) BlockedAxes {
	if e == nil || !dir.Valid() {
		return 0
	}
	dx, dy := dir.Delta()
	return r.AttemptMove(e, dx*e.Speed, dy*e.Speed)
}

// CheckOverlap reports whether the world hitboxes of a and b intersect.
// Touching edges do not overlap, and a nil entity overlaps nothing.
func CheckOverlap(a, b *Entity) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Bounds().Intersects(b.Bounds())
}
