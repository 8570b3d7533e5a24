package world

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/tilequest/internal/core"
)

const testTile = 48

const (
	tileGrass = 0
	tileWall  = 1
)

func testCatalog() *Catalog {
	return NewCatalog([]TileType{
		{Name: "grass", Glyph: '.', Color: core.ColorGreen},
		{Name: "wall", Glyph: '#', Color: core.ColorGray, Collision: true},
	})
}

// openGrid returns a grid whose ground layer is all grass.
func openGrid(t *testing.T, cols, rows int) *Grid {
	t.Helper()
	g, err := NewGrid(cols, rows)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.SetTile(LayerGround, c, r, tileGrass)
		}
	}
	return g
}

func testPlayer(x, y int) *Entity {
	return NewPlayer(x, y, 4, core.NewRect(8, 16, 16, 16), PlayerData{Health: 100, MaxHealth: 100})
}

func TestCatalogIsCollidable(t *testing.T) {
	c := testCatalog()
	tests := []struct {
		index int
		want  bool
	}{
		{-1, false},
		{-42, false},
		{tileGrass, false},
		{tileWall, true},
	}
	for _, tt := range tests {
		if got := c.IsCollidable(tt.index); got != tt.want {
			t.Errorf("IsCollidable(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestCatalogOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IsCollidable past catalog end should panic")
		}
	}()
	testCatalog().IsCollidable(2)
}

func TestGridTileAtOutOfBoundsPanics(t *testing.T) {
	g := openGrid(t, 4, 4)
	cases := [][3]int{{0, -1, 0}, {0, 4, 0}, {0, 0, 4}, {3, 0, 0}, {-1, 0, 0}}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("TileAt(%d, %d, %d) should panic", c[0], c[1], c[2])
				}
			}()
			g.TileAt(c[0], c[1], c[2])
		}()
	}
}

func TestGridValidate(t *testing.T) {
	g := openGrid(t, 3, 3)
	if err := g.Validate(testCatalog()); err != nil {
		t.Fatalf("valid grid rejected: %v", err)
	}
	g.SetTile(LayerOverhead, 1, 2, 7)
	err := g.Validate(testCatalog())
	if !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("Validate error = %v, want ErrUnknownTile", err)
	}
	if !strings.Contains(err.Error(), "col 1 row 2") {
		t.Errorf("error should locate the cell: %v", err)
	}
}

func TestNewGridRejectsEmpty(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		if _, err := NewGrid(dims[0], dims[1]); !errors.Is(err, ErrMapDimensions) {
			t.Errorf("NewGrid(%d, %d) error = %v, want ErrMapDimensions", dims[0], dims[1], err)
		}
	}
}

func TestResolverWallBlocksRightward(t *testing.T) {
	g := openGrid(t, 20, 20)
	g.SetTile(LayerGround, 10, 10, tileWall)
	r := NewResolver(g, testCatalog(), testTile)

	// Hitbox right edge 476; moving 4px puts the leading edge at x=480, col 10.
	// Hitbox rows span y=490..506, row 10.
	p := testPlayer(452, 474)
	blocked := r.AttemptMove(p, 4, 0)

	if !blocked.X() || blocked.Y() {
		t.Errorf("blocked = %v, want x only", blocked)
	}
	if p.X != 452 {
		t.Errorf("X = %d, want unchanged 452", p.X)
	}
	if !p.CollisionOn {
		t.Error("CollisionOn should be set")
	}
}

func TestResolverDiagonalSlides(t *testing.T) {
	g := openGrid(t, 20, 20)
	g.SetTile(LayerGround, 10, 10, tileWall)
	r := NewResolver(g, testCatalog(), testTile)

	p := testPlayer(452, 474)
	blocked := r.AttemptMove(p, 4, 4)

	if blocked != BlockedX {
		t.Errorf("blocked = %v, want x", blocked)
	}
	if p.X != 452 || p.Y != 478 {
		t.Errorf("position = (%d, %d), want (452, 478)", p.X, p.Y)
	}
	if !p.CollisionOn {
		t.Error("CollisionOn should be set when one axis is blocked")
	}
}

func TestResolverLayers(t *testing.T) {
	tests := []struct {
		name    string
		layer   int
		index   int
		blocked bool
	}{
		{"ground wall blocks", LayerGround, tileWall, true},
		{"decoration wall ignored", LayerDecoration, tileWall, false},
		{"overhead wall blocks", LayerOverhead, tileWall, true},
		{"negative ground ignored", LayerGround, -1, false},
		{"negative overhead ignored", LayerOverhead, -5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := openGrid(t, 20, 20)
			g.SetTile(tt.layer, 10, 10, tt.index)
			r := NewResolver(g, testCatalog(), testTile)
			p := testPlayer(452, 474)
			got := r.AttemptMove(p, 4, 0).X()
			if got != tt.blocked {
				t.Errorf("blocked = %v, want %v", got, tt.blocked)
			}
		})
	}
}

func TestResolverVerticalSamples(t *testing.T) {
	g := openGrid(t, 20, 20)
	g.SetTile(LayerGround, 5, 4, tileWall)
	g.SetTile(LayerGround, 5, 8, tileWall)
	r := NewResolver(g, testCatalog(), testTile)

	// Hitbox spans x=248..264 (col 5) and y=288..304 (row 6).
	up := testPlayer(240, 272)
	if b := r.AttemptMove(up, 0, -50); !b.Y() {
		t.Errorf("moving into row 4: blocked = %v, want y", b)
	}
	down := testPlayer(240, 272)
	if b := r.AttemptMove(down, 0, 4); b.Any() || down.Y != 276 {
		t.Errorf("moving down one step: blocked = %v, Y = %d", b, down.Y)
	}
	far := testPlayer(240, 272)
	if b := r.AttemptMove(far, 0, 80); !b.Y() {
		t.Errorf("moving into row 8: blocked = %v, want y", b)
	}
}

func TestResolverOutOfBoundsBlocks(t *testing.T) {
	g := openGrid(t, 5, 5)
	r := NewResolver(g, testCatalog(), testTile)

	tests := []struct {
		name   string
		x, y   int
		dx, dy int
		want   BlockedAxes
	}{
		{"left edge", -8, 100, -4, 0, BlockedX},
		{"top edge", 100, -16, 0, -1, BlockedY},
		{"right edge", 5*testTile - 24, 100, 4, 0, BlockedX},
		{"bottom edge", 100, 5*testTile - 32, 0, 4, BlockedY},
		{"interior", 100, 100, 4, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPlayer(tt.x, tt.y)
			if got := r.AttemptMove(p, tt.dx, tt.dy); got != tt.want {
				t.Errorf("blocked = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolverZeroMoveIsNoop(t *testing.T) {
	g := openGrid(t, 5, 5)
	r := NewResolver(g, testCatalog(), testTile)
	p := testPlayer(50, 60)
	p.CollisionOn = true
	before := *p

	if b := r.AttemptMove(p, 0, 0); b.Any() {
		t.Errorf("zero move reported blocked = %v", b)
	}
	if *p != before {
		t.Errorf("zero move changed entity: %+v -> %+v", before, *p)
	}
}

func TestResolverNilEntity(t *testing.T) {
	r := NewResolver(openGrid(t, 3, 3), testCatalog(), testTile)
	if r.AttemptMove(nil, 4, 4).Any() {
		t.Error("nil entity should not report blocked")
	}
	if r.CheckTile(nil, DirUp, 4) {
		t.Error("nil entity should never block")
	}
	p := testPlayer(50, 50)
	if r.CheckTile(p, Direction(9), 1000) {
		t.Error("invalid direction should never block")
	}
	if r.MoveDir(p, Direction(9)).Any() || p.X != 50 || p.Y != 50 {
		t.Error("invalid direction should not move")
	}
}

func TestResolverAxisAllOrNothing(t *testing.T) {
	const size = 30
	rng := rand.New(rand.NewSource(7))
	g := openGrid(t, size, size)
	for i := 0; i < 150; i++ {
		g.SetTile(LayerGround, rng.Intn(size), rng.Intn(size), tileWall)
	}
	r := NewResolver(g, testCatalog(), testTile)
	p := testPlayer(14*testTile, 14*testTile)
	g.SetTile(LayerGround, 14, 14, tileGrass)

	for i := 0; i < 2000; i++ {
		dx := rng.Intn(13) - 6
		dy := rng.Intn(13) - 6
		x0, y0 := p.X, p.Y
		blocked := r.AttemptMove(p, dx, dy)

		if blocked.X() {
			if p.X != x0 {
				t.Fatalf("step %d: X blocked but moved %d -> %d", i, x0, p.X)
			}
		} else if p.X != x0+dx {
			t.Fatalf("step %d: X committed partially %d + %d -> %d", i, x0, dx, p.X)
		}
		if blocked.Y() {
			if p.Y != y0 {
				t.Fatalf("step %d: Y blocked but moved %d -> %d", i, y0, p.Y)
			}
		} else if p.Y != y0+dy {
			t.Fatalf("step %d: Y committed partially %d + %d -> %d", i, y0, dy, p.Y)
		}
		if p.CollisionOn != blocked.Any() && (dx != 0 || dy != 0) {
			t.Fatalf("step %d: CollisionOn = %v, blocked = %v", i, p.CollisionOn, blocked)
		}
	}
}

// The resolver samples only the leading-edge corners at the destination, so
// a move longer than a tile lands past a one-tile wall without hitting it.
func TestResolverLongMoveSkipsThinWall(t *testing.T) {
	g := openGrid(t, 20, 20)
	g.SetTile(LayerGround, 10, 10, tileWall)
	r := NewResolver(g, testCatalog(), testTile)

	// Right edge 476; a 100px move puts the leading edge at x=576, col 12.
	p := testPlayer(452, 474)
	if blocked := r.AttemptMove(p, 100, 0); blocked.Any() {
		t.Fatalf("blocked = %v, want none", blocked)
	}
	if p.X != 552 {
		t.Errorf("X = %d, want 552", p.X)
	}
	if r.CheckTile(p, DirLeft, 100) {
		t.Error("moving back over the wall should not block either")
	}
}

// A hitbox wider than a tile straddles the wall column with its corners on
// either side, so neither sample sees it.
func TestResolverWideHitboxPassesCenterObstacle(t *testing.T) {
	g := openGrid(t, 20, 20)
	g.SetTile(LayerGround, 10, 10, tileWall)
	r := NewResolver(g, testCatalog(), testTile)

	tests := []struct {
		name   string
		x      int
		wantDY bool
	}{
		// Corners at x=440 (col 9) and x=552 (col 11); the wall is col 10.
		{"corners around wall", 440, true},
		// Right corner at x=500 lands on the wall.
		{"corner on wall", 388, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewPlayer(tt.x, 460, 4, core.NewRect(0, 0, 112, 16), PlayerData{Health: 1, MaxHealth: 1})
			// Bottom edge 476; moving 4px down reaches y=480, row 10.
			blocked := r.AttemptMove(e, 0, 4)
			if got := !blocked.Y(); got != tt.wantDY {
				t.Errorf("moved = %v, want %v (blocked %v)", got, tt.wantDY, blocked)
			}
		})
	}
}

func TestCheckOverlap(t *testing.T) {
	box := core.NewRect(0, 0, 10, 10)
	mk := func(x, y int) *Entity { return NewNPC(x, y, 1, box, NPCData{Health: 1}) }

	tests := []struct {
		name string
		a, b *Entity
		want bool
	}{
		{"same spot", mk(0, 0), mk(0, 0), true},
		{"partial", mk(0, 0), mk(5, 5), true},
		{"touching right", mk(0, 0), mk(10, 0), false},
		{"touching below", mk(0, 0), mk(0, 10), false},
		{"apart", mk(0, 0), mk(50, 50), false},
		{"nil a", nil, mk(0, 0), false},
		{"nil b", mk(0, 0), nil, false},
		{"both nil", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("CheckOverlap(a, b) = %v, want %v", got, tt.want)
			}
			if got := CheckOverlap(tt.b, tt.a); got != tt.want {
				t.Errorf("CheckOverlap(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextEntities(t *testing.T) {
	ctx, err := NewContext(openGrid(t, 4, 4), testCatalog(), testTile, 1)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	ctx.Add(testPlayer(0, 0))
	box := core.NewRect(0, 0, 10, 10)
	a := NewNPC(10, 10, 1, box, NPCData{Health: 1})
	b := NewNPC(20, 20, 1, box, NPCData{Health: 1})
	ctx.Add(a)
	ctx.Add(b)

	if ctx.Player.ID != 1 || a.ID != 2 || b.ID != 3 {
		t.Errorf("IDs = %d, %d, %d, want 1, 2, 3", ctx.Player.ID, a.ID, b.ID)
	}

	a.NPC.Health = 0
	if n := ctx.RemoveDead(); n != 1 {
		t.Errorf("RemoveDead = %d, want 1", n)
	}
	if len(ctx.NPCs) != 1 || ctx.NPCs[0] != b {
		t.Errorf("remaining NPCs = %v, want only b", ctx.NPCs)
	}
}

func TestContextReset(t *testing.T) {
	ctx, err := NewContext(openGrid(t, 4, 4), testCatalog(), testTile, 7)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	first := ctx.Rng.Int63()
	ctx.Add(testPlayer(0, 0))
	ctx.Add(NewNPC(10, 10, 1, core.NewRect(0, 0, 10, 10), NPCData{Health: 1}))
	ctx.Tick = 42

	ctx.Reset(7)
	if ctx.Player != nil || len(ctx.NPCs) != 0 || ctx.Tick != 0 {
		t.Fatalf("Reset left state behind: player=%v npcs=%d tick=%d", ctx.Player, len(ctx.NPCs), ctx.Tick)
	}
	if got := ctx.Rng.Int63(); got != first {
		t.Errorf("RNG not reseeded: got %d, want %d", got, first)
	}
	p := testPlayer(0, 0)
	ctx.Add(p)
	if p.ID != 1 {
		t.Errorf("ID after Reset = %d, want 1", p.ID)
	}
}

func TestContextRejectsInvalidMap(t *testing.T) {
	g := openGrid(t, 2, 2)
	g.SetTile(LayerGround, 0, 0, 99)
	if _, err := NewContext(g, testCatalog(), testTile, 1); !errors.Is(err, ErrUnknownTile) {
		t.Errorf("NewContext error = %v, want ErrUnknownTile", err)
	}
	if _, err := NewContext(openGrid(t, 2, 2), testCatalog(), 0, 1); err == nil {
		t.Error("zero tile size should be rejected")
	}
}

func TestContextClampToWorld(t *testing.T) {
	ctx, err := NewContext(openGrid(t, 4, 4), testCatalog(), testTile, 1)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	p := testPlayer(-100, 1000)
	ctx.ClampToWorld(p)
	b := p.Bounds()
	if b.X != 0 || b.Bottom() != ctx.WorldHeight() {
		t.Errorf("clamped bounds = %+v, world %dx%d", b, ctx.WorldWidth(), ctx.WorldHeight())
	}
}

func TestDistance(t *testing.T) {
	a := testPlayer(0, 0)
	b := testPlayer(30, 40)
	if d := Distance(a, b); d != 50 {
		t.Errorf("Distance = %v, want 50", d)
	}
	if d := DistanceSq(b, a); d != 2500 {
		t.Errorf("DistanceSq = %d, want 2500", d)
	}
}
