package quest

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/world"
)

// CellWidth is how many terminal columns one tile occupies.
const CellWidth = 2

// Sprite frames, two runes wide, indexed by facing.
var (
	playerWalk = [4][]string{
		world.DirUp:    {"@^", "@'"},
		world.DirDown:  {"@v", "@,"},
		world.DirLeft:  {"<@", "«@"},
		world.DirRight: {"@>", "@»"},
	}
	playerSwing = [4][]string{
		world.DirUp:    {"@|", "@!"},
		world.DirDown:  {"@|", "@¡"},
		world.DirLeft:  {"-@", "=@"},
		world.DirRight: {"@-", "@="},
	}
	npcWalk = [4][]string{
		world.DirUp:    {"&^", "&'"},
		world.DirDown:  {"&v", "&,"},
		world.DirLeft:  {"<&", "«&"},
		world.DirRight: {"&>", "&»"},
	}
	npcAlert = [4][]string{
		world.DirUp:    {"&!"},
		world.DirDown:  {"&!"},
		world.DirLeft:  {"!&"},
		world.DirRight: {"&!"},
	}
)

const playerDown = "x_"

// Slash glyphs drawn in the tile the swing reaches.
var swingGlyph = [4]rune{
	world.DirUp:    '|',
	world.DirDown:  '|',
	world.DirLeft:  '─',
	world.DirRight: '─',
}

func frameAt(frames []string, frame int) string {
	if len(frames) == 0 {
		return "??"
	}
	return frames[frame%len(frames)]
}

// spriteFor picks the frame and color for e from its animation state.
func spriteFor(e *world.Entity) (string, core.Color) {
	dir := e.Facing
	if !dir.Valid() {
		dir = world.DirDown
	}
	switch e.Kind {
	case world.KindPlayer:
		p := e.Player
		switch {
		case p.Dead:
			return playerDown, core.ColorRed
		case p.State == world.PlayerAttacking:
			return frameAt(playerSwing[p.AttackDir], e.Anim.Frame), core.ColorBrightWhite
		default:
			return frameAt(playerWalk[dir], e.Anim.Frame), core.ColorBrightYellow
		}
	case world.KindNPC:
		if e.NPC.State == world.NPCAggroed {
			return frameAt(npcAlert[dir], e.Anim.Frame), core.ColorBrightRed
		}
		return frameAt(npcWalk[dir], e.Anim.Frame), core.ColorBrightMagenta
	}
	return "??", core.ColorDefault
}

// tileCells returns the two runes drawn for a tile. Solid tiles fill both
// columns; walkable ones leave the second blank so the ground reads lighter.
func tileCells(t world.TileType) [CellWidth]rune {
	if t.Collision {
		return [CellWidth]rune{t.Glyph, t.Glyph}
	}
	return [CellWidth]rune{t.Glyph, ' '}
}
