package quest

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tilequest/internal/actor"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/i18n"
	"github.com/vovakirdan/tilequest/internal/world"
)

// Minimum terminal size the quest renders at.
const (
	MinScreenW = 40
	MinScreenH = 10
)

const (
	hudRows    = 1
	footerRows = 1
	barWidth   = 10
	wideHUD    = 72 // columns needed to show the resource bars
)

// view is the window of map tiles visible on screen.
type view struct {
	top        int // screen row of the first map row
	cols, rows int // visible tiles
	col0, row0 int // map tile drawn at the top-left
}

func (g *Game) camera(dst *core.Screen) view {
	v := view{
		top:  hudRows,
		cols: dst.Width() / CellWidth,
		rows: dst.Height() - hudRows - footerRows,
	}
	ts := g.ctx.TileSize
	cx, cy := g.ctx.Player.Bounds().Center()
	v.col0 = cameraStart(core.FloorDiv(cx, ts), v.cols, g.ctx.Grid.Cols())
	v.row0 = cameraStart(core.FloorDiv(cy, ts), v.rows, g.ctx.Grid.Rows())
	return v
}

// cameraStart returns the first tile of a window of span tiles centered on
// focus and kept inside [0, total). A map narrower than the window is centered.
func cameraStart(focus, span, total int) int {
	if total <= span {
		return -(span - total) / 2
	}
	return core.Clamp(focus-span/2, 0, total-span)
}

// screenPos maps a tile to the screen cell of its first column.
func (v view) screenPos(col, row int) (x, y int, ok bool) {
	i, j := col-v.col0, row-v.row0
	if i < 0 || j < 0 || i >= v.cols || j >= v.rows {
		return 0, 0, false
	}
	return i * CellWidth, v.top + j, true
}

// tint applies the brightness setting to a color.
func (g *Game) tint(c core.Color) core.Color {
	if g.display.Brightness < 50 {
		return c.Dim()
	}
	return c
}

// Render draws the visible part of the world, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	lang := g.display.Language

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, i18n.T(lang, i18n.TooSmall), core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, i18n.Tf(lang, i18n.TooSmallHint, MinScreenW, MinScreenH), core.ColorDefault)
		return
	}

	v := g.camera(dst)
	g.renderLayer(dst, v, world.LayerGround)
	g.renderLayer(dst, v, world.LayerDecoration)
	if g.debug {
		g.renderAggro(dst, v)
	}
	g.renderEntities(dst, v)
	g.renderLayer(dst, v, world.LayerOverhead)
	g.renderDarkness(dst, v)

	g.renderHUD(dst)
	g.renderFooter(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderLayer(dst *core.Screen, v view, layer int) {
	grid, catalog := g.ctx.Grid, g.ctx.Catalog
	for j := 0; j < v.rows; j++ {
		row := v.row0 + j
		for i := 0; i < v.cols; i++ {
			col := v.col0 + i
			if !grid.InBounds(col, row) {
				continue
			}
			t, ok := catalog.Type(grid.TileAt(layer, col, row))
			if !ok {
				continue
			}
			c := g.tint(t.Color)
			for k, r := range tileCells(t) {
				if r == ' ' && layer != world.LayerGround {
					continue
				}
				dst.SetColored(i*CellWidth+k, v.top+j, r, c)
			}
		}
	}
}

// renderEntities draws every entity back to front by the bottom of its hitbox.
func (g *Game) renderEntities(dst *core.Screen, v view) {
	ents := make([]*world.Entity, 0, len(g.ctx.NPCs)+1)
	ents = append(ents, g.ctx.NPCs...)
	if g.ctx.Player != nil {
		ents = append(ents, g.ctx.Player)
	}
	sort.SliceStable(ents, func(a, b int) bool {
		ya, yb := ents[a].Bounds().Bottom(), ents[b].Bounds().Bottom()
		if ya != yb {
			return ya < yb
		}
		return ents[a].ID < ents[b].ID
	})

	ts := g.ctx.TileSize
	for _, e := range ents {
		cx, cy := e.Bounds().Center()
		x, y, ok := v.screenPos(core.FloorDiv(cx, ts), core.FloorDiv(cy, ts))
		if !ok {
			continue
		}
		sprite, c := spriteFor(e)
		dst.DrawTextColored(x, y, sprite, g.tint(c))
		if e.Kind == world.KindPlayer && e.Player.State == world.PlayerAttacking {
			g.renderSwing(dst, v, e)
		}
	}
}

// renderSwing marks the tile the tip of the player's swing reaches.
func (g *Game) renderSwing(dst *core.Screen, v view, e *world.Entity) {
	dir := e.Player.AttackDir
	box := actor.AttackBox(e, g.cfg.Player.AttackReach)
	cx, cy := e.Bounds().Center()
	tipX, tipY := cx, cy
	switch dir {
	case world.DirUp:
		tipY = box.Y
	case world.DirDown:
		tipY = box.Bottom() - 1
	case world.DirLeft:
		tipX = box.X
	case world.DirRight:
		tipX = box.Right() - 1
	}
	ts := g.ctx.TileSize
	if core.FloorDiv(tipX, ts) == core.FloorDiv(cx, ts) && core.FloorDiv(tipY, ts) == core.FloorDiv(cy, ts) {
		return
	}
	x, y, ok := v.screenPos(core.FloorDiv(tipX, ts), core.FloorDiv(tipY, ts))
	if !ok {
		return
	}
	glyph := swingGlyph[dir]
	dst.SetColored(x, y, glyph, g.tint(core.ColorBrightWhite))
	if dir.Horizontal() {
		dst.SetColored(x+1, y, glyph, g.tint(core.ColorBrightWhite))
	}
}

// renderAggro outlines each NPC's aggro radius, the exit radius while chasing.
func (g *Game) renderAggro(dst *core.Screen, v view) {
	ts := g.ctx.TileSize
	tuning := g.npcTuning()
	for _, npc := range g.ctx.NPCs {
		radius := float64(tuning.AggroRange)
		c := core.ColorYellow
		if npc.NPC.State == world.NPCAggroed {
			radius += float64(tuning.Hysteresis)
			c = core.ColorRed
		}
		for j := 0; j < v.rows; j++ {
			for i := 0; i < v.cols; i++ {
				px := (v.col0+i)*ts + ts/2
				py := (v.row0+j)*ts + ts/2
				d := math.Hypot(float64(px-npc.X), float64(py-npc.Y))
				if math.Abs(d-radius) <= float64(ts)/2 {
					dst.SetColored(i*CellWidth, v.top+j, '·', c)
				}
			}
		}
	}
}

// renderDarkness blanks the map outside a light radius around the player when
// brightness is very low.
func (g *Game) renderDarkness(dst *core.Screen, v view) {
	if g.display.Brightness >= 25 {
		return
	}
	radius := 2 + g.display.Brightness/4
	ts := g.ctx.TileSize
	cx, cy := g.ctx.Player.Bounds().Center()
	pc, pr := core.FloorDiv(cx, ts), core.FloorDiv(cy, ts)
	for j := 0; j < v.rows; j++ {
		for i := 0; i < v.cols; i++ {
			dc, dr := v.col0+i-pc, v.row0+j-pr
			if dc*dc+dr*dr <= radius*radius {
				continue
			}
			for k := 0; k < CellWidth; k++ {
				dst.SetColored(i*CellWidth+k, v.top+j, ' ', core.ColorDefault)
			}
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	lang := g.display.Language
	p := g.ctx.Player.Player
	bars := dst.Width() >= wideHUD

	x := 1
	x = drawStat(dst, x, i18n.T(lang, i18n.Health), p.Health, p.MaxHealth, core.ColorBrightRed, bars)
	drawStat(dst, x+2, i18n.T(lang, i18n.Stamina), p.Stamina, p.MaxStamina, core.ColorBrightGreen, bars)

	right := fmt.Sprintf("%s %d/%d  %s %s",
		i18n.T(lang, i18n.Foes), len(g.ctx.NPCs), len(g.cfg.Spawns.NPCs),
		i18n.T(lang, i18n.Time), clock(g.tickCount, g.runtime.TickRate))
	dst.DrawText(dst.Width()-utf8.RuneCountInString(right)-1, 0, right)
}

// drawStat draws "LBL [####------] v/max" and returns the column after it.
func drawStat(dst *core.Screen, x int, label string, value, maxValue int, c core.Color, bar bool) int {
	dst.DrawText(x, 0, label)
	x += utf8.RuneCountInString(label) + 1
	if bar {
		filled := 0
		if maxValue > 0 {
			filled = core.Clamp(value*barWidth/maxValue, 0, barWidth)
		}
		dst.DrawText(x, 0, "[")
		dst.DrawTextColored(x+1, 0, strings.Repeat("#", filled), c)
		dst.DrawText(x+1+filled, 0, strings.Repeat("-", barWidth-filled)+"]")
		x += barWidth + 3
	}
	text := fmt.Sprintf("%d/%d", value, maxValue)
	dst.DrawTextColored(x, 0, text, c)
	return x + len(text)
}

// clock formats ticks as mm:ss.
func clock(ticks, rate int) string {
	if rate <= 0 {
		rate = 60
	}
	secs := ticks / rate
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if !g.debug {
		dst.DrawTextColored(1, y, i18n.T(g.display.Language, i18n.HelpLine), core.ColorGray)
		return
	}
	e := g.ctx.Player
	ts := g.ctx.TileSize
	fps := "--"
	if g.fps > 0 {
		fps = fmt.Sprintf("%.0f", g.fps)
	}
	line := fmt.Sprintf("fps %s  tick %d  pos %d,%d  tile %d,%d  %s  hit %v  lvl %.2f",
		fps, g.tickCount, e.X, e.Y, core.FloorDiv(e.X, ts), core.FloorDiv(e.Y, ts),
		e.Player.State, e.CollisionOn, g.difficulty.Level(g.defeated, g.tickCount))
	dst.DrawTextColored(1, y, line, core.ColorCyan)
}

func (g *Game) renderOverlay(dst *core.Screen) {
	lang := g.display.Language
	switch g.state {
	case StatePaused:
		drawCenteredBox(dst, i18n.T(lang, i18n.Paused), i18n.T(lang, i18n.PausedHint))
	case StateCleared:
		drawCenteredBox(dst, i18n.T(lang, i18n.Cleared), i18n.Tf(lang, i18n.ClearedHint, g.defeated))
	default:
		if p := g.ctx.Player.Player; p.Dead {
			need := actor.ReviveThreshold(p.MaxHealth, g.cfg.Player.ReviveFraction)
			dst.DrawTextCentered(dst.Height()/2, i18n.Tf(lang, i18n.Fallen, p.Health, need), core.ColorBrightRed)
		}
	}
}

func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	tw, sw := utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)
	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextColored(boxX+(boxW-tw)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}
