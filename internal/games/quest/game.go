// Package quest implements the tile quest: a top-down walk across a tiled
// world, clearing it of wandering monsters with a stamina-limited sword.
package quest

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilequest/internal/actor"
	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/i18n"
	"github.com/vovakirdan/tilequest/internal/maps"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/world"
)

// ID is the registry and score-table identifier of the quest.
const ID = "quest"

// Title is the quest's display name.
const Title = "Tile Quest"

// Game states.
const (
	StatePlaying = "playing"
	StatePaused  = "paused"
	StateCleared = "cleared" // every NPC defeated
)

// ErrSpawn reports a spawn point outside the map or with an unknown heading.
var ErrSpawn = errors.New("quest: invalid spawn point")

// logger is used by games built through the registry.
var logger = log.New(io.Discard)

// SetLogger sets the logger handed to games built through the registry.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Display holds the player settings that change how the world is drawn.
type Display struct {
	Brightness int    // 0 to 100
	Language   string // i18n language code
}

// DefaultDisplay is full brightness in English.
func DefaultDisplay() Display {
	return Display{Brightness: 100, Language: i18n.English}
}

// Option customizes a Game.
type Option func(*Game)

// WithLogger routes game events to l.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithDisplay sets the initial display settings.
func WithDisplay(d Display) Option {
	return func(g *Game) {
		g.SetDisplay(d)
	}
}

// Game implements the quest game logic.
type Game struct {
	cfg config.QuestConfig
	ctx *world.Context

	difficulty   *config.DifficultyManager
	playerTuning actor.PlayerTuning
	intents      []actor.AttackIntent

	state     string
	tickCount int
	defeated  int
	deaths    int

	runtime core.RuntimeConfig
	display Display
	debug   bool
	fps     float64

	logger *log.Logger
}

// New builds a quest over an already loaded map. The map is validated against
// the catalog and every spawn point must lie inside it.
func New(cfg config.QuestConfig, grid *world.Grid, catalog *world.Catalog, opts ...Option) (*Game, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	ctx, err := world.NewContext(grid, catalog, cfg.World.TileSize, 0)
	if err != nil {
		return nil, fmt.Errorf("quest: %w", err)
	}
	if err := checkSpawns(cfg, grid); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		ctx:     ctx,
		display: DefaultDisplay(),
		logger:  log.New(io.Discard),
		runtime: core.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.playerTuning = playerTuning(cfg.Player)
	g.warnBlockedSpawns()
	g.Reset(g.runtime)
	return g, nil
}

func checkSpawns(cfg config.QuestConfig, grid *world.Grid) error {
	if !grid.InBounds(cfg.Player.SpawnCol, cfg.Player.SpawnRow) {
		return fmt.Errorf("%w: player at tile (%d,%d)", ErrSpawn, cfg.Player.SpawnCol, cfg.Player.SpawnRow)
	}
	for i, sp := range cfg.Spawns.NPCs {
		if !grid.InBounds(sp.Col, sp.Row) {
			return fmt.Errorf("%w: npc %d at tile (%d,%d)", ErrSpawn, i, sp.Col, sp.Row)
		}
		if _, ok := world.ParseDirection(sp.Facing); sp.Facing != "" && !ok {
			return fmt.Errorf("%w: npc %d facing %q", ErrSpawn, i, sp.Facing)
		}
	}
	return nil
}

func (g *Game) warnBlockedSpawns() {
	blocked := func(col, row int) bool {
		for _, layer := range []int{world.LayerGround, world.LayerOverhead} {
			if g.ctx.Catalog.IsCollidable(g.ctx.Grid.TileAt(layer, col, row)) {
				return true
			}
		}
		return false
	}
	if blocked(g.cfg.Player.SpawnCol, g.cfg.Player.SpawnRow) {
		g.logger.Warn("player spawns on a solid tile", "col", g.cfg.Player.SpawnCol, "row", g.cfg.Player.SpawnRow)
	}
	for _, sp := range g.cfg.Spawns.NPCs {
		if blocked(sp.Col, sp.Row) {
			g.logger.Warn("npc spawns on a solid tile", "col", sp.Col, "row", sp.Row)
		}
	}
}

func playerTuning(p config.PlayerConfig) actor.PlayerTuning {
	return actor.PlayerTuning{
		AttackCost:           p.AttackCost,
		AttackDamage:         p.AttackDamage,
		AttackTicks:          p.AttackTicks,
		AttackSpeed:          p.AttackSpeed,
		AttackReach:          p.AttackReach,
		StaminaRegenAmount:   p.StaminaRegenAmount,
		StaminaRegenInterval: p.StaminaRegenInterval,
		DeathRegenAmount:     p.DeathRegenAmount,
		DeathRegenInterval:   p.DeathRegenInterval,
		ReviveFraction:       p.ReviveFraction,
	}
}

func hitbox(h config.HitboxConfig) core.Rect {
	return core.NewRect(h.X, h.Y, h.Width, h.Height)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// Reset places the player and every NPC at their spawn points and restarts
// the clock.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.ctx.Reset(runtime.Seed)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	pc := g.cfg.Player
	px, py := g.ctx.TileOrigin(pc.SpawnCol, pc.SpawnRow)
	g.ctx.Add(world.NewPlayer(px, py, pc.Speed, hitbox(pc.Hitbox), world.PlayerData{
		Health:     pc.MaxHealth,
		MaxHealth:  pc.MaxHealth,
		Stamina:    pc.MaxStamina,
		MaxStamina: pc.MaxStamina,
	}))

	nc := g.cfg.NPC
	for _, sp := range g.cfg.Spawns.NPCs {
		x, y := g.ctx.TileOrigin(sp.Col, sp.Row)
		npc := world.NewNPC(x, y, nc.Speed, hitbox(nc.Hitbox), world.NPCData{
			Health:    nc.MaxHealth,
			MaxHealth: nc.MaxHealth,
		})
		if d, ok := world.ParseDirection(sp.Facing); ok {
			npc.Facing = d
		}
		g.ctx.Add(npc)
	}

	g.intents = g.intents[:0]
	g.state = StatePlaying
	g.tickCount = 0
	g.defeated = 0
	g.deaths = 0

	g.logger.Debug("quest reset", "seed", runtime.Seed, "npcs", len(g.ctx.NPCs),
		"map", fmt.Sprintf("%dx%d", g.ctx.Grid.Cols(), g.ctx.Grid.Rows()))
}

// Reload swaps in a new configuration and map, then restarts the quest.
// On error the running quest is left untouched.
func (g *Game) Reload(cfg config.QuestConfig, grid *world.Grid, catalog *world.Catalog) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	ctx, err := world.NewContext(grid, catalog, cfg.World.TileSize, g.runtime.Seed)
	if err != nil {
		return fmt.Errorf("quest: %w", err)
	}
	if err := checkSpawns(cfg, grid); err != nil {
		return err
	}
	g.cfg = cfg
	g.ctx = ctx
	g.playerTuning = playerTuning(cfg.Player)
	g.warnBlockedSpawns()
	g.Reset(g.runtime)
	g.logger.Info("quest reloaded")
	return nil
}

// SetDisplay applies brightness and language settings. Out-of-range values
// are clamped and unknown languages fall back to English.
func (g *Game) SetDisplay(d Display) {
	d.Brightness = core.Clamp(d.Brightness, 0, 100)
	if !i18n.Supported(d.Language) {
		d.Language = i18n.English
	}
	g.display = d
}

// SetMeasuredFPS records the frame rate the platform observes, shown on the
// debug line.
func (g *Game) SetMeasuredFPS(fps float64) {
	g.fps = fps
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.state == StateCleared {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}

	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePlaying:
			g.state = StatePaused
		case StatePaused:
			g.state = StatePlaying
		}
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.ctx.Tick++
	g.update(in)

	return core.StepResult{State: g.State()}
}

// update runs one tick: player, NPCs, combat, despawn.
func (g *Game) update(in core.InputFrame) {
	ctx := g.ctx
	player := ctx.Player

	dx, dy := in.Axis()
	ev := actor.UpdatePlayer(ctx, player, actor.PlayerInput{
		DX:     dx,
		DY:     dy,
		Attack: in.Has(core.ActionAttack),
	}, g.playerTuning)
	if ev.Swung {
		g.logger.Debug("swing", "tick", g.tickCount, "dir", player.Player.AttackDir, "stamina", player.Player.Stamina)
	}
	if ev.Revived {
		g.logger.Info("player revived", "tick", g.tickCount, "health", player.Player.Health)
	}

	tuning := g.npcTuning()
	g.intents = g.intents[:0]
	for _, npc := range ctx.NPCs {
		if intent, ok := actor.UpdateNPC(ctx, npc, tuning); ok {
			g.intents = append(g.intents, intent)
		}
	}

	g.resolveCombat()

	if n := ctx.RemoveDead(); n > 0 {
		g.defeated += n
		g.logger.Debug("npcs despawned", "count", n, "remaining", len(ctx.NPCs))
	}

	if len(ctx.NPCs) == 0 {
		g.state = StateCleared
		g.logger.Info("level cleared", "defeated", g.defeated, "ticks", g.tickCount, "deaths", g.deaths)
	}
}

// resolveCombat lands the player's swing first, then the NPC hits queued this
// tick. An NPC killed by the swing does not get its hit in.
func (g *Game) resolveCombat() {
	player := g.ctx.Player
	pc := g.cfg.Player

	for _, npc := range g.ctx.NPCs {
		if !actor.Strikes(player, npc, pc.AttackReach) {
			continue
		}
		landed, killed := actor.HitNPC(npc, player.Player.AttackSeq, pc.AttackDamage)
		if landed {
			g.logger.Debug("hit npc", "id", npc.ID, "health", npc.NPC.Health, "killed", killed)
		}
	}

	for _, intent := range g.intents {
		src := g.npcByID(intent.SourceID)
		if src == nil || !src.Alive() {
			continue
		}
		if actor.DamagePlayer(player, intent.Damage) {
			g.deaths++
			g.logger.Info("player died", "tick", g.tickCount, "by", intent.SourceID)
		}
	}
}

func (g *Game) npcByID(id int) *world.Entity {
	for _, npc := range g.ctx.NPCs {
		if npc.ID == id {
			return npc
		}
	}
	return nil
}

// npcTuning returns the NPC parameters scaled by the current difficulty.
func (g *Game) npcTuning() actor.NPCTuning {
	nc := g.cfg.NPC
	return actor.NPCTuning{
		AggroRange:     g.difficulty.AggroRange(nc.AggroRange, g.defeated, g.tickCount),
		Hysteresis:     nc.Hysteresis,
		AttackDamage:   g.difficulty.Damage(nc.AttackDamage, g.defeated, g.tickCount),
		AttackCooldown: g.difficulty.Cooldown(nc.AttackCooldown, g.defeated, g.tickCount),
		WanderInterval: nc.WanderInterval,
		RespectTiles:   nc.RespectTiles,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.defeated,
		GameOver: g.state == StateCleared,
		Won:      g.state == StateCleared,
		Paused:   g.state == StatePaused,
	}
}

// Ticks returns how many simulation ticks have been played.
func (g *Game) Ticks() int {
	return g.tickCount
}

func init() {
	registry.Register(ID, Title, func(cfg config.QuestConfig) (registry.Game, error) {
		grid, catalog, err := maps.Load(cfg.World)
		if err != nil {
			return nil, err
		}
		g, err := New(cfg, grid, catalog, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
