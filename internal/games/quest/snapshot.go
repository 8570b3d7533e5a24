package quest

// NPCSnapshot is the observable state of one NPC.
type NPCSnapshot struct {
	ID      int
	X, Y    int
	Facing  int
	State   string
	Health  int
	Counter int // attack cooldown counter
}

// Snapshot contains the observable game state for tests and replays.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick     uint64
	State    string
	Defeated int
	Deaths   int

	PlayerX, PlayerY int
	Facing           int
	PlayerState      string
	Health           int
	Stamina          int
	Dead             bool
	AttackTicksLeft  int

	NPCs []NPCSnapshot
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	e := g.ctx.Player
	p := e.Player
	snap := Snapshot{
		Tick:     g.ctx.Tick,
		State:    g.state,
		Defeated: g.defeated,
		Deaths:   g.deaths,

		PlayerX:         e.X,
		PlayerY:         e.Y,
		Facing:          int(e.Facing),
		PlayerState:     p.State.String(),
		Health:          p.Health,
		Stamina:         p.Stamina,
		Dead:            p.Dead,
		AttackTicksLeft: p.AttackTicksLeft,

		NPCs: make([]NPCSnapshot, 0, len(g.ctx.NPCs)),
	}
	for _, n := range g.ctx.NPCs {
		snap.NPCs = append(snap.NPCs, NPCSnapshot{
			ID:      n.ID,
			X:       n.X,
			Y:       n.Y,
			Facing:  int(n.Facing),
			State:   n.NPC.State.String(),
			Health:  n.NPC.Health,
			Counter: n.NPC.AttackCounter,
		})
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v int) {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	mix(snap.Defeated)
	mix(snap.Deaths)
	mix(snap.PlayerX)
	mix(snap.PlayerY)
	mix(snap.Facing)
	mix(snap.Health)
	mix(snap.Stamina)
	mix(snap.AttackTicksLeft)
	if snap.Dead {
		mix(1)
	}
	for _, n := range snap.NPCs {
		mix(n.ID)
		mix(n.X)
		mix(n.Y)
		mix(n.Facing)
		mix(n.Health)
		mix(n.Counter)
		if n.State == "aggroed" {
			mix(1)
		}
	}
	return h
}
