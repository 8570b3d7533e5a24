package actor

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/world"
)

// NPCTuning holds NPC behavior parameters, possibly scaled by difficulty.
type NPCTuning struct {
	AggroRange     int
	Hysteresis     int
	AttackDamage   int
	AttackCooldown int
	WanderInterval int
	RespectTiles   bool
}

// AttackIntent is a hit an NPC wants to land on the player. The update loop
// applies it after every entity has moved.
type AttackIntent struct {
	SourceID int
	Damage   int
}

// UpdateNPC advances an NPC by one tick. It returns an attack intent when the
// NPC swings at the player.
func UpdateNPC(ctx *world.Context, e *world.Entity, t NPCTuning) (AttackIntent, bool) {
	if e == nil || e.NPC == nil || !e.Alive() {
		return AttackIntent{}, false
	}
	n := e.NPC
	n.AttackCounter++

	player := ctx.Player
	n.State = nextNPCState(n.State, e, player, t)

	switch n.State {
	case world.NPCAggroed:
		e.Facing = FaceToward(e, player)
		e.Anim.Reset()
		if n.AttackCounter >= t.AttackCooldown {
			n.AttackCounter = 0
			return AttackIntent{SourceID: e.ID, Damage: t.AttackDamage}, true
		}
	case world.NPCWandering:
		wander(ctx, e, t)
	}
	return AttackIntent{}, false
}

// nextNPCState applies the aggro transitions. A missing or dead player is
// treated as out of range.
func nextNPCState(cur world.NPCState, e, player *world.Entity, t NPCTuning) world.NPCState {
	if player == nil || !player.Alive() {
		return world.NPCWandering
	}
	d2 := world.DistanceSq(e, player)
	switch cur {
	case world.NPCWandering:
		if d2 <= t.AggroRange*t.AggroRange {
			return world.NPCAggroed
		}
	case world.NPCAggroed:
		leave := t.AggroRange + t.Hysteresis
		if d2 > leave*leave {
			return world.NPCWandering
		}
	}
	return cur
}

// FaceToward picks the facing from e to target along the axis with the larger
// distance. Ties go to the horizontal axis.
func FaceToward(e, target *world.Entity) world.Direction {
	dx := target.X - e.X
	dy := target.Y - e.Y
	if core.Abs(dx) >= core.Abs(dy) {
		if dx < 0 {
			return world.DirLeft
		}
		return world.DirRight
	}
	if dy < 0 {
		return world.DirUp
	}
	return world.DirDown
}

func wander(ctx *world.Context, e *world.Entity, t NPCTuning) {
	n := e.NPC
	n.WanderCounter++
	if n.WanderCounter >= t.WanderInterval {
		n.WanderCounter = 0
		e.Facing = world.Directions[ctx.Rng.Intn(len(world.Directions))]
	}

	if t.RespectTiles {
		if ctx.Resolver.MoveDir(e, e.Facing).Any() {
			// Pick a new heading next tick instead of pushing into the wall.
			n.WanderCounter = t.WanderInterval
		}
	} else {
		dx, dy := e.Facing.Delta()
		e.X += dx * e.Speed
		e.Y += dy * e.Speed
		ctx.ClampToWorld(e)
	}
	e.Anim.Advance(WalkFrames, WalkFrameTicks)
}

// HitNPC applies one swing of the player to an NPC. A swing lands at most once
// per NPC; the return value reports whether this hit killed it.
func HitNPC(e *world.Entity, swing, damage int) (landed, killed bool) {
	if e == nil || e.NPC == nil || !e.Alive() || e.NPC.LastHitBySwing == swing {
		return false, false
	}
	e.NPC.LastHitBySwing = swing
	e.NPC.Health = max(e.NPC.Health-damage, 0)
	return true, e.NPC.Health == 0
}
