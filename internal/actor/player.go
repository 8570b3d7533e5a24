// Package actor holds the per-variant controllers that advance entities one
// tick at a time. Controllers mutate only the entity they are given; effects
// on other entities are returned to the caller.
package actor

import (
	"math"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/world"
)

// Walk animation cadence shared by every entity.
const (
	WalkFrames     = 2
	WalkFrameTicks = 12
	AttackFrames   = 2
)

// PlayerTuning holds the player's combat and resource parameters.
type PlayerTuning struct {
	AttackCost   int
	AttackDamage int
	AttackTicks  int
	AttackSpeed  int
	AttackReach  int

	StaminaRegenAmount   int
	StaminaRegenInterval int

	DeathRegenAmount   int
	DeathRegenInterval int
	ReviveFraction     float64
}

// PlayerInput is the intent read from the keyboard for one tick.
type PlayerInput struct {
	DX, DY int // -1, 0 or 1
	Attack bool
}

// PlayerEvents reports what happened during a player update.
type PlayerEvents struct {
	Swung   bool
	Revived bool
	Blocked world.BlockedAxes
}

// UpdatePlayer advances the player by one tick.
func UpdatePlayer(ctx *world.Context, e *world.Entity, in PlayerInput, t PlayerTuning) PlayerEvents {
	var ev PlayerEvents
	if e == nil || e.Player == nil {
		return ev
	}
	p := e.Player

	regenStamina(p, t)

	if p.Dead {
		if regenWhileDead(p, t) {
			e.X, e.Y = p.SpawnX, p.SpawnY
			e.Facing = world.DirDown
			e.Anim.Reset()
			ev.Revived = true
		}
		return ev
	}

	// A swing locks movement for exactly AttackTicks ticks, counting the one
	// it starts on. The tick it ends on moves normally but cannot swing again.
	if p.State == world.PlayerAttacking {
		p.AttackTicksLeft--
		e.Anim.Advance(AttackFrames, t.AttackSpeed)
		if p.AttackTicksLeft > 0 {
			return ev
		}
		p.AttackTicksLeft = 0
		p.State = world.PlayerIdle
		e.Anim.Reset()
	} else if in.Attack && p.Stamina >= t.AttackCost {
		p.Stamina -= t.AttackCost
		p.State = world.PlayerAttacking
		p.AttackTicksLeft = t.AttackTicks
		p.AttackDir = e.Facing
		p.AttackSeq++
		e.Anim.Reset()
		ev.Swung = true
		return ev
	}

	dir, moving := world.DirectionFromDelta(in.DX, in.DY)
	if !moving {
		p.State = world.PlayerIdle
		return ev
	}
	p.State = world.PlayerMoving
	e.Facing = dir
	ev.Blocked = ctx.Resolver.AttemptMove(e, in.DX*e.Speed, in.DY*e.Speed)
	e.Anim.Advance(WalkFrames, WalkFrameTicks)
	return ev
}

func regenStamina(p *world.PlayerData, t PlayerTuning) {
	if t.StaminaRegenInterval <= 0 || p.Stamina >= p.MaxStamina {
		p.StaminaCounter = 0
		return
	}
	p.StaminaCounter++
	if p.StaminaCounter >= t.StaminaRegenInterval {
		p.StaminaCounter = 0
		p.Stamina = min(p.Stamina+t.StaminaRegenAmount, p.MaxStamina)
	}
}

// regenWhileDead restores health on the death interval and reports whether
// the revive threshold was reached this tick.
func regenWhileDead(p *world.PlayerData, t PlayerTuning) bool {
	if t.DeathRegenInterval <= 0 {
		return false
	}
	p.ReviveCounter++
	if p.ReviveCounter < t.DeathRegenInterval {
		return false
	}
	p.ReviveCounter = 0
	p.Health = min(p.Health+t.DeathRegenAmount, p.MaxHealth)
	if p.Health < ReviveThreshold(p.MaxHealth, t.ReviveFraction) {
		return false
	}
	p.Dead = false
	p.State = world.PlayerIdle
	return true
}

// ReviveThreshold is the health a dead player must regain to get back up.
func ReviveThreshold(maxHealth int, fraction float64) int {
	return int(math.Ceil(float64(maxHealth) * fraction))
}

// DamagePlayer applies a hit and reports whether it killed the player.
// Hits on a dead player are ignored.
func DamagePlayer(e *world.Entity, amount int) bool {
	if e == nil || e.Player == nil || e.Player.Dead || amount <= 0 {
		return false
	}
	p := e.Player
	p.Health = max(p.Health-amount, 0)
	if p.Health > 0 {
		return false
	}
	p.Dead = true
	p.State = world.PlayerIdle
	p.AttackTicksLeft = 0
	p.ReviveCounter = 0
	e.Anim.Reset()
	return true
}

// AttackBox is the area covered by the player's current swing: the hitbox
// stretched by reach toward the attack direction.
func AttackBox(e *world.Entity, reach int) core.Rect {
	b := e.Bounds()
	switch e.Player.AttackDir {
	case world.DirUp:
		b.Y -= reach
		b.H += reach
	case world.DirDown:
		b.H += reach
	case world.DirLeft:
		b.X -= reach
		b.W += reach
	case world.DirRight:
		b.W += reach
	}
	return b
}

// Strikes reports whether the player's active swing reaches the NPC.
func Strikes(player, npc *world.Entity, reach int) bool {
	if player == nil || npc == nil || player.Player == nil || player.Player.State != world.PlayerAttacking {
		return false
	}
	if world.CheckOverlap(player, npc) {
		return true
	}
	return AttackBox(player, reach).Intersects(npc.Bounds())
}
