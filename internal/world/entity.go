package world

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
)

// Kind tags the variant held by an Entity.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindNPC
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindNPC:
		return "npc"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// PlayerState is the action state of the player.
type PlayerState uint8

const (
	PlayerIdle PlayerState = iota
	PlayerMoving
	PlayerAttacking
)

func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerMoving:
		return "moving"
	case PlayerAttacking:
		return "attacking"
	}
	return "unknown"
}

// NPCState is the behavior state of an NPC.
type NPCState uint8

const (
	NPCWandering NPCState = iota
	NPCAggroed
)

func (s NPCState) String() string {
	switch s {
	case NPCWandering:
		return "wandering"
	case NPCAggroed:
		return "aggroed"
	}
	return "unknown"
}

// PlayerData is the variant data of the player entity.
type PlayerData struct {
	State      PlayerState
	Health     int
	MaxHealth  int
	Stamina    int
	MaxStamina int
	Dead       bool

	AttackTicksLeft int
	AttackDir       Direction
	// AttackSeq increments on every swing so a single swing hits each NPC once.
	AttackSeq int

	StaminaCounter int
	ReviveCounter  int

	SpawnX, SpawnY int
}

// NPCData is the variant data of an NPC entity.
type NPCData struct {
	State          NPCState
	Health         int
	MaxHealth      int
	AttackCounter  int
	WanderCounter  int
	LastHitBySwing int
}

// Entity is a movable actor in the world. Kind selects which of Player or NPC
// is set; the other is nil.
type Entity struct {
	ID     int
	Kind   Kind
	X, Y   int // world pixel origin
	Speed  int // pixels per tick
	Hitbox core.Rect
	Facing Direction

	// CollisionOn is set for the tick in which a move was blocked by terrain.
	CollisionOn bool

	Anim Animator

	Player *PlayerData
	NPC    *NPCData
}

// NewPlayer builds a player entity at a world pixel position.
func NewPlayer(x, y, speed int, hitbox core.Rect, data PlayerData) *Entity {
	data.SpawnX, data.SpawnY = x, y
	return &Entity{
		Kind:   KindPlayer,
		X:      x,
		Y:      y,
		Speed:  speed,
		Hitbox: hitbox,
		Facing: DirDown,
		Player: &data,
	}
}

// NewNPC builds an NPC entity at a world pixel position.
func NewNPC(x, y, speed int, hitbox core.Rect, data NPCData) *Entity {
	return &Entity{
		Kind:   KindNPC,
		X:      x,
		Y:      y,
		Speed:  speed,
		Hitbox: hitbox,
		Facing: DirDown,
		NPC:    &data,
	}
}

// Bounds returns the hitbox in world coordinates.
func (e *Entity) Bounds() core.Rect {
	return e.Hitbox.Translate(e.X, e.Y)
}

// Alive reports whether the entity still takes part in the simulation.
func (e *Entity) Alive() bool {
	switch e.Kind {
	case KindPlayer:
		return e.Player != nil && !e.Player.Dead
	case KindNPC:
		return e.NPC != nil && e.NPC.Health > 0
	}
	return false
}
