// Package config provides YAML-based game configuration loading, validation,
// hot reload and difficulty management for tilequest.
package config

// QuestConfig contains all configuration for the tile quest game.
type QuestConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	NPC        NPCConfig        `yaml:"npc"`
	Spawns     SpawnsConfig     `yaml:"spawns"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig describes the map and its geometry.
type WorldConfig struct {
	TileSize int    `yaml:"tile_size"` // pixels per tile edge
	Cols     int    `yaml:"cols"`      // expected map width in tiles, 0 accepts any
	Rows     int    `yaml:"rows"`      // expected map height in tiles, 0 accepts any
	Map      string `yaml:"map"`       // map file path, empty uses the built-in world
	Catalog  string `yaml:"catalog"`   // tile catalog path, empty uses the built-in tiles
}

// HitboxConfig is a collision box relative to an entity's origin.
type HitboxConfig struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlayerConfig defines the player's movement, combat and resources.
type PlayerConfig struct {
	SpawnCol int          `yaml:"spawn_col"`
	SpawnRow int          `yaml:"spawn_row"`
	Speed    int          `yaml:"speed"` // pixels per tick
	Hitbox   HitboxConfig `yaml:"hitbox"`

	MaxHealth  int `yaml:"max_health"`
	MaxStamina int `yaml:"max_stamina"`

	AttackCost   int `yaml:"attack_cost"`   // stamina per swing
	AttackDamage int `yaml:"attack_damage"` // NPC health removed per hit
	AttackTicks  int `yaml:"attack_ticks"`  // swing duration
	AttackSpeed  int `yaml:"attack_speed"`  // ticks per swing animation frame
	AttackReach  int `yaml:"attack_reach"`  // pixels the swing extends past the hitbox

	StaminaRegenAmount   int `yaml:"stamina_regen_amount"`
	StaminaRegenInterval int `yaml:"stamina_regen_interval"`

	DeathRegenAmount   int     `yaml:"death_regen_amount"`
	DeathRegenInterval int     `yaml:"death_regen_interval"`
	ReviveFraction     float64 `yaml:"revive_fraction"` // of max health
}

// NPCConfig defines NPC behavior shared by every spawn.
type NPCConfig struct {
	Speed          int          `yaml:"speed"`
	Hitbox         HitboxConfig `yaml:"hitbox"`
	MaxHealth      int          `yaml:"max_health"`
	AggroRange     int          `yaml:"aggro_range"` // pixels, Euclidean
	Hysteresis     int          `yaml:"hysteresis"`  // extra pixels before giving up the chase
	AttackDamage   int          `yaml:"attack_damage"`
	AttackCooldown int          `yaml:"attack_cooldown"` // ticks between hits
	WanderInterval int          `yaml:"wander_interval"` // ticks between direction changes
	RespectTiles   bool         `yaml:"respect_tiles"`   // wandering is blocked by terrain
}

// SpawnPoint is a tile coordinate, with an optional initial heading.
type SpawnPoint struct {
	Col    int    `yaml:"col"`
	Row    int    `yaml:"row"`
	Facing string `yaml:"facing,omitempty"` // up, down, left or right; empty is down
}

// SpawnsConfig lists where NPCs appear at level start.
type SpawnsConfig struct {
	NPCs []SpawnPoint `yaml:"npcs"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DamageMultiplier  float64 `yaml:"damage_multiplier"`  // added to NPC damage at max difficulty
	AggroBonus        int     `yaml:"aggro_bonus"`        // aggro range increase at max difficulty
	CooldownReduction int     `yaml:"cooldown_reduction"` // attack cooldown reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset resolves a preset name. The empty string means no preset: the
// configuration's own difficulty section applies.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
