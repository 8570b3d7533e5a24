package config

import (
	_ "embed"
)

//go:embed defaults/quest.yaml
var defaultQuestYAML []byte

// DefaultQuestYAML returns the built-in configuration file contents.
func DefaultQuestYAML() []byte {
	return defaultQuestYAML
}

// DefaultQuestConfig returns the default quest configuration.
func DefaultQuestConfig() QuestConfig {
	return QuestConfig{
		World: WorldConfig{
			TileSize: 48,
			Cols:     100,
			Rows:     100,
		},
		Player: PlayerConfig{
			SpawnCol: 23,
			SpawnRow: 21,
			Speed:    4,
			Hitbox:   HitboxConfig{X: 8, Y: 16, Width: 16, Height: 16},

			MaxHealth:  100,
			MaxStamina: 100,

			AttackCost:   25,
			AttackDamage: 1,
			AttackTicks:  20,
			AttackSpeed:  5,
			AttackReach:  24,

			StaminaRegenAmount:   1,
			StaminaRegenInterval: 6,

			DeathRegenAmount:   1,
			DeathRegenInterval: 10,
			ReviveFraction:     0.5,
		},
		NPC: NPCConfig{
			Speed:          1,
			Hitbox:         HitboxConfig{X: 8, Y: 16, Width: 16, Height: 16},
			MaxHealth:      1,
			AggroRange:     100,
			Hysteresis:     0,
			AttackDamage:   10,
			AttackCooldown: 60,
			WanderInterval: 100,
			RespectTiles:   true,
		},
		Spawns: SpawnsConfig{
			NPCs: []SpawnPoint{
				{Col: 24, Row: 21},
				{Col: 19, Row: 14},
				{Col: 25, Row: 28},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 36000,
			},
			Scaling: ScalingConfig{
				DamageMultiplier:  1.0,
				AggroBonus:        48,
				CooldownReduction: 30,
			},
		},
	}
}
