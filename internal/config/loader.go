package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// QuestFile is the configuration file name looked up in the search path.
const QuestFile = "quest.yaml"

// LoadQuest loads the quest configuration and reports where it came from.
// Search order: customPath -> ~/.tilequest/configs/quest.yaml -> ./configs/quest.yaml -> embedded default
//
// Files are decoded over the defaults so a partial file only overrides the
// keys it names. The result is validated.
func LoadQuest(customPath string) (QuestConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadQuestFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(QuestFile), filepath.Join("configs", QuestFile)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if cfg, err := LoadQuestFile(path); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultQuestConfig()
	if err := yaml.Unmarshal(defaultQuestYAML, &cfg); err != nil {
		return DefaultQuestConfig(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

// LoadQuestFile reads and validates a single configuration file.
func LoadQuestFile(path string) (QuestConfig, error) {
	cfg := DefaultQuestConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the game cannot run with.
func Validate(cfg QuestConfig) error {
	positive := []struct {
		name  string
		value int
	}{
		{"world.tile_size", cfg.World.TileSize},
		{"player.speed", cfg.Player.Speed},
		{"player.hitbox.width", cfg.Player.Hitbox.Width},
		{"player.hitbox.height", cfg.Player.Hitbox.Height},
		{"player.max_health", cfg.Player.MaxHealth},
		{"player.max_stamina", cfg.Player.MaxStamina},
		{"player.attack_damage", cfg.Player.AttackDamage},
		{"player.attack_ticks", cfg.Player.AttackTicks},
		{"player.attack_speed", cfg.Player.AttackSpeed},
		{"player.stamina_regen_interval", cfg.Player.StaminaRegenInterval},
		{"player.death_regen_amount", cfg.Player.DeathRegenAmount},
		{"player.death_regen_interval", cfg.Player.DeathRegenInterval},
		{"npc.speed", cfg.NPC.Speed},
		{"npc.hitbox.width", cfg.NPC.Hitbox.Width},
		{"npc.hitbox.height", cfg.NPC.Hitbox.Height},
		{"npc.max_health", cfg.NPC.MaxHealth},
		{"npc.attack_cooldown", cfg.NPC.AttackCooldown},
		{"npc.wander_interval", cfg.NPC.WanderInterval},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value int
	}{
		{"world.cols", cfg.World.Cols},
		{"world.rows", cfg.World.Rows},
		{"player.attack_cost", cfg.Player.AttackCost},
		{"player.attack_reach", cfg.Player.AttackReach},
		{"player.stamina_regen_amount", cfg.Player.StaminaRegenAmount},
		{"npc.aggro_range", cfg.NPC.AggroRange},
		{"npc.hysteresis", cfg.NPC.Hysteresis},
		{"npc.attack_damage", cfg.NPC.AttackDamage},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalid, p.name, p.value)
		}
	}

	for _, sp := range []struct {
		name  string
		value int
	}{{"player.speed", cfg.Player.Speed}, {"npc.speed", cfg.NPC.Speed}} {
		if sp.value > cfg.World.TileSize {
			return fmt.Errorf("%w: %s %d exceeds world.tile_size %d",
				ErrInvalid, sp.name, sp.value, cfg.World.TileSize)
		}
	}
	if cfg.Player.ReviveFraction <= 0 || cfg.Player.ReviveFraction > 1 {
		return fmt.Errorf("%w: player.revive_fraction must be in (0, 1], got %g", ErrInvalid, cfg.Player.ReviveFraction)
	}
	if cfg.Player.AttackCost > cfg.Player.MaxStamina {
		return fmt.Errorf("%w: player.attack_cost %d exceeds max_stamina %d",
			ErrInvalid, cfg.Player.AttackCost, cfg.Player.MaxStamina)
	}
	switch cfg.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		return fmt.Errorf("%w: difficulty.progression.type %q", ErrInvalid, cfg.Difficulty.Progression.Type)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilequest", "configs", filename)
}

// ApplyQuestPreset modifies the config based on a difficulty preset. The empty
// preset leaves cfg unchanged.
func ApplyQuestPreset(cfg *QuestConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHealth = 150
		cfg.Player.StaminaRegenInterval = 4
	case DifficultyHard:
		cfg.Player.MaxHealth = 70
		cfg.Player.StaminaRegenInterval = 8
	}
}
