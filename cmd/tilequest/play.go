package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/games/quest"
	"github.com/vovakirdan/tilequest/internal/platform/tui"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMap        string
	flagCatalog    string
	flagWatch      bool
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the quest",
	Long: `Start playing straight away. Leaving the game exits the program.

Controls:
  WASD/Arrows  - Walk
  Space/J      - Swing
  P            - Pause
  Esc          - Pause, press again to leave
  G/F3         - Debug overlay
  R            - Restart (after the level is cleared)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options (default: none, NPCs keep the config's fixed damage,
cooldown and aggro range):
  easy   - More health, foes start gentle
  normal - Foes start at 30% difficulty
  hard   - Less health, foes start at 70% difficulty
  fixed  - No progression, stays at config's initial level

With --watch the configuration file is reloaded whenever it changes.

Examples:
  tilequest play
  tilequest play --difficulty hard
  tilequest play --config ./my-quest.yaml --watch
  tilequest play --map ./cave.map --catalog ./cave.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom quest config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().StringVar(&flagMap, "map", "", "Map file, overrides the config")
		c.Flags().StringVar(&flagCatalog, "catalog", "", "Tile catalog file, overrides the config")
		c.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
		c.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name for scores and settings")
	}
}

func runPlay(_ *cobra.Command, _ []string) error {
	return runSession(tui.ScreenGame)
}

// runSession opens the store and runs a local session starting at start.
func runSession(start tui.Screen) error {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	// Fail early on a broken config or map.
	cfg, source, err := loadQuest(flagConfig, preset)
	if err != nil {
		return err
	}
	if _, err := registry.Create(quest.ID, cfg); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	opts := tui.SessionOptions{
		Store:   store,
		Runtime: runtimeConfig(),
		Player:  flagPlayer,
		NewGame: func() (registry.Game, error) {
			cfg, _, err := loadQuest(flagConfig, preset)
			if err != nil {
				return nil, err
			}
			return registry.Create(quest.ID, cfg)
		},
		Start:  start,
		Logger: logger,
	}

	if flagWatch {
		if source == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch needs a config file, using the built-in config without reload")
		} else {
			w, err := config.NewWatcher(source)
			if err != nil {
				return err
			}
			defer w.Close()
			opts.Watcher = w
			opts.Load = func(path string) (config.QuestConfig, error) {
				cfg, _, err := loadQuest(path, preset)
				return cfg, err
			}
			logger.Info("watching config", "path", w.Path())
		}
	}

	return tui.RunSession(opts)
}

// loadQuest loads the configuration at path (or the search path when empty)
// and applies the preset and command-line overrides.
func loadQuest(path string, preset config.DifficultyPreset) (config.QuestConfig, string, error) {
	cfg, source, err := config.LoadQuest(path)
	if err != nil {
		return cfg, source, err
	}
	config.ApplyQuestPreset(&cfg, preset)
	if flagMap != "" {
		cfg.World.Map = flagMap
	}
	if flagCatalog != "" {
		cfg.World.Catalog = flagCatalog
	}
	return cfg, source, config.Validate(cfg)
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
