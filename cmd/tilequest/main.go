// tilequest is a tile-based action game played in the terminal.
//
// Usage:
//
//	tilequest play               - Play the quest
//	tilequest menu               - Start at the title menu
//	tilequest serve              - Start SSH server for remote play
//	tilequest scores             - Show high scores
//	tilequest list               - List available games
//	tilequest check-map <file>   - Validate a map file against a tile catalog
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tilequest/scores.db)
//	--log-file <path>     - Write logs to a file (default: ~/.tilequest/tilequest.log)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/games/quest"
	"github.com/vovakirdan/tilequest/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

// logger is configured by rootCmd before any subcommand runs.
var logger = log.New(os.Stderr)

func main() {
	defer closeLog()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilequest",
	Short: "Tile Quest - a tile-based action game in your terminal",
	Long: `Tile Quest is a top-down action game played on a tile map.
Walk the world, keep out of the walls and clear it of wandering foes.

Available commands:
  play       - Start a game directly
  menu       - Title menu with settings and scores
  serve      - Start SSH server for remote play
  scores     - View high scores
  list       - Show all available games
  check-map  - Validate a map file

Examples:
  tilequest play
  tilequest play --difficulty hard --watch
  tilequest menu
  tilequest serve --ssh :2222
  tilequest check-map ./world.map --catalog ./tiles.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd.Name() == "serve")
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilequest/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.tilequest/tilequest.log", "Log file used while the game owns the terminal")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkMapCmd)
}

var logFile *os.File

// setupLogging points the logger at the log file, or at stderr when the
// terminal is free for it.
func setupLogging(toStderr bool) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	opts := log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "tilequest",
	}
	if toStderr || flagLogFile == "" {
		logger = log.NewWithOptions(os.Stderr, opts)
		quest.SetLogger(logger)
		return nil
	}

	path, err := storage.ExpandHome(flagLogFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger = log.NewWithOptions(f, opts)
	quest.SetLogger(logger)
	return nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
