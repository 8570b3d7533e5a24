package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start at the title menu",
	Long: `Start in interactive menu mode.

The menu offers Play, Settings, Scores and Quit. Leaving a game returns
to the menu. Settings are saved per player in the scores database.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  tilequest menu
  tilequest menu --fps 30
  tilequest menu --player alice --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runSession(tui.ScreenMenu)
	},
}
