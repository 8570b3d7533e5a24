package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/games/quest"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/storage"
)

var flagScoreLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for a game (default: quest).

Examples:
  tilequest scores
  tilequest scores --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := quest.ID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'tilequest list' to see available games", gameID)
	}
	var title string
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tilequest play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-6s  %-8s  %-6s  %s\n", "Rank", "Player", "Score", "Result", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-8s  %-6s  %s\n", "----", "------", "-----", "------", "----", "----")

	for i, entry := range scores {
		result := "-"
		if entry.Won {
			result = "cleared"
		}
		secs := entry.Ticks / 60
		fmt.Printf("  %-4d  %-12s  %-6d  %-8s  %-6s  %s\n", i+1, entry.Player, entry.Score, result,
			fmt.Sprintf("%d:%02d", secs/60, secs%60), entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Runs: %d  Cleared: %d  Best: %d  Average: %.1f\n",
			stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore)
	}
	return nil
}
