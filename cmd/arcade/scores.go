package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kana-arcade/internal/registry"
	"github.com/vovakirdan/kana-arcade/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game, across all profiles.
Without a game, shows a summary of every game played so far.

Examples:
  arcade scores
  arcade scores kanafall
  arcade scores kanafall --limit 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runScoresSummary()
	}
	gameID := args[0]

	title, ok := registry.Title(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-12s  %s\n", i+1, entry.Score, entry.Profile, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Average: %.1f  Games: %d\n", stats.HighScore, stats.AvgScore, stats.GamesCount)
	}
	return nil
}

// runScoresSummary prints aggregated stats for every played game.
func runScoresSummary() error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %s\n", "Game", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %s\n", "----", "-----", "----", "-------", "-----------")
	for _, g := range registry.List() {
		stats, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-16s  %-6d  %-8d  %-8.1f  %s\n",
			g.Title, stats.GamesCount, stats.HighScore, stats.AvgScore,
			stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
