package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kana-arcade/internal/registry"
	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows the games registered in the arcade and the vocabulary categories Kana Fall will use.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print games
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")

	// Vocabulary summary for kanafall
	lib, err := vocab.Load(flagVocabPath)
	if err != nil {
		fmt.Printf("Vocabulary: unavailable (%v)\n", err)
		return
	}
	categories, levels, items := lib.Count()
	fmt.Printf("Vocabulary: %d categories, %d levels, %d words\n", categories, levels, items)
	for _, c := range lib.Categories() {
		fmt.Printf("  %-*s  %s %s (%d levels)\n", maxIDLen, c.ID, c.Icon, c.Name, len(c.Levels))
	}
}
