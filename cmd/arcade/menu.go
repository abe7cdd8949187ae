package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kana-arcade/internal/platform/tui"
	"github.com/vovakirdan/kana-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Kana Fall opens its category and level picker; its Options page
switches between hiragana and romaji answers and sets the difficulty.
After a game ends, press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scores and progress
  Esc          - Back
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 60
  arcade menu --profile alice --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for this session")
}

func runMenu(_ *cobra.Command, _ []string) {
	deps := openSession()
	defer closeSession(deps)
	applyDifficulty(deps)

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(deps.Profile(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(deps, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		category, level := "", 0
		if gameID == "kanafall" {
			selection, quit, selErr := tui.RunKanafallSelector(deps, cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			if quit {
				break
			}
			// User pressed back
			if selection == nil {
				continue
			}
			category, level = selection.Category, selection.Level
		}

		game, err := registry.Create(gameID, deps.Env(category, level))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Update seed for each game
		cfg.Seed = time.Now().UnixNano()

		backToMenu, err := tui.Run(game, deps, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !backToMenu {
			break
		}
	}
}
