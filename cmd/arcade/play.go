package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/platform/tui"
	"github.com/vovakirdan/kana-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagCategory   string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Pet controls:
  F          - Feed
  T          - Play
  C          - Clean
  Space      - Pet
  P          - Pause (Esc while paused returns)

Kana Fall controls:
  1-6        - Pick an answer
  N          - Next level (after a level is complete)
  R          - Restart (after the run ends)
  P          - Pause
  Q/Ctrl+C   - Quit

Without --category, Kana Fall opens the category and level picker.

Difficulty options (Kana Fall):
  easy   - Slower blocks, longer spawn interval
  normal - Default speed, ramps up every few seconds
  hard   - Faster blocks, shorter spawn interval
  fixed  - No ramp, speed stays at the starting value

Examples:
  arcade play pet
  arcade play kanafall
  arcade play kanafall --category numbers --level 2
  arcade play kanafall --difficulty hard
  arcade play kanafall --config ./my-kanafall.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagCategory, "category", "", "Kana Fall category ID")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Kana Fall level number")
}

// applyDifficulty overrides the saved preset for this run only.
func applyDifficulty(deps *tui.Deps) {
	if flagDifficulty != "" {
		deps.Difficulty = config.ParsePreset(flagDifficulty)
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	deps := openSession()
	defer closeSession(deps)
	cfg := runtimeConfig()

	category, level := "", 0
	if gameID == "kanafall" {
		if flagCategory == "" {
			selection, quit, err := tui.RunKanafallSelector(deps, cfg)
			if err != nil {
				return err
			}
			// User pressed back or quit
			if selection == nil || quit {
				return nil
			}
			category, level = selection.Category, selection.Level
		} else {
			category, level = flagCategory, flagLevel
			if _, ok := deps.Library.Category(category); !ok {
				return fmt.Errorf("unknown category %q", category)
			}
			if !deps.Tracker.IsUnlocked(category, level) {
				return fmt.Errorf("level %d of %q is locked, complete the previous level first", level, category)
			}
		}
	}
	applyDifficulty(deps)

	game, err := registry.Create(gameID, deps.Env(category, level))
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if _, err := tui.Run(game, deps, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
