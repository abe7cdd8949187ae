// arcade is a terminal arcade with a virtual pet and a falling-block
// Japanese vocabulary game.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade progress          - Show or reset level progress
//	arcade import <file>     - Convert a vocabulary spreadsheet to YAML
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.arcade/scores.db)
//	--profile <name>   - Player profile for scores and progress (default: local)
//	--vocab <path>     - Vocabulary file (.yaml or .xlsx)
//	--log-file <path>  - Write debug logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/progress"

	// Import games to register them
	_ "github.com/vovakirdan/kana-arcade/internal/games/kanafall"
	_ "github.com/vovakirdan/kana-arcade/internal/games/pet"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagProfile      string
	flagVocabPath    string
	flagSettingsPath string
	flagLogFile      string

	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Kana Arcade - a virtual pet and a kanji game in your terminal",
	Long: `Kana Arcade is a terminal arcade with two casual games:

  pet       - keep a virtual pet fed, entertained and clean
  kanafall  - stop falling kanji by picking their reading

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores
  progress  - Show or reset unlocked levels and personal bests
  import    - Convert a vocabulary spreadsheet to YAML

Examples:
  arcade list
  arcade play pet
  arcade play kanafall --category animals --level 1
  arcade menu --profile alice
  arcade serve --ssh :2222
  arcade scores kanafall`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database (env ARCADE_DB)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", progress.DefaultProfile, "Player profile (env ARCADE_PROFILE)")
	rootCmd.PersistentFlags().StringVar(&flagVocabPath, "vocab", "", "Vocabulary file, .yaml or .xlsx (env ARCADE_VOCAB)")
	rootCmd.PersistentFlags().StringVar(&flagSettingsPath, "settings", "", "Settings file (env ARCADE_SETTINGS)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(importCmd)
}

// setup applies environment overrides to flags left at their defaults
// and opens the log file.
func setup(cmd *cobra.Command, _ []string) error {
	env := config.LoadEnv()
	flags := cmd.Flags()

	if !flags.Changed("db") && env.DBPath != "" {
		flagDBPath = env.DBPath
	}
	if !flags.Changed("profile") && env.Profile != "" {
		flagProfile = env.Profile
	}
	if !flags.Changed("vocab") && env.VocabPath != "" {
		flagVocabPath = env.VocabPath
	}
	if !flags.Changed("settings") {
		flagSettingsPath = env.SettingsPath
	}

	// Logs never go to the terminal while the alt-screen is active
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
			Prefix:          "arcade",
		})
	}
	return nil
}
