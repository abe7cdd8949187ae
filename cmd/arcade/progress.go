package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/kana-arcade/internal/progress"
	"github.com/vovakirdan/kana-arcade/internal/storage"
	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

var flagResetYes bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show Kana Fall progress for a profile",
	Long: `Print the unlocked levels, high scores and best correct counts of a
profile as YAML. Keys of highScores and levelProgress are "category:level".

Examples:
  arcade progress
  arcade progress --profile alice
  arcade progress profiles
  arcade progress reset --profile alice --yes`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

var progressProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profiles with stored progress",
	Args:  cobra.NoArgs,
	RunE:  runProgressProfiles,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored progress of a profile",
	Args:  cobra.NoArgs,
	RunE:  runProgressReset,
}

func init() {
	progressResetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Confirm the reset")
	progressCmd.AddCommand(progressProfilesCmd)
	progressCmd.AddCommand(progressResetCmd)
}

func runProgress(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	lib, err := vocab.Load(flagVocabPath)
	if err != nil {
		return fmt.Errorf("loading vocabulary: %w", err)
	}

	tracker := progress.New(flagProfile, lib, store, logger)
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	if err := enc.Encode(tracker.Snapshot()); err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}
	return nil
}

func runProgressProfiles(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	profiles, err := store.Profiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("No progress recorded yet.")
		return nil
	}
	for _, p := range profiles {
		fmt.Println(p)
	}
	return nil
}

func runProgressReset(_ *cobra.Command, _ []string) error {
	if !flagResetYes {
		return fmt.Errorf("refusing to reset progress of %q without --yes", flagProfile)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if err := store.ResetProgress(flagProfile); err != nil {
		return err
	}
	logger.Info("progress reset", "profile", flagProfile)
	fmt.Printf("Progress of %q reset.\n", flagProfile)
	return nil
}
