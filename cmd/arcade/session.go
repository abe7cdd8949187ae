package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/core"
	"github.com/vovakirdan/kana-arcade/internal/platform/tui"
	"github.com/vovakirdan/kana-arcade/internal/progress"
	"github.com/vovakirdan/kana-arcade/internal/storage"
	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

// openSession gathers the local player's resources. A missing database
// or vocabulary is reported and the session continues without it.
// The returned deps must be closed with closeSession.
func openSession() *tui.Deps {
	deps := &tui.Deps{
		SettingsPath: flagSettingsPath,
		ConfigPath:   flagConfig,
		Logger:       logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
	} else {
		deps.Store = store
	}

	lib, err := vocab.Load(flagVocabPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load vocabulary: %v\n", err)
		logger.Error("could not load vocabulary", "path", flagVocabPath, "err", err)
	}
	deps.Library = lib

	settings, err := config.LoadSettings(flagSettingsPath)
	if err != nil {
		logger.Warn("could not read settings, using defaults", "path", flagSettingsPath, "err", err)
	}
	deps.Settings = settings

	var backend progress.Backend
	if deps.Store != nil {
		backend = deps.Store
	}
	deps.Tracker = progress.New(flagProfile, lib, backend, logger)

	logger.Info("session opened", "profile", deps.Profile(), "db", flagDBPath)
	return deps
}

func closeSession(deps *tui.Deps) {
	if deps.Store != nil {
		deps.Store.Close()
	}
}

// runtimeConfig sizes the game to the current terminal.
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
