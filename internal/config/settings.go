package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

// Settings holds user choices that survive restarts.
type Settings struct {
	ReadingStyle string `toml:"reading_style"`
	Difficulty   string `toml:"difficulty"`
	LastCategory string `toml:"last_category,omitempty"`
	LastLevel    int    `toml:"last_level,omitempty"`
}

// DefaultSettings returns settings for a first launch.
func DefaultSettings() Settings {
	return Settings{
		ReadingStyle: string(vocab.ReadingNative),
		Difficulty:   string(DifficultyNormal),
	}
}

// Reading returns the configured reading style.
func (s Settings) Reading() vocab.ReadingStyle {
	return vocab.ParseReadingStyle(s.ReadingStyle)
}

// Preset returns the configured difficulty preset.
func (s Settings) Preset() DifficultyPreset {
	return ParsePreset(s.Difficulty)
}

// LoadSettings reads settings from path. A missing file yields defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("config: failed to stat settings: %w", err)
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("config: failed to decode settings: %w", err)
	}
	s.ReadingStyle = string(s.Reading())
	s.Difficulty = string(s.Preset())
	return s, nil
}

// SaveSettings writes settings to path, creating parent directories.
// An empty path disables persistence.
func SaveSettings(path string, s Settings) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: failed to create settings dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: failed to create settings: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("config: failed to encode settings: %w", err)
	}
	return nil
}
