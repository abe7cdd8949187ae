package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPet loads the pet configuration.
// Search order: customPath -> ~/.arcade/configs/pet.yaml -> ./configs/pet.yaml -> embedded default
func LoadPet(customPath string) (PetConfig, error) {
	cfg := DefaultPetConfig()
	if err := load("pet", customPath, &cfg); err != nil {
		return DefaultPetConfig(), err
	}
	return cfg, nil
}

// LoadKanafall loads the falling-block game configuration.
// Search order: customPath -> ~/.arcade/configs/kanafall.yaml -> ./configs/kanafall.yaml -> embedded default
func LoadKanafall(customPath string) (KanafallConfig, error) {
	cfg := DefaultKanafallConfig()
	if err := load("kanafall", customPath, &cfg); err != nil {
		return DefaultKanafallConfig(), err
	}
	return cfg, nil
}

// load decodes the first config found for gameID into out. Fields missing
// from the file keep the values already in out.
func load(gameID, customPath string, out any) error {
	// Custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return nil
	}

	filename := gameID + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Embedded default; the hardcoded values already in out stay on failure
	_ = yaml.Unmarshal(GetDefaultYAML(gameID), out)
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyKanafallPreset modifies the config based on a difficulty preset.
// Easy and hard scale the loaded starting speed and spawn interval; fixed
// keeps them and turns the ramp off.
func ApplyKanafallPreset(cfg *KanafallConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = string(preset)
	cfg.Difficulty.Enabled = !IsFixedPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Fall.Speed *= 0.75
		cfg.Spawn.IntervalMS = cfg.Spawn.IntervalMS * 4 / 3
	case DifficultyHard:
		cfg.Fall.Speed *= 1.5
		cfg.Spawn.IntervalMS = cfg.Spawn.IntervalMS * 3 / 4
	}
	if cfg.Spawn.IntervalMS < cfg.Spawn.MinIntervalMS {
		cfg.Spawn.IntervalMS = cfg.Spawn.MinIntervalMS
	}
}
