package config

import (
	_ "embed"
)

//go:embed defaults/pet.yaml
var defaultPetYAML []byte

//go:embed defaults/kanafall.yaml
var defaultKanafallYAML []byte

// DefaultPetConfig returns the default pet configuration.
func DefaultPetConfig() PetConfig {
	return PetConfig{
		Stats: PetStats{Start: 100, Max: 100},
		Actions: PetActions{
			Feed: ActionEffect{
				DurationMS:  1000,
				Hunger:      25,
				Happiness:   5,
				Cleanliness: -5,
				Bubble:      "🍕",
				Refusal:     "🤢",
			},
			Play: ActionEffect{
				DurationMS:  1500,
				Happiness:   30,
				Hunger:      -15,
				Cleanliness: -10,
				MinHunger:   20,
				Bubble:      "🎉",
				Refusal:     "😫",
			},
			Clean: ActionEffect{
				DurationMS:  1200,
				Cleanliness: 35,
				Happiness:   10,
				Bubble:      "🧼",
				Refusal:     "✨",
			},
			Pet: ActionEffect{
				Happiness: 2,
				Bubble:    "💕",
			},
		},
		Decay: PetDecay{
			EveryMS:     3000,
			Hunger:      1,
			Happiness:   0.5,
			Cleanliness: 0.8,
		},
		Mood: PetMood{
			Happy:    80,
			Neutral:  50,
			Sad:      25,
			Dirty:    40,
			BubbleMS: 1500,
		},
	}
}

// DefaultKanafallConfig returns the default falling-block configuration.
func DefaultKanafallConfig() KanafallConfig {
	return KanafallConfig{
		Fall: KanafallFall{
			Speed:     1.2,
			SpeedStep: 0.15,
		},
		Spawn: KanafallSpawn{
			IntervalMS:    3000,
			StepMS:        200,
			MinIntervalMS: 1000,
		},
		Scoring: KanafallScoring{
			Correct:     10,
			Wrong:       5,
			ClearTarget: 30,
		},
		Board: KanafallBoard{
			Answers:     6,
			DangerRatio: 0.7,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Preset:      string(DifficultyNormal),
			RampEveryMS: 5000,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pet":
		return defaultPetYAML
	case "kanafall":
		return defaultKanafallYAML
	default:
		return nil
	}
}
