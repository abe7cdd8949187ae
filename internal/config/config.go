// Package config provides YAML-based game tuning, difficulty presets and
// the per-user settings file for the arcade platform.
package config

import "time"

// PetConfig contains all configuration for the virtual pet.
type PetConfig struct {
	Stats   PetStats   `yaml:"stats"`
	Actions PetActions `yaml:"actions"`
	Decay   PetDecay   `yaml:"decay"`
	Mood    PetMood    `yaml:"mood"`
}

// PetStats defines the stat range and starting values.
type PetStats struct {
	Start float64 `yaml:"start"`
	Max   float64 `yaml:"max"`
}

// PetActions defines the effect of each care action.
type PetActions struct {
	Feed  ActionEffect `yaml:"feed"`
	Play  ActionEffect `yaml:"play"`
	Clean ActionEffect `yaml:"clean"`
	Pet   ActionEffect `yaml:"pet"`
}

// ActionEffect is a stat delta applied when an action completes.
// DurationMS is how long the action's control stays locked; 0 applies the
// effect immediately.
type ActionEffect struct {
	DurationMS  int     `yaml:"duration_ms"`
	Happiness   float64 `yaml:"happiness"`
	Hunger      float64 `yaml:"hunger"`
	Cleanliness float64 `yaml:"cleanliness"`
	MinHunger   float64 `yaml:"min_hunger,omitempty"` // refuse below this hunger
	Bubble      string  `yaml:"bubble,omitempty"`     // shown on success
	Refusal     string  `yaml:"refusal,omitempty"`    // shown when refused
}

// Duration returns the lock duration.
func (a ActionEffect) Duration() time.Duration {
	return time.Duration(a.DurationMS) * time.Millisecond
}

// PetDecay defines the periodic stat loss.
type PetDecay struct {
	EveryMS     int     `yaml:"every_ms"`
	Happiness   float64 `yaml:"happiness"`
	Hunger      float64 `yaml:"hunger"`
	Cleanliness float64 `yaml:"cleanliness"`
}

// Every returns the decay period.
func (d PetDecay) Every() time.Duration {
	return time.Duration(d.EveryMS) * time.Millisecond
}

// PetMood defines mood thresholds over the stat average.
type PetMood struct {
	Happy    float64 `yaml:"happy"`
	Neutral  float64 `yaml:"neutral"`
	Sad      float64 `yaml:"sad"`
	Dirty    float64 `yaml:"dirty"` // cleanliness below this shows dirt
	BubbleMS int     `yaml:"bubble_ms"`
}

// BubbleDuration returns how long a speech bubble stays visible.
func (m PetMood) BubbleDuration() time.Duration {
	return time.Duration(m.BubbleMS) * time.Millisecond
}

// KanafallConfig contains all configuration for the falling-block game.
type KanafallConfig struct {
	Fall       KanafallFall     `yaml:"fall"`
	Spawn      KanafallSpawn    `yaml:"spawn"`
	Scoring    KanafallScoring  `yaml:"scoring"`
	Board      KanafallBoard    `yaml:"board"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// KanafallFall defines the block fall speed in rows per second.
type KanafallFall struct {
	Speed     float64 `yaml:"speed"`
	SpeedStep float64 `yaml:"speed_step"`
}

// KanafallSpawn defines the spawn cadence.
type KanafallSpawn struct {
	IntervalMS    int `yaml:"interval_ms"`
	StepMS        int `yaml:"step_ms"`
	MinIntervalMS int `yaml:"min_interval_ms"`
}

// Interval returns the starting spawn interval.
func (s KanafallSpawn) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// Step returns how much each ramp shortens the spawn interval.
func (s KanafallSpawn) Step() time.Duration {
	return time.Duration(s.StepMS) * time.Millisecond
}

// MinInterval returns the spawn interval floor.
func (s KanafallSpawn) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMS) * time.Millisecond
}

// KanafallScoring defines points and the level clear target.
type KanafallScoring struct {
	Correct     int `yaml:"correct"`
	Wrong       int `yaml:"wrong"`
	ClearTarget int `yaml:"clear_target"`
}

// KanafallBoard defines the play area behavior.
type KanafallBoard struct {
	Answers     int     `yaml:"answers"`
	DangerRatio float64 `yaml:"danger_ratio"` // hint once a block passes this share of the height
}

// DifficultyConfig defines the periodic speed-up.
type DifficultyConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Preset      string `yaml:"preset"`
	RampEveryMS int    `yaml:"ramp_every_ms"`
}

// RampEvery returns the ramp period.
func (d DifficultyConfig) RampEvery() time.Duration {
	return time.Duration(d.RampEveryMS) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset maps a name to a preset, defaulting to normal.
func ParsePreset(s string) DifficultyPreset {
	for _, p := range Presets() {
		if string(p) == s {
			return p
		}
	}
	return DifficultyNormal
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
