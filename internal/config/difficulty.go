package config

import "time"

// DifficultyManager computes the falling-block speed-up applied on each
// ramp tick.
type DifficultyManager struct {
	cfg   DifficultyConfig
	fall  KanafallFall
	spawn KanafallSpawn
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg KanafallConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg.Difficulty,
		fall:  cfg.Fall,
		spawn: cfg.Spawn,
	}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.RampEveryMS > 0 &&
		!IsFixedPreset(DifficultyPreset(d.cfg.Preset))
}

// RampEvery returns how often Next should be applied.
func (d *DifficultyManager) RampEvery() time.Duration {
	return d.cfg.RampEvery()
}

// StartSpeed returns the fall speed for a fresh run.
func (d *DifficultyManager) StartSpeed() float64 {
	return d.fall.Speed
}

// StartInterval returns the spawn interval for a fresh run.
func (d *DifficultyManager) StartInterval() time.Duration {
	return clampDuration(d.spawn.Interval(), d.spawn.MinInterval())
}

// Next returns the speed and spawn interval after one ramp tick. The
// interval never drops below the configured minimum.
func (d *DifficultyManager) Next(speed float64, interval time.Duration) (float64, time.Duration) {
	if !d.IsEnabled() {
		return speed, interval
	}
	return speed + d.fall.SpeedStep, clampDuration(interval-d.spawn.Step(), d.spawn.MinInterval())
}

// clampDuration restricts a duration to at least min.
func clampDuration(val, min time.Duration) time.Duration {
	if val < min {
		return min
	}
	return val
}
