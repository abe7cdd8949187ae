package pet

import (
	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/core"
)

// Stats holds the pet's three needs. Every value stays in [0, max].
type Stats struct {
	Happiness   float64
	Hunger      float64 // fullness: 100 is fed, 0 is starving
	Cleanliness float64
}

// Average returns the unweighted mean of the three stats.
func (s Stats) Average() float64 {
	return (s.Happiness + s.Hunger + s.Cleanliness) / 3
}

// Apply adds the given deltas and clamps the result to [0, max].
func (s Stats) Apply(happiness, hunger, cleanliness, max float64) Stats {
	return Stats{
		Happiness:   core.ClampF(s.Happiness+happiness, 0, max),
		Hunger:      core.ClampF(s.Hunger+hunger, 0, max),
		Cleanliness: core.ClampF(s.Cleanliness+cleanliness, 0, max),
	}
}

// Mood is the overall mood derived from the stat average.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodMiserable Mood = "miserable"
)

// MoodFor maps stats to a mood using the configured thresholds.
func MoodFor(s Stats, m config.PetMood) Mood {
	avg := s.Average()
	switch {
	case avg >= m.Happy:
		return MoodHappy
	case avg >= m.Neutral:
		return MoodNeutral
	case avg >= m.Sad:
		return MoodSad
	default:
		return MoodMiserable
	}
}

// IsDirty reports whether the pet should be drawn dirty.
func IsDirty(s Stats, m config.PetMood) bool {
	return s.Cleanliness < m.Dirty
}
