package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the simulated time covered by one Step.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has reached a terminal state
	Cleared  bool // Terminal state was a success (level complete)
	Paused   bool // Whether the game is paused
}

// EventKind identifies what changed inside a game during a tick.
type EventKind int

const (
	EventNone EventKind = iota
	EventBubble
	EventMoodChanged
	EventStatsChanged
	EventRunStarted
	EventBlockSpawned
	EventBlockCleared
	EventWrongAnswer
	EventHint
	EventSpeedUp
	EventLevelComplete
	EventLevelUnlocked
	EventGameOver
)

// String returns a short name for logging.
func (k EventKind) String() string {
	switch k {
	case EventBubble:
		return "bubble"
	case EventMoodChanged:
		return "mood"
	case EventStatsChanged:
		return "stats"
	case EventRunStarted:
		return "run-started"
	case EventBlockSpawned:
		return "spawn"
	case EventBlockCleared:
		return "cleared"
	case EventWrongAnswer:
		return "wrong"
	case EventHint:
		return "hint"
	case EventSpeedUp:
		return "speed-up"
	case EventLevelComplete:
		return "level-complete"
	case EventLevelUnlocked:
		return "level-unlocked"
	case EventGameOver:
		return "game-over"
	default:
		return "none"
	}
}

// Event is a state change reported by a game. The platform decides how
// (and whether) to present it.
type Event struct {
	Kind EventKind
	Text string
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
