// Package pet implements "Poopy", a virtual pet whose happiness, hunger and
// cleanliness decay over time and are restored by care actions.
package pet

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/core"
	"github.com/vovakirdan/kana-arcade/internal/registry"
	"github.com/vovakirdan/kana-arcade/internal/sched"
)

// DefaultName is the pet's name.
const DefaultName = "Poopy"

// Game implements the virtual pet.
type Game struct {
	cfg    config.PetConfig
	logger *log.Logger
	name   string

	sched   *sched.Scheduler
	tickDur time.Duration
	tick    uint64

	stats  Stats
	mood   Mood
	locked map[core.Action]bool // controls waiting for their action to finish
	busy   core.Action          // most recent action still in progress

	bubble     string
	bubbleTask sched.TaskID

	events []core.Event
	paused bool

	screenW int
	screenH int
}

// New creates a pet game with the given tuning.
func New(cfg config.PetConfig, logger *log.Logger) *Game {
	return &Game{
		cfg:    cfg,
		logger: logger,
		name:   DefaultName,
	}
}

func init() {
	registry.Register("pet", func(env registry.Env) registry.Game {
		logger := env.Log()
		cfg, err := config.LoadPet(env.ConfigPath)
		if err != nil {
			logger.Warn("using default pet config", "err", err)
		}
		return New(cfg, logger)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "pet"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Virtual Pet"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.sched != nil {
		g.sched.StopAll()
	}
	g.sched = sched.New()
	g.tickDur = cfg.TickDuration()
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	start := g.cfg.Stats.Start
	g.stats = Stats{Happiness: start, Hunger: start, Cleanliness: start}
	g.mood = MoodFor(g.stats, g.cfg.Mood)
	g.locked = make(map[core.Action]bool)
	g.busy = core.ActionNone
	g.bubble = ""
	g.bubbleTask = 0
	g.events = nil
	g.paused = false

	if every := g.cfg.Decay.Every(); every > 0 {
		g.sched.Every(every, g.decay)
	}
}

// Resize adopts new screen dimensions; the pet keeps its stats.
func (g *Game) Resize(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	switch {
	case in.Has(core.ActionFeed):
		g.Feed()
	case in.Has(core.ActionPlay):
		g.Play()
	case in.Has(core.ActionClean):
		g.Clean()
	}
	if in.Has(core.ActionPet) {
		g.Pet()
	}

	g.sched.Advance(g.tickDur)

	return core.StepResult{State: g.State(), Events: g.events}
}

// Feed starts feeding unless the pet is already full or the control is locked.
func (g *Game) Feed() bool {
	return g.start(core.ActionFeed, g.cfg.Actions.Feed, g.stats.Hunger >= g.cfg.Stats.Max)
}

// Play starts playing unless the pet is too hungry or the control is locked.
func (g *Game) Play() bool {
	eff := g.cfg.Actions.Play
	return g.start(core.ActionPlay, eff, g.stats.Hunger < eff.MinHunger)
}

// Clean starts cleaning unless the pet is spotless or the control is locked.
func (g *Game) Clean() bool {
	return g.start(core.ActionClean, g.cfg.Actions.Clean, g.stats.Cleanliness >= g.cfg.Stats.Max)
}

// Pet taps the pet. It takes effect immediately and never locks.
func (g *Game) Pet() {
	eff := g.cfg.Actions.Pet
	g.showBubble(eff.Bubble)
	g.applyEffect(eff)
}

// start runs a delayed care action. Returns false when the action was
// ignored (locked) or refused.
func (g *Game) start(action core.Action, eff config.ActionEffect, refuse bool) bool {
	if g.locked[action] {
		return false
	}
	if refuse {
		g.showBubble(eff.Refusal)
		g.logger.Debug("action refused", "action", action)
		return false
	}

	g.locked[action] = true
	g.busy = action
	g.showBubble(eff.Bubble)

	g.sched.After(eff.Duration(), func() {
		g.applyEffect(eff)
		delete(g.locked, action)
		if g.busy == action {
			g.busy = core.ActionNone
		}
	})
	return true
}

// decay applies the periodic stat loss.
func (g *Game) decay() {
	d := g.cfg.Decay
	g.setStats(g.stats.Apply(-d.Happiness, -d.Hunger, -d.Cleanliness, g.cfg.Stats.Max))
}

func (g *Game) applyEffect(eff config.ActionEffect) {
	g.setStats(g.stats.Apply(eff.Happiness, eff.Hunger, eff.Cleanliness, g.cfg.Stats.Max))
}

func (g *Game) setStats(s Stats) {
	g.stats = s
	g.emit(core.EventStatsChanged, fmt.Sprintf("happiness=%.1f hunger=%.1f cleanliness=%.1f",
		s.Happiness, s.Hunger, s.Cleanliness))

	if mood := MoodFor(s, g.cfg.Mood); mood != g.mood {
		g.mood = mood
		g.emit(core.EventMoodChanged, string(mood))
	}
}

// showBubble displays text above the pet. A newer bubble replaces the
// current one and restarts its timeout.
func (g *Game) showBubble(text string) {
	if text == "" {
		return
	}
	g.sched.Cancel(g.bubbleTask)
	g.bubble = text
	g.bubbleTask = g.sched.After(g.cfg.Mood.BubbleDuration(), func() {
		g.bubble = ""
	})
	g.emit(core.EventBubble, text)
}

func (g *Game) emit(kind core.EventKind, text string) {
	g.events = append(g.events, core.Event{Kind: kind, Text: text})
}

// Stats returns the current stats.
func (g *Game) Stats() Stats {
	return g.stats
}

// Mood returns the current mood.
func (g *Game) Mood() Mood {
	return g.mood
}

// Bubble returns the visible speech bubble, if any.
func (g *Game) Bubble() string {
	return g.bubble
}

// Locked reports whether an action's control is disabled.
func (g *Game) Locked(action core.Action) bool {
	return g.locked[action]
}

// Elapsed returns the simulated time since Reset.
func (g *Game) Elapsed() time.Duration {
	return g.sched.Now()
}

// State returns the current game state. The pet never ends; the score is
// its rounded wellbeing.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  int(math.Round(g.stats.Average())),
		Paused: g.paused,
	}
}
