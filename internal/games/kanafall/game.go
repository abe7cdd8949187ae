// Package kanafall implements a falling-block vocabulary game: kanji drift
// down the play area and the player stops each one by picking its reading.
package kanafall

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/core"
	"github.com/vovakirdan/kana-arcade/internal/progress"
	"github.com/vovakirdan/kana-arcade/internal/registry"
	"github.com/vovakirdan/kana-arcade/internal/sched"
	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

// Phase is the run state.
type Phase string

const (
	PhaseIdle          Phase = "idle" // nothing to play
	PhaseRunning       Phase = "running"
	PhaseLevelComplete Phase = "level_complete"
	PhaseGameOver      Phase = "game_over"
)

// Screen layout: two HUD rows, the play box border, two answer rows and
// a footer.
const (
	hudRows    = 2
	answerRows = 2
	minScreenW = 40
	minScreenH = 16
)

// Options are the per-game inputs taken from the platform environment.
type Options struct {
	Library  *vocab.Library
	Progress *progress.Tracker
	Category string
	Level    int
	Style    vocab.ReadingStyle
}

// Game implements the falling-block vocabulary game.
type Game struct {
	cfg    config.KanafallConfig
	diff   *config.DifficultyManager
	opts   Options
	logger *log.Logger

	cat *vocab.Category
	lvl *vocab.Level

	rng     *rand.Rand
	sched   *sched.Scheduler
	tickDur time.Duration
	tick    uint64

	phase   Phase
	paused  bool
	style   vocab.ReadingStyle
	score   int
	correct int

	blocks   []*Block
	nextID   int
	activeID int
	answers  AnswerSet
	hint     string

	fallSpeed     float64
	spawnInterval time.Duration
	spawnTask     sched.TaskID

	outcome progress.Outcome
	events  []core.Event

	screenW, screenH int
	playW, playH     int
	tooSmall         bool
}

// New creates a game. The category and level fall back to the first
// level of the first category when unknown.
func New(cfg config.KanafallConfig, opts Options, logger *log.Logger) *Game {
	g := &Game{
		cfg:    cfg,
		diff:   config.NewDifficultyManager(cfg),
		opts:   opts,
		logger: logger,
		style:  opts.Style,
		phase:  PhaseIdle,
	}
	g.selectLevel(opts.Category, opts.Level)
	return g
}

func init() {
	registry.Register("kanafall", func(env registry.Env) registry.Game {
		logger := env.Log()
		cfg, err := config.LoadKanafall(env.ConfigPath)
		if err != nil {
			logger.Warn("using default kanafall config", "err", err)
		}
		config.ApplyKanafallPreset(&cfg, env.Settings.Preset())

		lib := env.Library
		if lib == nil {
			if lib, err = vocab.Default(); err != nil {
				logger.Error("cannot load vocabulary", "err", err)
			}
		}
		return New(cfg, Options{
			Library:  lib,
			Progress: env.Progress,
			Category: env.Category,
			Level:    env.Level,
			Style:    env.Settings.Reading(),
		}, logger)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "kanafall"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Kana Fall"
}

// selectLevel resolves category and level against the library.
func (g *Game) selectLevel(category string, level int) bool {
	cat, lvl, ok := g.opts.Library.Resolve(category, level)
	if !ok {
		g.cat, g.lvl = nil, nil
		return false
	}
	g.cat, g.lvl = cat, lvl
	return true
}

// Reset initializes the play area and starts a new run on the current level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.sched != nil {
		g.sched.StopAll()
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.sched = sched.New()
	g.tickDur = cfg.TickDuration()
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.playW = cfg.ScreenW - 2
	g.playH = cfg.ScreenH - hudRows - answerRows - 3
	g.tooSmall = cfg.ScreenW < minScreenW || cfg.ScreenH < minScreenH
	g.paused = false

	g.Start()
}

// Resize fits the play area to new screen dimensions without ending the
// run. A running level is paused and blocks are pulled inside the new
// play area.
func (g *Game) Resize(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.playW = cfg.ScreenW - 2
	g.playH = cfg.ScreenH - hudRows - answerRows - 3
	g.tooSmall = cfg.ScreenW < minScreenW || cfg.ScreenH < minScreenH

	for _, b := range g.blocks {
		if b.X+b.Width > g.playW {
			b.X = max(0, g.playW-b.Width)
		}
		if b.Bottom() >= float64(g.playH) {
			b.Y = max(0, float64(g.playH-blockHeight-1))
		}
	}
	if g.phase == PhaseRunning {
		g.paused = true
	}
}

// Start stops all scheduled work and begins a fresh run: one block spawns
// immediately and the spawn, ramp and frame tasks start together.
func (g *Game) Start() {
	g.sched.StopAll()
	g.score = 0
	g.correct = 0
	g.blocks = nil
	g.activeID = 0
	g.answers = AnswerSet{}
	g.hint = ""
	g.outcome = progress.Outcome{}
	g.paused = false

	if g.lvl == nil {
		g.phase = PhaseIdle
		return
	}

	g.phase = PhaseRunning
	g.fallSpeed = g.diff.StartSpeed()
	g.spawnInterval = g.diff.StartInterval()
	g.emit(core.EventRunStarted, fmt.Sprintf("%s:%d", g.cat.ID, g.lvl.Number))

	g.spawn()
	g.spawnTask = g.sched.Every(g.spawnInterval, g.spawn)
	if g.diff.IsEnabled() {
		g.sched.Every(g.diff.RampEvery(), g.ramp)
	}
	g.sched.Every(g.tickDur, func() {
		g.update(g.tickDur.Seconds())
	})
}

// ramp speeds the run up and restarts the spawn timer with the shorter
// interval.
func (g *Game) ramp() {
	g.fallSpeed, g.spawnInterval = g.diff.Next(g.fallSpeed, g.spawnInterval)
	g.sched.Reschedule(g.spawnTask, g.spawnInterval)
	g.emit(core.EventSpeedUp, fmt.Sprintf("speed=%.2f spawn=%s", g.fallSpeed, g.spawnInterval))
}

// finish ends the run, cancels all scheduled work and records progress.
func (g *Game) finish(completed bool) {
	g.sched.StopAll()
	if completed {
		g.phase = PhaseLevelComplete
	} else {
		g.phase = PhaseGameOver
	}

	if g.opts.Progress != nil {
		g.outcome = g.opts.Progress.Record(progress.Result{
			Category:  g.cat.ID,
			Level:     g.lvl.Number,
			Score:     g.score,
			Correct:   g.correct,
			Completed: completed,
		})
	}

	if completed {
		g.emit(core.EventLevelComplete, fmt.Sprintf("%s:%d", g.cat.ID, g.lvl.Number))
		if g.outcome.NewUnlock {
			g.emit(core.EventLevelUnlocked, g.outcome.Unlocked.String())
		}
		return
	}
	g.emit(core.EventGameOver, fmt.Sprintf("score=%d correct=%d", g.score, g.correct))
}

// NextLevel returns the level after the current one if it exists and is
// playable.
func (g *Game) NextLevel() (int, bool) {
	if g.cat == nil {
		return 0, false
	}
	next, ok := g.cat.NextLevel(g.lvl.Number)
	if !ok {
		return 0, false
	}
	if g.opts.Progress != nil && !g.opts.Progress.IsUnlocked(g.cat.ID, next) {
		return 0, false
	}
	return next, true
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil
	g.tick++

	if g.tooSmall || g.phase == PhaseIdle {
		return core.StepResult{State: g.State()}
	}

	// Level complete: N moves on
	if g.phase == PhaseLevelComplete && in.Has(core.ActionNext) {
		if next, ok := g.NextLevel(); ok {
			g.selectLevel(g.cat.ID, next)
			g.Start()
		}
		return core.StepResult{State: g.State(), Events: g.events}
	}

	if g.phase != PhaseRunning {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if i, ok := in.Answer(); ok {
		g.Answer(i)
	}

	g.sched.Advance(g.tickDur)

	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) emit(kind core.EventKind, text string) {
	g.events = append(g.events, core.Event{Kind: kind, Text: text})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseLevelComplete || g.phase == PhaseGameOver,
		Cleared:  g.phase == PhaseLevelComplete,
		Paused:   g.paused || g.tooSmall,
	}
}

// Phase returns the run phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Correct returns the number of correct answers this run.
func (g *Game) Correct() int {
	return g.correct
}

// Blocks returns the blocks currently falling, oldest first.
func (g *Game) Blocks() []*Block {
	return g.blocks
}

// Active returns the active block, or nil.
func (g *Game) Active() *Block {
	return g.activeBlock()
}

// Answers returns the answer set for the active block.
func (g *Game) Answers() AnswerSet {
	return g.answers
}

// Hint returns the surfaced reading for the active block, if any.
func (g *Game) Hint() string {
	return g.hint
}

// Outcome returns what the last finished run changed in progress.
func (g *Game) Outcome() progress.Outcome {
	return g.outcome
}

// FallSpeed returns the current fall speed in rows per second.
func (g *Game) FallSpeed() float64 {
	return g.fallSpeed
}

// SpawnInterval returns the current spawn interval.
func (g *Game) SpawnInterval() time.Duration {
	return g.spawnInterval
}

// Pending returns the number of scheduled tasks, for leak checks.
func (g *Game) Pending() int {
	return g.sched.Pending()
}

// Level returns the category and level being played.
func (g *Game) Level() (category string, level int) {
	if g.cat == nil {
		return "", 0
	}
	return g.cat.ID, g.lvl.Number
}
