package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/core"
	"github.com/vovakirdan/kana-arcade/internal/progress"
	"github.com/vovakirdan/kana-arcade/internal/registry"
	"github.com/vovakirdan/kana-arcade/internal/storage"
	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

// Deps are the shared resources of one player session.
// Store and Tracker may be nil when no database is available.
type Deps struct {
	Store        *storage.Store
	Library      *vocab.Library
	Tracker      *progress.Tracker
	Settings     config.Settings
	SettingsPath string // empty keeps settings in memory
	ConfigPath   string
	Difficulty   config.DifficultyPreset // overrides the saved preset when set
	Logger       *log.Logger
}

// Profile returns the player profile the session records under.
func (d *Deps) Profile() string {
	if d.Tracker == nil {
		return progress.DefaultProfile
	}
	return d.Tracker.Profile()
}

// Log returns the session logger, or a discarding one.
func (d *Deps) Log() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

// Env builds the registry environment for a game start.
func (d *Deps) Env(category string, level int) registry.Env {
	settings := d.Settings
	if d.Difficulty != "" {
		settings.Difficulty = string(d.Difficulty)
	}
	return registry.Env{
		Library:    d.Library,
		Progress:   d.Tracker,
		Settings:   settings,
		Category:   category,
		Level:      level,
		ConfigPath: d.ConfigPath,
		Logger:     d.Logger,
	}
}

// SaveSettings stores the current settings. Failures are logged.
func (d *Deps) SaveSettings() {
	if err := config.SaveSettings(d.SettingsPath, d.Settings); err != nil {
		d.Log().Warn("cannot save settings", "err", err)
	}
}

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	deps       *Deps
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for the current run end
}

// NewGameModel creates a model running game with the session deps.
func NewGameModel(game registry.Game, deps *Deps, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		deps:       deps,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu (B or Esc) once the run ended or while paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config)
		m.gameState = m.game.State()
		return m, nil
	}

	// Reinitialize game with new dimensions; a finished run keeps its result screen
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.logEvents(result.Events)

	// A new run (next level) may be saved again
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Save score when the run ends (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config)
}

func (m GameModel) logEvents(events []core.Event) {
	if len(events) == 0 || m.deps == nil {
		return
	}
	logger := m.deps.Log()
	for _, ev := range events {
		logger.Debug("game event", "game", m.game.ID(), "kind", ev.Kind, "text", ev.Text)
	}
}

func (m GameModel) saveScore() {
	if m.gameState.Score <= 0 || m.deps == nil || m.deps.Store == nil {
		return
	}
	// Best-effort save, the game continues regardless
	if _, err := m.deps.Store.SaveScore(m.game.ID(), m.deps.Profile(), m.gameState.Score); err != nil {
		m.deps.Log().Warn("cannot save score", "game", m.game.ID(), "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own program until the player quits or backs out.
// It reports whether the player asked to return to a menu.
func Run(game registry.Game, deps *Deps, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, deps, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
