// Package tui provides terminal UI components including SSH server support via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/core"
	"github.com/vovakirdan/kana-arcade/internal/progress"
	"github.com/vovakirdan/kana-arcade/internal/registry"
	"github.com/vovakirdan/kana-arcade/internal/storage"
	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the scores and progress database.
	DBPath string

	// VocabPath is a YAML or XLSX vocabulary file. Empty uses the built-in library.
	VocabPath string

	// ConfigPath is a custom game tuning file.
	ConfigPath string

	// TickRate is the simulation rate for every session.
	TickRate int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/scores.db",
		TickRate:    30,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server for the arcade.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	library *vocab.Library
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	// A missing library leaves kanafall unplayable; the pet still works
	lib, err := vocab.Load(cfg.VocabPath)
	if err != nil {
		logger.Error("could not load vocabulary", "path", cfg.VocabPath, "error", err)
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		library: lib,
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	user := sshSession.User()
	deps := &Deps{
		Library:    s.library,
		Settings:   config.DefaultSettings(),
		ConfigPath: s.config.ConfigPath,
		Logger:     s.logger.With("user", user),
	}
	var backend progress.Backend
	if s.store != nil {
		deps.Store = s.store
		backend = s.store
	}
	deps.Tracker = progress.New(user, s.library, backend, deps.Logger)

	// Create session model that handles menu + game flow
	model := NewSessionModel(deps, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the page a session is on.
type sessionScreen int

const (
	sessionMenu sessionScreen = iota
	sessionKanafall
	sessionScoreboard
	sessionGame
)

// SessionModel manages the full arcade session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	deps       *Deps
	config     core.RuntimeConfig
	screen     sessionScreen
	menu       MenuModel
	kanafall   KanafallMenuModel
	scoreboard ScoreboardModel
	gameModel  GameModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps *Deps, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(deps.Profile(), cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case sessionGame:
		return m.updateGame(msg)
	case sessionKanafall:
		return m.updateKanafall(msg)
	case sessionScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = sessionMenu
	m.menu = NewMenuModel(m.deps.Profile(), m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.screen = sessionScoreboard
		m.scoreboard = NewScoreboardModel(m.deps, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		if selected.GameID == "kanafall" {
			m.screen = sessionKanafall
			m.kanafall = NewKanafallMenuModel(m.deps, m.config.ScreenW, m.config.ScreenH)
			return m, m.kanafall.Init()
		}
		return m.startGame(selected.GameID, "", 0)
	}

	return m, cmd
}

func (m SessionModel) updateKanafall(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.kanafall.Update(msg)
	if km, ok := newModel.(KanafallMenuModel); ok {
		m.kanafall = km
	}

	switch {
	case m.kanafall.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.kanafall.WantsBack():
		return m.toMenu()
	case m.kanafall.Selected() != nil:
		sel := m.kanafall.Selected()
		return m.startGame("kanafall", sel.Category, sel.Level)
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// startGame creates the game and hands the session over to it.
func (m SessionModel) startGame(gameID, category string, level int) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID, m.deps.Env(category, level))
	if err != nil {
		// Shouldn't happen since menu only shows registered games
		m.deps.Log().Error("cannot create game", "game", gameID, "err", err)
		return m.toMenu()
	}

	m.deps.Log().Info("game started", "game", gameID, "category", category, "level", level)
	m.screen = sessionGame
	m.gameModel = NewGameModel(game, m.deps, m.config)
	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case sessionGame:
		return m.gameModel.View()
	case sessionKanafall:
		return m.kanafall.View()
	case sessionScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
