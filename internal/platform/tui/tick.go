// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, menus and the SSH session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kana-arcade/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends one tick after the configured
// frame interval. Games advance their own clock by the same interval.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickDuration(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
