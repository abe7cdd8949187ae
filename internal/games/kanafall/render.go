package kanafall

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/kana-arcade/internal/core"
)

// Render draws the HUD, the play area, the answer buttons and any overlay.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if g.tooSmall || w < minScreenW || h < minScreenH {
		dst.DrawTextCenteredColor(h/2, "Window too small", core.ColorRed)
		dst.DrawTextCenteredColor(h/2+1, fmt.Sprintf("need %dx%d", minScreenW, minScreenH), core.ColorGray)
		return
	}

	if g.phase == PhaseIdle {
		dst.DrawPanel([]string{"No vocabulary loaded", "", "Q: Quit"}, core.ColorRed)
		return
	}

	g.renderHUD(dst)

	box := core.NewRect(0, hudRows, w, g.playH+2)
	dst.DrawBoxColor(box, core.ColorBlue)
	g.renderDangerLine(dst, box)
	g.renderBlocks(dst, box)
	g.renderAnswers(dst, box.Bottom())

	dst.DrawTextCenteredColor(h-1, "1-6: Answer  P: Pause  Q: Quit", core.ColorGray)

	switch {
	case g.phase == PhaseGameOver:
		g.renderGameOver(dst)
	case g.phase == PhaseLevelComplete:
		g.renderLevelComplete(dst)
	case g.paused:
		dst.DrawPanel([]string{"PAUSED", "", "P: Resume  Q: Quit"}, core.ColorYellow)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	title := fmt.Sprintf("%s %s  Lv %d: %s", g.cat.Icon, g.cat.Name, g.lvl.Number, g.lvl.Name)
	dst.DrawTextColor(1, 0, strings.TrimSpace(title), core.ColorBrightCyan)

	stats := fmt.Sprintf("Score: %d  Correct: %d/%d", g.score, g.correct, g.cfg.Scoring.ClearTarget)
	dst.DrawTextColor(dst.Width()-core.TextWidth(stats)-1, 0, stats, core.ColorBrightYellow)

	if g.hint != "" {
		dst.DrawTextColor(1, 1, "Hint: "+g.hint, core.ColorYellow)
	}
	speed := fmt.Sprintf("Speed %.2f", g.fallSpeed)
	dst.DrawTextColor(dst.Width()-len(speed)-1, 1, speed, core.ColorGray)
}

// renderDangerLine marks the row past which a block's reading is hinted.
func (g *Game) renderDangerLine(dst *core.Screen, box core.Rect) {
	row := int(g.cfg.Board.DangerRatio * float64(g.playH))
	if row <= 0 || row >= g.playH {
		return
	}
	for x := 1; x < box.W-1; x += 2 {
		dst.SetColor(box.X+x, box.Y+1+row, '·', core.ColorGray)
	}
}

func (g *Game) renderBlocks(dst *core.Screen, box core.Rect) {
	for _, b := range g.blocks {
		y := int(b.Y)
		if y < 0 || y >= g.playH {
			continue
		}
		color := core.ColorWhite
		if b.ID == g.activeID {
			color = core.ColorBrightYellow
			if b.Hinted {
				color = core.ColorBrightRed
			}
		}
		dst.DrawTextColor(box.X+1+b.X, box.Y+1+y, b.Label(), color)
	}
}

// renderAnswers lays the buttons out three per row.
func (g *Game) renderAnswers(dst *core.Screen, top int) {
	opts := g.answers.Options
	if len(opts) == 0 || g.phase != PhaseRunning {
		return
	}
	perRow := (len(opts) + answerRows - 1) / answerRows
	colW := dst.Width() / perRow
	for i, opt := range opts {
		row, col := i/perRow, i%perRow
		label := fmt.Sprintf("%d) %s", i+1, opt)
		dst.DrawTextColor(col*colW+2, top+row, label, core.ColorBrightGreen)
	}
}

func (g *Game) renderGameOver(dst *core.Screen) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score: %d  Correct: %d", g.score, g.correct),
	}
	if g.opts.Progress != nil {
		best := g.opts.Progress.Best(g.cat.ID, g.lvl.Number)
		lines = append(lines, fmt.Sprintf("Best: %d  (%d correct)", best.HighScore, best.BestCorrect))
	}
	lines = append(lines, "", "R: Retry  Q: Quit")
	dst.DrawPanel(lines, core.ColorRed)
}

func (g *Game) renderLevelComplete(dst *core.Screen) {
	lines := []string{
		"LEVEL COMPLETE!",
		"",
		fmt.Sprintf("Score: %d  Correct: %d", g.score, g.correct),
	}
	color := core.ColorGreen
	if g.outcome.NewUnlock {
		color = core.ColorBrightYellow
		name := ""
		if lvl, ok := g.cat.Level(g.outcome.Unlocked.Level); ok {
			name = ": " + lvl.Name
		}
		lines = append(lines, "", fmt.Sprintf("New level unlocked! Level %d%s", g.outcome.Unlocked.Level, name))
	}

	controls := "R: Replay  Q: Quit"
	if _, ok := g.NextLevel(); ok {
		controls = "N: Next level  " + controls
	}
	lines = append(lines, "", controls)
	dst.DrawPanel(lines, color)
}
