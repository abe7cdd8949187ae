package pet

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/kana-arcade/internal/core"
)

const (
	minScreenW = 44
	minScreenH = 18
	barWidth   = 20
)

// face returns the eyes and mouth for the current mood and action.
func (g *Game) face() (eyes, mouth string) {
	switch g.mood {
	case MoodHappy:
		eyes, mouth = "^   ^", "\\___/"
	case MoodSad:
		eyes, mouth = "u   u", " /^\\ "
	case MoodMiserable:
		eyes, mouth = "-   -", " /~\\ "
	default:
		eyes, mouth = "o   o", " --- "
	}
	switch g.busy {
	case core.ActionFeed:
		mouth = " (O) "
	case core.ActionPlay:
		eyes, mouth = "*   *", "\\_D_/"
	case core.ActionClean:
		eyes = ">   <"
	}
	return eyes, mouth
}

// Render draws the pet, its stats and the action buttons.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCenteredColor(h/2, "Window too small", core.ColorRed)
		return
	}

	// Title and wellbeing
	dst.DrawTextCenteredColor(0, fmt.Sprintf("~ %s ~", g.name), core.ColorBrightYellow)
	dst.DrawTextColor(1, 0, fmt.Sprintf("Mood: %s", g.mood), moodColor(g.mood))

	g.renderPet(dst, w/2, 2)
	g.renderStats(dst, (w-barWidth-18)/2, 11)
	g.renderButtons(dst, 15)

	dst.DrawTextCenteredColor(h-1, "P: Pause  Q: Quit", core.ColorGray)

	if g.paused {
		dst.DrawPanel([]string{"PAUSED", "", "Press P to resume"}, core.ColorYellow)
	}
}

func (g *Game) renderPet(dst *core.Screen, cx, top int) {
	if g.bubble != "" {
		bubble := "( " + g.bubble + " )"
		dst.DrawTextColor(cx+6, top, bubble, core.ColorWhite)
	}

	eyes, mouth := g.face()
	body := []string{
		"    (    ",
		"   (  )   ",
		"  ( " + eyes + " )  ",
		" (  " + mouth + "  ) ",
		"(___________)",
	}
	color := core.ColorBrown
	if g.mood == MoodHappy {
		color = core.ColorOrange
	}
	for i, line := range body {
		dst.DrawTextColor(cx-core.TextWidth(line)/2, top+2+i, line, color)
	}

	// Blush on happy, dirt and flies when dirty
	if g.mood == MoodHappy {
		dst.SetColor(cx-5, top+5, '*', core.ColorPink)
		dst.SetColor(cx+5, top+5, '*', core.ColorPink)
	}
	if IsDirty(g.stats, g.cfg.Mood) {
		dst.DrawTextColor(cx-9, top+2, "~ *", core.ColorGray)
		dst.DrawTextColor(cx+7, top+3, "* ~", core.ColorGray)
		dst.SetColor(cx-3, top+6, '%', core.ColorGreen)
		dst.SetColor(cx+3, top+6, '%', core.ColorGreen)
	}
}

func (g *Game) renderStats(dst *core.Screen, x, y int) {
	rows := []struct {
		label string
		value float64
		color core.Color
	}{
		{"Happiness", g.stats.Happiness, core.ColorPink},
		{"Hunger", g.stats.Hunger, core.ColorOrange},
		{"Cleanliness", g.stats.Cleanliness, core.ColorBrightCyan},
	}
	for i, r := range rows {
		color := r.color
		if r.value < g.cfg.Mood.Sad {
			color = core.ColorRed
		}
		dst.DrawText(x, y+i, fmt.Sprintf("%-12s", r.label))
		dst.DrawTextColor(x+13, y+i, bar(r.value, g.cfg.Stats.Max), color)
		dst.DrawText(x+14+barWidth, y+i, fmt.Sprintf("%3.0f", math.Round(r.value)))
	}
}

func (g *Game) renderButtons(dst *core.Screen, y int) {
	buttons := []struct {
		label  string
		action core.Action
	}{
		{"[F] Feed", core.ActionFeed},
		{"[T] Play", core.ActionPlay},
		{"[C] Clean", core.ActionClean},
		{"[Space] Pet", core.ActionPet},
	}
	total := 0
	for _, b := range buttons {
		total += len(b.label) + 2
	}
	x := (dst.Width() - total) / 2
	for _, b := range buttons {
		color := core.ColorBrightGreen
		if g.locked[b.action] {
			color = core.ColorGray
		}
		dst.DrawTextColor(x, y, b.label, color)
		x += len(b.label) + 2
	}
}

// bar renders value as a fixed-width gauge.
func bar(value, max float64) string {
	if max <= 0 {
		max = 100
	}
	filled := int(math.Round(value / max * barWidth))
	filled = core.Clamp(filled, 0, barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func moodColor(m Mood) core.Color {
	switch m {
	case MoodHappy:
		return core.ColorBrightGreen
	case MoodNeutral:
		return core.ColorYellow
	case MoodSad:
		return core.ColorOrange
	default:
		return core.ColorRed
	}
}
