package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/kana-arcade/internal/core"
)

func TestColorStylesCoverPalette(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}

func TestRenderScreenSkipsWideContinuation(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetColor(0, 0, '猫', core.ColorPink)
	s.SetColor(2, 0, 'b', core.ColorBrown)

	out := RenderScreen(s)
	if !strings.Contains(out, "猫") || !strings.Contains(out, "b") {
		t.Errorf("RenderScreen() = %q, want both glyphs", out)
	}
	if strings.ContainsRune(out, 0) {
		t.Errorf("RenderScreen() = %q, contains a NUL rune", out)
	}
}
