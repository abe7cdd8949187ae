package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is one character position on the screen.
// A Rune of 0 marks the right half of a double-width glyph.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing games to draw
// using simple rune operations while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Bounds returns the full screen rectangle.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
		// A wide glyph cut in half by the new edge becomes a space.
		if copyW > 0 && copyW < oldW && oldCells[y][copyW].Rune == 0 {
			s.cells[y][copyW-1] = Cell{Rune: ' '}
		}
	}
}

// Clear fills the entire screen with spaces.
func (s *Screen) Clear() {
	s.Fill(' ')
}

// Fill fills the entire screen with the given rune.
func (s *Screen) Fill(r rune) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: r}
		}
	}
}

// Set places a rune at the given position with the default color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColor(x, y, r, ColorDefault)
}

// SetColor places a colored rune at the given position and returns the
// number of cells it occupies (2 for wide glyphs).
func (s *Screen) SetColor(x, y int, r rune, c Color) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	if y < 0 || y >= s.height || x < 0 || x >= s.width {
		return w
	}
	s.breakWide(x, y)
	if w == 2 {
		if x+1 >= s.width {
			s.cells[y][x] = Cell{Rune: ' ', Color: c}
			return w
		}
		s.breakWide(x+1, y)
		s.cells[y][x] = Cell{Rune: r, Color: c}
		s.cells[y][x+1] = Cell{Rune: 0, Color: c}
		return w
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
	return w
}

// breakWide blanks the other half of a wide glyph overlapping (x, y).
func (s *Screen) breakWide(x, y int) {
	row := s.cells[y]
	if row[x].Rune == 0 && x > 0 {
		row[x-1] = Cell{Rune: ' '}
		row[x] = Cell{Rune: ' '}
	}
	if x+1 < s.width && row[x+1].Rune == 0 {
		row[x+1] = Cell{Rune: ' '}
	}
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates and for the right half of a wide glyph.
func (s *Screen) Get(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ' '
	}
	r := s.cells[y][x].Rune
	if r == 0 {
		return ' '
	}
	return r
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes colored text, advancing by each glyph's display width.
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	for _, r := range text {
		x += s.SetColor(x, y, r, c)
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawTextCenteredColor(y, text, ColorDefault)
}

// DrawTextCenteredColor draws colored text centered horizontally.
func (s *Screen) DrawTextCenteredColor(y int, text string, c Color) {
	x := (s.width - TextWidth(text)) / 2
	s.DrawTextColor(x, y, text, c)
}

// DrawRect fills a rectangular area with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, fill)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect) {
	s.DrawBoxColor(r, ColorDefault)
}

// DrawBoxColor draws a colored box outline.
func (s *Screen) DrawBoxColor(r Rect, c Color) {
	s.SetColor(r.X, r.Y, '┌', c)
	s.SetColor(r.Right()-1, r.Y, '┐', c)
	s.SetColor(r.X, r.Bottom()-1, '└', c)
	s.SetColor(r.Right()-1, r.Bottom()-1, '┘', c)

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetColor(x, r.Y, '─', c)
		s.SetColor(x, r.Bottom()-1, '─', c)
	}

	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetColor(r.X, y, '│', c)
		s.SetColor(r.Right()-1, y, '│', c)
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x+i, y, r)
	}
}

// DrawVLine draws a vertical line from (x, y) with the given length.
func (s *Screen) DrawVLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x, y+i, r)
	}
}

// DrawPanel draws a cleared, boxed panel with centered lines of text.
func (s *Screen) DrawPanel(lines []string, c Color) {
	w := 0
	for _, l := range lines {
		w = max(w, TextWidth(l))
	}
	box := s.Bounds().Centered(w+4, len(lines)+2)
	s.DrawRect(box, ' ')
	s.DrawBoxColor(box, c)
	for i, l := range lines {
		x := box.X + (box.W-TextWidth(l))/2
		s.DrawTextColor(x, box.Y+1+i, l, c)
	}
}

// String converts the screen buffer to a renderable string.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		s.writeRow(&sb, y)
	}
	return sb.String()
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	s.writeRow(&sb, y)
	return sb.String()
}

func (s *Screen) writeRow(sb *strings.Builder, y int) {
	for _, c := range s.cells[y] {
		if c.Rune == 0 {
			continue
		}
		sb.WriteRune(c.Rune)
	}
}

// TextWidth returns the number of cells text occupies on screen.
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}
