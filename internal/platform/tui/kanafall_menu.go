package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/core"
	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

// kanafallScreen is the page shown by the selector.
type kanafallScreen int

const (
	screenCategories kanafallScreen = iota
	screenLevels
	screenOptions
)

// Options page rows.
const (
	optionReading = iota
	optionDifficulty
	optionBack
	optionCount
)

// KanafallSelection holds the level picked in the selector.
type KanafallSelection struct {
	Category string
	Level    int
}

// KanafallMenuModel lets users choose a category and level, and edit the
// reading style and difficulty preset.
type KanafallMenuModel struct {
	deps        *Deps
	categories  []vocab.Category
	screen      kanafallScreen
	catCursor   int
	levelCursor int
	optCursor   int
	width       int
	height      int
	keyMapper   *KeyMapper
	standalone  bool
	selection   *KanafallSelection
	quitting    bool
	back        bool
}

// NewKanafallMenuModel creates the selector. The cursor starts on the
// last played category and level.
func NewKanafallMenuModel(deps *Deps, width, height int) KanafallMenuModel {
	m := KanafallMenuModel{
		deps:      deps,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	if deps.Library != nil {
		m.categories = deps.Library.Categories()
	}
	for i, c := range m.categories {
		if c.ID == deps.Settings.LastCategory {
			m.catCursor = i
			m.levelCursor = m.startLevel(c)
		}
	}
	return m
}

// startLevel is the level row the cursor lands on when cat is entered:
// the last played level for the last played category, else the first.
func (m KanafallMenuModel) startLevel(cat vocab.Category) int {
	if cat.ID != m.deps.Settings.LastCategory {
		return 0
	}
	for j, l := range cat.Levels {
		if l.Number == m.deps.Settings.LastLevel {
			return j
		}
	}
	return 0
}

// Init initializes the model.
func (m KanafallMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m KanafallMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m KanafallMenuModel) done() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

func (m KanafallMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.screen {
	case screenLevels:
		return m.handleLevelKey(action)
	case screenOptions:
		return m.handleOptionsKey(action)
	default:
		return m.handleCategoryKey(action)
	}
}

// Category rows are followed by one "Options" row.
func (m KanafallMenuModel) handleCategoryKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.catCursor > 0 {
			m.catCursor--
		}
	case MenuActionDown:
		if m.catCursor < len(m.categories) {
			m.catCursor++
		}
	case MenuActionSelect:
		if m.catCursor == len(m.categories) {
			m.screen = screenOptions
			m.optCursor = 0
			return m, nil
		}
		m.screen = screenLevels
		m.levelCursor = m.startLevel(m.categories[m.catCursor])
	case MenuActionBack:
		m.back = true
		return m, m.done()
	}
	return m, nil
}

func (m KanafallMenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	cat := m.categories[m.catCursor]
	if len(cat.Levels) == 0 {
		if action == MenuActionBack {
			m.screen = screenCategories
		}
		return m, nil
	}

	switch action {
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(cat.Levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		lvl := cat.Levels[m.levelCursor]
		if !m.unlocked(cat.ID, lvl.Number) {
			return m, nil
		}
		m.selection = &KanafallSelection{Category: cat.ID, Level: lvl.Number}
		m.deps.Settings.LastCategory = cat.ID
		m.deps.Settings.LastLevel = lvl.Number
		m.deps.SaveSettings()
		return m, m.done()
	case MenuActionBack:
		m.screen = screenCategories
	}
	return m, nil
}

func (m KanafallMenuModel) handleOptionsKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.optCursor > 0 {
			m.optCursor--
		}
	case MenuActionDown:
		if m.optCursor < optionCount-1 {
			m.optCursor++
		}
	case MenuActionSelect:
		switch m.optCursor {
		case optionReading:
			m.deps.Settings.ReadingStyle = string(m.deps.Settings.Reading().Toggle())
			m.deps.SaveSettings()
		case optionDifficulty:
			m.deps.Settings.Difficulty = string(nextPreset(m.deps.Settings.Preset()))
			m.deps.SaveSettings()
		case optionBack:
			m.screen = screenCategories
		}
	case MenuActionBack:
		m.screen = screenCategories
	}
	return m, nil
}

// nextPreset cycles through the difficulty presets in menu order.
func nextPreset(p config.DifficultyPreset) config.DifficultyPreset {
	presets := config.Presets()
	for i, candidate := range presets {
		if candidate == p {
			return presets[(i+1)%len(presets)]
		}
	}
	return config.DifficultyNormal
}

func (m KanafallMenuModel) unlocked(category string, level int) bool {
	if m.deps.Tracker == nil {
		return true
	}
	return m.deps.Tracker.IsUnlocked(category, level)
}

// View renders the current page.
func (m KanafallMenuModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevels:
		return m.viewLevels()
	case screenOptions:
		return m.viewOptions()
	default:
		return m.viewCategories()
	}
}

func (m KanafallMenuModel) viewCategories() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("K A N A   F A L L"), m.width))
	b.WriteString("\n\n")

	if len(m.categories) == 0 {
		b.WriteString(centerText("No vocabulary loaded", m.width))
		b.WriteString("\n\n")
	} else {
		b.WriteString(centerText("Select a category:", m.width))
		b.WriteString("\n\n")
	}

	for i, c := range m.categories {
		line := fmt.Sprintf("%s %s (%d levels)", c.Icon, c.Name, len(c.Levels))
		b.WriteString(menuLine(line, i == m.catCursor, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(menuLine("Options...", m.catCursor == len(m.categories), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(menuHelpStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m KanafallMenuModel) viewLevels() string {
	var b strings.Builder
	cat := m.categories[m.catCursor]

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(cat.Name)), m.width))
	b.WriteString("\n\n")

	for i, lvl := range cat.Levels {
		selected := i == m.levelCursor
		if !m.unlocked(cat.ID, lvl.Number) {
			line := fmt.Sprintf("%2d. %-12s locked", lvl.Number, lvl.Name)
			if selected {
				b.WriteString(menuLine(line, true, m.width))
			} else {
				b.WriteString(centerText(menuLockedStyle.Render("  "+line), m.width))
			}
			b.WriteString("\n")
			continue
		}

		line := fmt.Sprintf("%2d. %-12s %d words", lvl.Number, lvl.Name, len(lvl.Vocabulary))
		if m.deps.Tracker != nil {
			best := m.deps.Tracker.Best(cat.ID, lvl.Number)
			if best.HighScore > 0 || best.BestCorrect > 0 {
				line += fmt.Sprintf("  best %d  high %d", best.BestCorrect, best.HighScore)
			}
		}
		b.WriteString(menuLine(line, selected, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m KanafallMenuModel) viewOptions() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("OPTIONS"), m.width))
	b.WriteString("\n\n")

	rows := []string{
		"Reading: " + m.deps.Settings.Reading().Label(),
		"Difficulty: " + string(m.deps.Settings.Preset()),
		"Back",
	}
	for i, row := range rows {
		b.WriteString(menuLine(row, i == m.optCursor, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.deps.SettingsPath == "" {
		b.WriteString(centerText(menuHelpStyle.Render("(settings last for this session)"), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(menuHelpStyle.Render("Enter: Change  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen level, or nil if still choosing.
func (m KanafallMenuModel) Selected() *KanafallSelection {
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m KanafallMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back on the first page.
func (m KanafallMenuModel) WantsBack() bool {
	return m.back
}

// RunKanafallSelector runs the selector and returns the chosen level.
// A nil selection means the user backed out or quit.
func RunKanafallSelector(deps *Deps, cfg core.RuntimeConfig) (*KanafallSelection, bool, error) {
	model := NewKanafallMenuModel(deps, cfg.ScreenW, cfg.ScreenH)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(KanafallMenuModel)
	if !ok {
		return nil, true, nil
	}
	return m.Selected(), m.IsQuitting(), nil
}
