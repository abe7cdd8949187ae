// Package vocab holds the vocabulary library used by the falling-block game:
// categories of numbered levels, each a fixed pool of items.
package vocab

import (
	"fmt"
	"sort"
)

// ReadingStyle selects how a reading is displayed.
type ReadingStyle string

const (
	// ReadingNative shows readings in hiragana.
	ReadingNative ReadingStyle = "native"
	// ReadingAlternate shows readings in romaji.
	ReadingAlternate ReadingStyle = "alternate"
)

// ParseReadingStyle maps a settings value to a style, defaulting to native.
func ParseReadingStyle(s string) ReadingStyle {
	if ReadingStyle(s) == ReadingAlternate {
		return ReadingAlternate
	}
	return ReadingNative
}

// Toggle returns the other reading style.
func (r ReadingStyle) Toggle() ReadingStyle {
	if r == ReadingAlternate {
		return ReadingNative
	}
	return ReadingAlternate
}

// Label returns a display name for menus.
func (r ReadingStyle) Label() string {
	if r == ReadingAlternate {
		return "Romaji"
	}
	return "Hiragana"
}

// Item is one vocabulary entry. Items are immutable once loaded.
type Item struct {
	Kanji    string `yaml:"kanji"`
	Hiragana string `yaml:"hiragana"`
	Romaji   string `yaml:"romaji"`
	Meaning  string `yaml:"meaning"`
}

// Reading returns the item's reading in the given style.
// Items without romaji fall back to hiragana.
func (it Item) Reading(style ReadingStyle) string {
	if style == ReadingAlternate && it.Romaji != "" {
		return it.Romaji
	}
	return it.Hiragana
}

// Level is a fixed vocabulary pool within a category.
type Level struct {
	Number     int
	Name       string
	Vocabulary []Item
}

// Category is a themed, ordered group of levels.
type Category struct {
	ID     string
	Name   string
	Icon   string
	Order  int
	Levels []Level // sorted by Number
}

// Level returns the level with the given number.
func (c *Category) Level(n int) (*Level, bool) {
	for i := range c.Levels {
		if c.Levels[i].Number == n {
			return &c.Levels[i], true
		}
	}
	return nil, false
}

// LevelNumbers returns the level numbers in ascending order.
func (c *Category) LevelNumbers() []int {
	nums := make([]int, len(c.Levels))
	for i, lvl := range c.Levels {
		nums[i] = lvl.Number
	}
	return nums
}

// FirstLevel returns the lowest level number, or 0 for an empty category.
func (c *Category) FirstLevel() int {
	if len(c.Levels) == 0 {
		return 0
	}
	return c.Levels[0].Number
}

// NextLevel returns the level number following n, if any.
func (c *Category) NextLevel(n int) (int, bool) {
	for _, lvl := range c.Levels {
		if lvl.Number > n {
			return lvl.Number, true
		}
	}
	return 0, false
}

// Library is the complete, read-only vocabulary set.
type Library struct {
	categories []Category
}

// NewLibrary builds a library, dropping empty levels and categories and
// ordering categories by Order then ID.
func NewLibrary(categories []Category) *Library {
	lib := &Library{}
	for _, c := range categories {
		levels := make([]Level, 0, len(c.Levels))
		for _, lvl := range c.Levels {
			if len(lvl.Vocabulary) > 0 {
				levels = append(levels, lvl)
			}
		}
		if len(levels) == 0 {
			continue
		}
		sort.Slice(levels, func(i, j int) bool { return levels[i].Number < levels[j].Number })
		c.Levels = levels
		if c.Name == "" {
			c.Name = c.ID
		}
		lib.categories = append(lib.categories, c)
	}
	sort.SliceStable(lib.categories, func(i, j int) bool {
		a, b := lib.categories[i], lib.categories[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})
	return lib
}

// Empty reports whether the library has nothing to play.
func (l *Library) Empty() bool {
	return l == nil || len(l.categories) == 0
}

// Categories returns all categories in display order.
func (l *Library) Categories() []Category {
	if l == nil {
		return nil
	}
	return l.categories
}

// Category returns the category with the given ID.
func (l *Library) Category(id string) (*Category, bool) {
	if l == nil {
		return nil, false
	}
	for i := range l.categories {
		if l.categories[i].ID == id {
			return &l.categories[i], true
		}
	}
	return nil, false
}

// Resolve finds a category and level, falling back to the first level of
// the first category when either is unknown. ok is false only for an
// empty library.
func (l *Library) Resolve(categoryID string, level int) (*Category, *Level, bool) {
	if l.Empty() {
		return nil, nil, false
	}
	if cat, found := l.Category(categoryID); found {
		if lvl, found := cat.Level(level); found {
			return cat, lvl, true
		}
	}
	cat := &l.categories[0]
	return cat, &cat.Levels[0], true
}

// Count returns the number of categories, levels and items.
func (l *Library) Count() (categories, levels, items int) {
	for _, c := range l.Categories() {
		categories++
		for _, lvl := range c.Levels {
			levels++
			items += len(lvl.Vocabulary)
		}
	}
	return categories, levels, items
}

// String summarizes the library for logs.
func (l *Library) String() string {
	c, lv, it := l.Count()
	return fmt.Sprintf("%d categories, %d levels, %d items", c, lv, it)
}
