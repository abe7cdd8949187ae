// Package progress tracks per-profile level unlocks and personal bests for
// the falling-block game. All tracked values only ever grow.
package progress

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

// DefaultProfile is used for local, single-player sessions.
const DefaultProfile = "local"

// Key identifies a level within a category.
type Key struct {
	Category string
	Level    int
}

// String returns the "category:level" form used in snapshots.
func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Category, k.Level)
}

// Record holds the personal bests for one level.
type Record struct {
	Category    string
	Level       int
	BestCorrect int
	HighScore   int
}

// Key returns the level the record belongs to.
func (r Record) Key() Key {
	return Key{Category: r.Category, Level: r.Level}
}

// Result is the outcome of a finished run.
type Result struct {
	Category  string
	Level     int
	Score     int
	Correct   int
	Completed bool // level cleared, as opposed to game over
}

// Outcome reports what a recorded result changed.
type Outcome struct {
	NewUnlock      bool
	Unlocked       Key
	NewHighScore   bool
	NewBestCorrect bool
}

// Backend persists progress. Implementations must keep stored values
// monotonic themselves; the tracker only ever writes larger values.
type Backend interface {
	LoadProgress(profile string) ([]Record, []Key, error)
	SaveRecord(profile string, rec Record) error
	SaveUnlock(profile string, key Key) error
}

// Tracker is the in-memory progression view for one profile. Backend
// failures are logged; the in-memory view stays authoritative.
type Tracker struct {
	mu       sync.Mutex
	profile  string
	lib      *vocab.Library
	backend  Backend
	logger   *log.Logger
	unlocked map[Key]bool
	records  map[Key]Record
}

// New creates a tracker for profile and loads stored progress from backend.
// backend and logger may be nil.
func New(profile string, lib *vocab.Library, backend Backend, logger *log.Logger) *Tracker {
	if profile == "" {
		profile = DefaultProfile
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{
		profile:  profile,
		lib:      lib,
		backend:  backend,
		logger:   logger,
		unlocked: make(map[Key]bool),
		records:  make(map[Key]Record),
	}
	if backend != nil {
		records, keys, err := backend.LoadProgress(profile)
		if err != nil {
			logger.Warn("cannot load progress", "profile", profile, "err", err)
		}
		for _, rec := range records {
			t.records[rec.Key()] = rec
		}
		for _, k := range keys {
			t.unlocked[k] = true
		}
	}
	return t
}

// Profile returns the profile name.
func (t *Tracker) Profile() string {
	return t.profile
}

// IsUnlocked reports whether a level can be played. The first level of
// every category is always unlocked.
func (t *Tracker) IsUnlocked(category string, level int) bool {
	if level == t.firstLevel(category) {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unlocked[Key{category, level}]
}

// Best returns the personal bests for a level.
func (t *Tracker) Best(category string, level int) Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rec, ok := t.records[Key{category, level}]; ok {
		return rec
	}
	return Record{Category: category, Level: level}
}

// Record stores a finished run. Bests are raised to the run's values when
// larger. A completed run unlocks the following level if it exists and
// was still locked.
func (t *Tracker) Record(r Result) Outcome {
	var out Outcome
	key := Key{r.Category, r.Level}

	t.mu.Lock()
	rec, ok := t.records[key]
	if !ok {
		rec = Record{Category: r.Category, Level: r.Level}
	}
	if r.Correct > rec.BestCorrect {
		rec.BestCorrect = r.Correct
		out.NewBestCorrect = true
	}
	if r.Score > rec.HighScore {
		rec.HighScore = r.Score
		out.NewHighScore = true
	}
	t.records[key] = rec
	t.mu.Unlock()

	if out.NewBestCorrect || out.NewHighScore {
		t.save(rec)
	}

	if !r.Completed {
		return out
	}
	next, ok := t.nextLevel(r.Category, r.Level)
	if !ok {
		return out
	}

	// Only one caller sees the level go from locked to unlocked
	nextKey := Key{r.Category, next}
	t.mu.Lock()
	already := t.unlocked[nextKey]
	t.unlocked[nextKey] = true
	t.mu.Unlock()
	if already {
		return out
	}

	out.NewUnlock = true
	out.Unlocked = nextKey
	if t.backend != nil {
		if err := t.backend.SaveUnlock(t.profile, nextKey); err != nil {
			t.logger.Warn("cannot save unlock", "profile", t.profile, "level", nextKey, "err", err)
		}
	}
	return out
}

func (t *Tracker) save(rec Record) {
	if t.backend == nil {
		return
	}
	if err := t.backend.SaveRecord(t.profile, rec); err != nil {
		t.logger.Warn("cannot save progress", "profile", t.profile, "level", rec.Key(), "err", err)
	}
}

func (t *Tracker) firstLevel(category string) int {
	if cat, ok := t.lib.Category(category); ok {
		return cat.FirstLevel()
	}
	return 1
}

func (t *Tracker) nextLevel(category string, level int) (int, bool) {
	if cat, ok := t.lib.Category(category); ok {
		return cat.NextLevel(level)
	}
	return 0, false
}

// Snapshot is a serializable view of a profile's progress.
type Snapshot struct {
	Profile        string           `yaml:"profile"`
	UnlockedLevels map[string][]int `yaml:"unlockedLevels"`
	HighScores     map[string]int   `yaml:"highScores"`
	LevelProgress  map[string]int   `yaml:"levelProgress"`
}

// Snapshot returns the current progress. Unlocked levels include the
// always-open first level of every known category and are sorted.
func (t *Tracker) Snapshot() Snapshot {
	s := Snapshot{
		Profile:        t.profile,
		UnlockedLevels: make(map[string][]int),
		HighScores:     make(map[string]int),
		LevelProgress:  make(map[string]int),
	}
	seen := make(map[Key]bool)
	add := func(k Key) {
		if seen[k] {
			return
		}
		seen[k] = true
		s.UnlockedLevels[k.Category] = append(s.UnlockedLevels[k.Category], k.Level)
	}

	for _, cat := range t.lib.Categories() {
		add(Key{cat.ID, cat.FirstLevel()})
	}

	t.mu.Lock()
	for k := range t.unlocked {
		add(k)
	}
	for k, rec := range t.records {
		s.HighScores[k.String()] = rec.HighScore
		s.LevelProgress[k.String()] = rec.BestCorrect
	}
	t.mu.Unlock()

	for _, levels := range s.UnlockedLevels {
		sort.Ints(levels)
	}
	return s
}
