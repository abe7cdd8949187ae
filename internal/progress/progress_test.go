package progress

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

func testLibrary() *vocab.Library {
	item := vocab.Item{Kanji: "一", Hiragana: "いち"}
	level := func(n int) vocab.Level {
		return vocab.Level{Number: n, Vocabulary: []vocab.Item{item}}
	}
	return vocab.NewLibrary([]vocab.Category{
		{ID: "numbers", Order: 1, Levels: []vocab.Level{level(1), level(2), level(3)}},
		{ID: "animals", Order: 2, Levels: []vocab.Level{level(1)}},
	})
}

type memBackend struct {
	records  map[string]map[Key]Record
	unlocked map[string][]Key
	failSave bool
	saves    int
}

func newMemBackend() *memBackend {
	return &memBackend{
		records:  make(map[string]map[Key]Record),
		unlocked: make(map[string][]Key),
	}
}

func (b *memBackend) LoadProgress(profile string) ([]Record, []Key, error) {
	var recs []Record
	for _, r := range b.records[profile] {
		recs = append(recs, r)
	}
	return recs, b.unlocked[profile], nil
}

func (b *memBackend) SaveRecord(profile string, rec Record) error {
	b.saves++
	if b.failSave {
		return errors.New("disk full")
	}
	if b.records[profile] == nil {
		b.records[profile] = make(map[Key]Record)
	}
	b.records[profile][rec.Key()] = rec
	return nil
}

func (b *memBackend) SaveUnlock(profile string, key Key) error {
	if b.failSave {
		return errors.New("disk full")
	}
	b.unlocked[profile] = append(b.unlocked[profile], key)
	return nil
}

func TestFirstLevelAlwaysUnlocked(t *testing.T) {
	tr := New("", testLibrary(), nil, nil)
	assert.Equal(t, DefaultProfile, tr.Profile())
	assert.True(t, tr.IsUnlocked("numbers", 1))
	assert.True(t, tr.IsUnlocked("animals", 1))
	assert.False(t, tr.IsUnlocked("numbers", 2))
}

func TestCompletionUnlocksNextLevel(t *testing.T) {
	tr := New("local", testLibrary(), nil, nil)

	out := tr.Record(Result{Category: "numbers", Level: 1, Score: 300, Correct: 30, Completed: true})
	assert.True(t, out.NewUnlock)
	assert.Equal(t, Key{"numbers", 2}, out.Unlocked)
	assert.True(t, tr.IsUnlocked("numbers", 2))

	again := tr.Record(Result{Category: "numbers", Level: 1, Score: 310, Correct: 30, Completed: true})
	assert.False(t, again.NewUnlock, "next level was already unlocked")
	assert.True(t, again.NewHighScore)
}

func TestConcurrentCompletionsUnlockOnce(t *testing.T) {
	tr := New("local", testLibrary(), nil, nil)

	var unlocks atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := tr.Record(Result{Category: "numbers", Level: 1, Score: 300, Correct: 30, Completed: true})
			if out.NewUnlock {
				unlocks.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), unlocks.Load())
	assert.True(t, tr.IsUnlocked("numbers", 2))
}

func TestCompletingLastLevelUnlocksNothing(t *testing.T) {
	tr := New("local", testLibrary(), nil, nil)
	out := tr.Record(Result{Category: "animals", Level: 1, Score: 300, Correct: 30, Completed: true})
	assert.False(t, out.NewUnlock)
}

func TestGameOverNeverUnlocks(t *testing.T) {
	tr := New("local", testLibrary(), nil, nil)
	out := tr.Record(Result{Category: "numbers", Level: 1, Score: 120, Correct: 12})
	assert.False(t, out.NewUnlock)
	assert.False(t, tr.IsUnlocked("numbers", 2))
	assert.Equal(t, 12, tr.Best("numbers", 1).BestCorrect)
}

func TestBestsAreMonotonic(t *testing.T) {
	tr := New("local", testLibrary(), nil, nil)

	tr.Record(Result{Category: "numbers", Level: 1, Score: 150, Correct: 15})
	out := tr.Record(Result{Category: "numbers", Level: 1, Score: 40, Correct: 20})
	assert.False(t, out.NewHighScore)
	assert.True(t, out.NewBestCorrect)

	best := tr.Best("numbers", 1)
	assert.Equal(t, 150, best.HighScore)
	assert.Equal(t, 20, best.BestCorrect)

	tr.Record(Result{Category: "numbers", Level: 1, Score: 0, Correct: 0})
	assert.Equal(t, best, tr.Best("numbers", 1))
}

func TestSnapshot(t *testing.T) {
	tr := New("alice", testLibrary(), nil, nil)
	tr.Record(Result{Category: "numbers", Level: 1, Score: 300, Correct: 30, Completed: true})
	tr.Record(Result{Category: "numbers", Level: 2, Score: 90, Correct: 9})

	s := tr.Snapshot()
	assert.Equal(t, "alice", s.Profile)
	assert.Equal(t, map[string][]int{"numbers": {1, 2}, "animals": {1}}, s.UnlockedLevels)
	assert.Equal(t, map[string]int{"numbers:1": 300, "numbers:2": 90}, s.HighScores)
	assert.Equal(t, map[string]int{"numbers:1": 30, "numbers:2": 9}, s.LevelProgress)
}

func TestBackendPersistence(t *testing.T) {
	b := newMemBackend()
	tr := New("bob", testLibrary(), b, nil)
	tr.Record(Result{Category: "numbers", Level: 1, Score: 300, Correct: 30, Completed: true})

	reloaded := New("bob", testLibrary(), b, nil)
	assert.True(t, reloaded.IsUnlocked("numbers", 2))
	assert.Equal(t, 300, reloaded.Best("numbers", 1).HighScore)

	other := New("carol", testLibrary(), b, nil)
	assert.False(t, other.IsUnlocked("numbers", 2))
}

func TestBackendSkipsUnchangedRecords(t *testing.T) {
	b := newMemBackend()
	tr := New("bob", testLibrary(), b, nil)
	tr.Record(Result{Category: "numbers", Level: 1, Score: 50, Correct: 5})
	tr.Record(Result{Category: "numbers", Level: 1, Score: 10, Correct: 1})
	assert.Equal(t, 1, b.saves)
}

func TestBackendFailureKeepsMemoryView(t *testing.T) {
	b := newMemBackend()
	b.failSave = true
	tr := New("bob", testLibrary(), b, nil)

	out := tr.Record(Result{Category: "numbers", Level: 1, Score: 300, Correct: 30, Completed: true})
	require.True(t, out.NewUnlock)
	assert.True(t, tr.IsUnlocked("numbers", 2))
	assert.Equal(t, 300, tr.Best("numbers", 1).HighScore)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "food:3", Key{"food", 3}.String())
}
