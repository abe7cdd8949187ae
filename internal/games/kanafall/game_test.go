package kanafall

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/core"
	"github.com/vovakirdan/kana-arcade/internal/progress"
	"github.com/vovakirdan/kana-arcade/internal/registry"
	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

// tickRate of 10 makes every Step exactly 100ms of virtual time.
const tickRate = 10

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tickRate, Seed: 42}
}

func items(pairs ...string) []vocab.Item {
	var out []vocab.Item
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, vocab.Item{Kanji: pairs[i], Hiragana: pairs[i+1], Romaji: "r" + pairs[i+1]})
	}
	return out
}

func testLibrary() *vocab.Library {
	return vocab.NewLibrary([]vocab.Category{
		{
			ID: "numbers", Name: "Numbers", Order: 1,
			Levels: []vocab.Level{
				{Number: 1, Name: "One", Vocabulary: items("一", "いち")},
				{Number: 2, Name: "Many", Vocabulary: items(
					"二", "に", "三", "さん", "四", "よん", "五", "ご",
					"六", "ろく", "七", "なな", "八", "はち", "九", "きゅう")},
			},
		},
		{
			ID: "animals", Name: "Animals", Order: 2,
			Levels: []vocab.Level{
				{Number: 1, Name: "Pets", Vocabulary: items("犬", "いぬ", "猫", "ねこ", "鳥", "とり")},
			},
		},
	})
}

func newTestGame(t *testing.T, cfg config.KanafallConfig, opts Options) *Game {
	t.Helper()
	if opts.Library == nil {
		opts.Library = testLibrary()
	}
	g := New(cfg, opts, log.New(io.Discard))
	g.Reset(runtimeConfig())
	return g
}

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func answerCorrect(g *Game) core.StepResult {
	return g.Step(input(core.AnswerAction(g.Answers().Correct)))
}

func answerWrong(g *Game) core.StepResult {
	return g.Step(input(core.AnswerAction((g.Answers().Correct + 1) % len(g.Answers().Options))))
}

func countEvents(events []core.Event, kind core.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// assertActiveInvariant checks that the active block is the one nearest
// the floor, ties going to the lowest ID.
func assertActiveInvariant(t *testing.T, g *Game) {
	t.Helper()
	blocks := g.Blocks()
	if len(blocks) == 0 {
		assert.Nil(t, g.Active())
		return
	}
	want := blocks[0]
	for _, b := range blocks[1:] {
		if b.Y > want.Y || (b.Y == want.Y && b.ID < want.ID) {
			want = b
		}
	}
	require.NotNil(t, g.Active())
	assert.Equal(t, want.ID, g.Active().ID)
	assert.Equal(t, want.ID, g.Answers().BlockID)
}

func TestStartSpawnsOneBlock(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})

	assert.Equal(t, PhaseRunning, g.Phase())
	require.Len(t, g.Blocks(), 1)
	b := g.Blocks()[0]
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, 0.0, b.Y)
	assert.Equal(t, 4, b.Width, "two-cell kanji plus brackets")
	assert.GreaterOrEqual(t, b.X, 0)
	assert.LessOrEqual(t, b.X, 78-b.Width)
	assertActiveInvariant(t, g)
	assert.Equal(t, 3, g.Pending(), "spawn, ramp and frame tasks")
}

func TestNumbersLevelOneExample(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 1})

	active := g.Active()
	require.NotNil(t, active)
	assert.Equal(t, "一", active.Item.Kanji)
	assert.Equal(t, []string{"いち"}, g.Answers().Options)

	res := answerCorrect(g)
	assert.Equal(t, 10, res.State.Score)
	assert.Equal(t, 1, g.Correct())
	assert.Equal(t, 1, countEvents(res.Events, core.EventBlockCleared))

	// no blocks were left, so a fresh one spawns at once
	require.Len(t, g.Blocks(), 1)
	assert.Equal(t, 2, g.Active().ID)
	assertActiveInvariant(t, g)
}

func TestCorrectAnswerPromotesNextLowest(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})

	// let a second block spawn behind the first
	for i := 0; i < 30; i++ {
		g.Step(idle())
	}
	require.Len(t, g.Blocks(), 2)
	first, second := g.Blocks()[0], g.Blocks()[1]
	assert.Equal(t, first.ID, g.Active().ID)

	answerCorrect(g)
	require.Len(t, g.Blocks(), 1)
	assert.Equal(t, second.ID, g.Active().ID)
	assert.Equal(t, second.ID, g.Answers().BlockID)
}

func TestWrongAnswerOnlyCostsPoints(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})

	before := g.Answers()
	activeID := g.Active().ID
	res := answerWrong(g)
	assert.Equal(t, 0, res.State.Score, "score floors at zero")
	assert.Equal(t, 0, g.Correct())
	assert.Equal(t, activeID, g.Active().ID)
	assert.Len(t, g.Blocks(), 1)
	assert.Equal(t, before, g.Answers())
	assert.Equal(t, 1, countEvents(res.Events, core.EventWrongAnswer))

	answerCorrect(g)
	answerCorrect(g)
	answerWrong(g)
	assert.Equal(t, 15, g.State().Score)
	assert.Equal(t, 2, g.Correct())
}

func TestAnswerSetCandidates(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})

	set := g.Answers()
	require.Len(t, set.Options, 6)
	seen := make(map[string]bool)
	for _, o := range set.Options {
		assert.False(t, seen[o], "duplicate option %q", o)
		seen[o] = true
	}
	assert.Equal(t, g.Active().Item.Hiragana, set.Options[set.Correct])

	small := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "animals", Level: 1})
	assert.Len(t, small.Answers().Options, 3, "pool smaller than the button count")
}

func TestAlternateReadingStyle(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(),
		Options{Category: "numbers", Level: 1, Style: vocab.ReadingAlternate})
	assert.Equal(t, []string{"rいち"}, g.Answers().Options)
}

func TestAnswersMemoizedByActiveBlock(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})

	first := g.Answers()
	for i := 0; i < 10; i++ {
		g.Step(idle())
	}
	again := g.Answers()
	assert.Equal(t, first.BlockID, again.BlockID)
	assert.Same(t, &first.Options[0], &again.Options[0], "answers must not be rebuilt")

	answerCorrect(g)
	assert.NotEqual(t, first.BlockID, g.Answers().BlockID)
}

func TestActiveInvariantThroughoutRun(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})

	for i := 0; i < 400 && g.Phase() == PhaseRunning; i++ {
		if i%7 == 0 {
			answerCorrect(g)
		} else {
			g.Step(idle())
		}
		assertActiveInvariant(t, g)
	}
}

func TestGameOverAtFloor(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})

	var gameOvers int
	for i := 0; i < 1000 && g.Phase() == PhaseRunning; i++ {
		gameOvers += countEvents(g.Step(idle()).Events, core.EventGameOver)
	}
	require.Equal(t, PhaseGameOver, g.Phase())
	assert.Equal(t, 1, gameOvers)
	assert.True(t, g.State().GameOver)
	assert.False(t, g.State().Cleared)
	assert.Equal(t, 0, g.Pending(), "terminal state releases all timers")

	blocks := len(g.Blocks())
	for i := 0; i < 100; i++ {
		g.Step(idle())
	}
	assert.Len(t, g.Blocks(), blocks, "nothing moves or spawns after the run ends")
	assert.False(t, g.Answer(0))
}

func TestLevelCompleteExactlyOnce(t *testing.T) {
	cfg := config.DefaultKanafallConfig()
	cfg.Scoring.ClearTarget = 3
	g := newTestGame(t, cfg, Options{Category: "numbers", Level: 2})

	var completes int
	for i := 0; i < 3; i++ {
		completes += countEvents(answerCorrect(g).Events, core.EventLevelComplete)
	}
	require.Equal(t, PhaseLevelComplete, g.Phase())
	assert.Equal(t, 1, completes)
	assert.Equal(t, 30, g.State().Score)
	assert.True(t, g.State().Cleared)
	assert.Equal(t, 0, g.Pending())

	for i := 0; i < 1000; i++ {
		res := g.Step(idle())
		assert.Zero(t, countEvents(res.Events, core.EventGameOver))
		assert.Zero(t, countEvents(res.Events, core.EventLevelComplete))
	}
	assert.Equal(t, PhaseLevelComplete, g.Phase())
}

func TestLevelCompleteUnlocksAndAdvances(t *testing.T) {
	lib := testLibrary()
	tracker := progress.New("local", lib, nil, nil)
	cfg := config.DefaultKanafallConfig()
	cfg.Scoring.ClearTarget = 2

	g := newTestGame(t, cfg, Options{Library: lib, Progress: tracker, Category: "numbers", Level: 1})
	_, ok := g.NextLevel()
	assert.False(t, ok, "level 2 starts locked")

	answerCorrect(g)
	res := answerCorrect(g)
	require.Equal(t, PhaseLevelComplete, g.Phase())
	assert.True(t, g.Outcome().NewUnlock)
	assert.Equal(t, progress.Key{Category: "numbers", Level: 2}, g.Outcome().Unlocked)
	assert.Contains(t, res.Events, core.Event{Kind: core.EventLevelUnlocked, Text: "numbers:2"})
	assert.Equal(t, 20, tracker.Best("numbers", 1).HighScore)

	g.Step(input(core.ActionNext))
	assert.Equal(t, PhaseRunning, g.Phase())
	cat, lvl := g.Level()
	assert.Equal(t, "numbers", cat)
	assert.Equal(t, 2, lvl)
	assert.Equal(t, 0, g.State().Score)

	// replaying level 1 does not unlock again
	again := newTestGame(t, cfg, Options{Library: lib, Progress: tracker, Category: "numbers", Level: 1})
	answerCorrect(again)
	answerCorrect(again)
	assert.False(t, again.Outcome().NewUnlock)
}

func TestGameOverRecordsProgress(t *testing.T) {
	lib := testLibrary()
	tracker := progress.New("local", lib, nil, nil)
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Library: lib, Progress: tracker, Category: "numbers", Level: 1})

	answerCorrect(g)
	for i := 0; i < 1000 && g.Phase() == PhaseRunning; i++ {
		g.Step(idle())
	}
	require.Equal(t, PhaseGameOver, g.Phase())
	assert.False(t, g.Outcome().NewUnlock)
	assert.Equal(t, 1, tracker.Best("numbers", 1).BestCorrect)
	assert.False(t, tracker.IsUnlocked("numbers", 2))
}

func TestDifficultyRamp(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})
	assert.InDelta(t, 1.2, g.FallSpeed(), 1e-9)
	assert.Equal(t, 3*time.Second, g.SpawnInterval())

	var speedUps int
	for i := 0; i < 50; i++ {
		speedUps += countEvents(g.Step(idle()).Events, core.EventSpeedUp)
	}
	assert.Equal(t, 1, speedUps)
	assert.InDelta(t, 1.35, g.FallSpeed(), 1e-9)
	assert.Equal(t, 2800*time.Millisecond, g.SpawnInterval())
}

func TestFixedPresetDisablesRamp(t *testing.T) {
	cfg := config.DefaultKanafallConfig()
	config.ApplyKanafallPreset(&cfg, config.DifficultyFixed)
	g := newTestGame(t, cfg, Options{Category: "numbers", Level: 2})
	assert.Equal(t, 2, g.Pending(), "spawn and frame tasks only")

	for i := 0; i < 60; i++ {
		g.Step(idle())
	}
	assert.Equal(t, PhaseRunning, g.Phase())
	assert.InDelta(t, 1.2, g.FallSpeed(), 1e-9)
}

func TestSpawnCadence(t *testing.T) {
	cfg := config.DefaultKanafallConfig()
	config.ApplyKanafallPreset(&cfg, config.DifficultyFixed)
	g := newTestGame(t, cfg, Options{Category: "numbers", Level: 2})

	for i := 0; i < 29; i++ {
		g.Step(idle())
	}
	assert.Len(t, g.Blocks(), 1)
	g.Step(idle())
	assert.Len(t, g.Blocks(), 2)
	assert.Greater(t, g.Blocks()[1].ID, g.Blocks()[0].ID)
}

func TestHintSurfacesNearFloor(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 1})
	threshold := 0.7 * float64(g.playH)

	var hints int
	for i := 0; i < 1000 && g.Phase() == PhaseRunning; i++ {
		res := g.Step(idle())
		hints += countEvents(res.Events, core.EventHint)
		if a := g.Active(); a != nil && a.Bottom() <= threshold {
			assert.Empty(t, g.Hint())
		}
		if g.Hint() != "" {
			assert.Equal(t, "いち", g.Hint())
		}
	}
	assert.GreaterOrEqual(t, hints, 1)
}

func TestPauseFreezesRun(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})
	g.Step(idle())
	y := g.Active().Y

	g.Step(input(core.ActionPause))
	assert.True(t, g.State().Paused)
	for i := 0; i < 100; i++ {
		g.Step(idle())
	}
	assert.Equal(t, y, g.Active().Y)
	assert.False(t, g.Answer(0))

	g.Step(input(core.ActionPause))
	assert.False(t, g.State().Paused)
	assert.Greater(t, g.Active().Y, y)
}

func TestResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})
	for i := 0; i < 5; i++ {
		answerCorrect(g)
	}
	score, correct := g.State().Score, g.Correct()
	require.Greater(t, score, 0)

	g.Resize(core.RuntimeConfig{ScreenW: 44, ScreenH: 20, TickRate: tickRate})
	assert.Equal(t, PhaseRunning, g.Phase())
	assert.True(t, g.State().Paused, "resize pauses a running level")
	assert.Equal(t, score, g.State().Score)
	assert.Equal(t, correct, g.Correct())
	for _, b := range g.Blocks() {
		assert.LessOrEqual(t, b.X+b.Width, 42)
	}

	g.Step(input(core.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestResetReleasesPreviousRun(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 2})
	for i := 0; i < 40; i++ {
		answerCorrect(g)
	}
	g.Reset(runtimeConfig())
	assert.Equal(t, 3, g.Pending())
	assert.Len(t, g.Blocks(), 1)
	assert.Equal(t, 0, g.State().Score)
	assert.Equal(t, 0, g.Correct())
	assert.InDelta(t, 1.2, g.FallSpeed(), 1e-9)
}

func TestUnknownLevelFallsBack(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "plants", Level: 9})
	cat, lvl := g.Level()
	assert.Equal(t, "numbers", cat)
	assert.Equal(t, 1, lvl)
}

func TestNoVocabularyStaysIdle(t *testing.T) {
	g := New(config.DefaultKanafallConfig(), Options{Library: vocab.NewLibrary(nil)}, log.New(io.Discard))
	g.Reset(runtimeConfig())

	assert.Equal(t, PhaseIdle, g.Phase())
	res := g.Step(input(core.ActionAnswer1))
	assert.False(t, res.State.GameOver)
	assert.Empty(t, g.Blocks())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "No vocabulary loaded")
}

func TestRender(t *testing.T) {
	g := newTestGame(t, config.DefaultKanafallConfig(), Options{Category: "numbers", Level: 1})
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "[一]")
	assert.Contains(t, out, "1) いち")

	for i := 0; i < 1000 && g.Phase() == PhaseRunning; i++ {
		g.Step(idle())
	}
	screen.Clear()
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
}

func TestRegistryFactory(t *testing.T) {
	game, err := registry.Create("kanafall", registry.Env{Category: "animals", Level: 1})
	require.NoError(t, err)
	game.Reset(runtimeConfig())

	kf, ok := game.(*Game)
	require.True(t, ok)
	cat, lvl := kf.Level()
	assert.Equal(t, "animals", cat)
	assert.Equal(t, 1, lvl)
	assert.Equal(t, PhaseRunning, kf.Phase())
}
