package pet

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/kana-arcade/internal/config"
	"github.com/vovakirdan/kana-arcade/internal/core"
)

// tickRate of 10 makes every Step exactly 100ms of virtual time.
const tickRate = 10

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New(config.DefaultPetConfig(), log.New(io.Discard))
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tickRate, Seed: 1})
	return g
}

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// run steps the game for d of virtual time with no input.
func run(g *Game, d time.Duration) []core.Event {
	var events []core.Event
	for i := 0; i < int(d/(time.Second/tickRate)); i++ {
		events = append(events, g.Step(core.NewInputFrame()).Events...)
	}
	return events
}

func TestMoodFor(t *testing.T) {
	m := config.DefaultPetConfig().Mood
	tests := []struct {
		stats Stats
		want  Mood
	}{
		{Stats{100, 100, 100}, MoodHappy},
		{Stats{80, 80, 80}, MoodHappy},
		{Stats{50, 50, 50}, MoodNeutral},
		{Stats{79, 80, 80}, MoodNeutral},
		{Stats{25, 25, 25}, MoodSad},
		{Stats{20, 20, 20}, MoodMiserable},
		{Stats{0, 0, 0}, MoodMiserable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MoodFor(tt.stats, m), "stats %+v", tt.stats)
	}
}

func TestStatsApplyClamps(t *testing.T) {
	s := Stats{95, 3, 50}.Apply(30, -15, 0, 100)
	assert.Equal(t, Stats{100, 0, 50}, s)
}

func TestStatsStayInRange(t *testing.T) {
	g := newTestGame(t)
	actions := []core.Action{core.ActionFeed, core.ActionPlay, core.ActionClean, core.ActionPet}
	for i := 0; i < 2000; i++ {
		g.Step(input(actions[i%len(actions)]))
		s := g.Stats()
		for _, v := range []float64{s.Happiness, s.Hunger, s.Cleanliness} {
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 100.0)
		}
	}
}

func TestFeedRefusedWhenFull(t *testing.T) {
	g := newTestGame(t)
	res := g.Step(input(core.ActionFeed))

	assert.False(t, g.Locked(core.ActionFeed))
	assert.Equal(t, "🤢", g.Bubble())
	assert.Contains(t, res.Events, core.Event{Kind: core.EventBubble, Text: "🤢"})
}

func TestFeedLocksAndAppliesAfterDelay(t *testing.T) {
	g := newTestGame(t)
	g.stats = Stats{Happiness: 50, Hunger: 50, Cleanliness: 50}

	assert.True(t, g.Feed())
	assert.True(t, g.Locked(core.ActionFeed))
	assert.False(t, g.Feed(), "locked control ignores repeats")

	run(g, 900*time.Millisecond)
	assert.Equal(t, 50.0, g.Stats().Hunger, "effect waits for the action to finish")
	assert.True(t, g.Locked(core.ActionFeed))

	run(g, 100*time.Millisecond)
	assert.False(t, g.Locked(core.ActionFeed))
	assert.Equal(t, Stats{Happiness: 55, Hunger: 75, Cleanliness: 45}, g.Stats())
}

func TestPlayNeedsFood(t *testing.T) {
	g := newTestGame(t)
	g.stats = Stats{Happiness: 50, Hunger: 19, Cleanliness: 50}

	assert.False(t, g.Play())
	assert.Equal(t, "😫", g.Bubble())

	g.stats.Hunger = 20
	require.True(t, g.Play())
	run(g, 1500*time.Millisecond)
	assert.Equal(t, Stats{Happiness: 80, Hunger: 5, Cleanliness: 40}, g.Stats())
}

func TestCleanRefusedWhenSpotless(t *testing.T) {
	g := newTestGame(t)
	assert.False(t, g.Clean())
	assert.Equal(t, "✨", g.Bubble())

	g.stats.Cleanliness = 80
	require.True(t, g.Clean())
	run(g, 1200*time.Millisecond)
	assert.Equal(t, 100.0, g.Stats().Cleanliness)
	assert.False(t, g.Locked(core.ActionClean))
}

func TestPetIsImmediate(t *testing.T) {
	g := newTestGame(t)
	g.stats.Happiness = 90

	res := g.Step(input(core.ActionPet))
	assert.Equal(t, 92.0, g.Stats().Happiness)
	assert.False(t, g.Locked(core.ActionPet))
	assert.Contains(t, res.Events, core.Event{Kind: core.EventBubble, Text: "💕"})
}

func TestDecay(t *testing.T) {
	g := newTestGame(t)

	run(g, 2900*time.Millisecond)
	assert.Equal(t, Stats{100, 100, 100}, g.Stats())

	run(g, 100*time.Millisecond)
	assert.Equal(t, Stats{Happiness: 99.5, Hunger: 99, Cleanliness: 99.2}, g.Stats())

	run(g, 3*time.Second)
	assert.InDelta(t, 98.4, g.Stats().Cleanliness, 1e-9)
}

func TestResizeKeepsStats(t *testing.T) {
	g := newTestGame(t)
	run(g, 3*time.Second)
	before := g.Stats()

	g.Resize(core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: tickRate})
	assert.Equal(t, before, g.Stats())
	assert.False(t, g.State().Paused)
}

func TestMoodChangedEvent(t *testing.T) {
	g := newTestGame(t)
	g.stats = Stats{Happiness: 80.2, Hunger: 80.5, Cleanliness: 80.5}

	events := run(g, 3*time.Second)
	assert.Equal(t, MoodNeutral, g.Mood())
	assert.Contains(t, events, core.Event{Kind: core.EventMoodChanged, Text: "neutral"})
}

func TestBubbleExpires(t *testing.T) {
	g := newTestGame(t)
	g.Pet()
	run(g, 1400*time.Millisecond)
	assert.Equal(t, "💕", g.Bubble())
	run(g, 100*time.Millisecond)
	assert.Empty(t, g.Bubble())
}

func TestPauseFreezesTimers(t *testing.T) {
	g := newTestGame(t)
	g.stats.Hunger = 50
	require.True(t, g.Feed())

	g.Step(input(core.ActionPause))
	assert.True(t, g.State().Paused)
	run(g, 5*time.Second)
	assert.Equal(t, 50.0, g.Stats().Hunger)
	assert.True(t, g.Locked(core.ActionFeed))

	g.Step(input(core.ActionPause))
	run(g, time.Second)
	assert.Equal(t, 75.0, g.Stats().Hunger)
}

func TestResetStopsPendingActions(t *testing.T) {
	g := newTestGame(t)
	g.stats.Hunger = 10
	require.True(t, g.Feed())

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tickRate})
	run(g, 2*time.Second)
	assert.Equal(t, 100.0, g.Stats().Hunger)
	assert.False(t, g.Locked(core.ActionFeed))
}

func TestNeverGameOver(t *testing.T) {
	g := newTestGame(t)
	run(g, 10*time.Minute)
	assert.False(t, g.State().GameOver)
	assert.Equal(t, MoodMiserable, g.Mood())
	assert.Equal(t, Stats{}, g.Stats())
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	g.Pet()

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Poopy")
	assert.Contains(t, out, "Mood: happy")
	assert.Contains(t, out, "[F] Feed")
	assert.Contains(t, out, "💕")

	small := core.NewScreen(20, 10)
	g.Render(small)
	assert.True(t, strings.Contains(small.String(), "too small"))
}
