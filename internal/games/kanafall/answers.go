package kanafall

import (
	"github.com/vovakirdan/kana-arcade/internal/core"
)

// AnswerSet is the list of readings offered for one block.
type AnswerSet struct {
	BlockID int
	Options []string
	Correct int // index of the correct reading in Options
}

// buildAnswers returns the correct reading of b plus up to n-1 distinct
// other readings from the level pool, shuffled.
func (g *Game) buildAnswers(b *Block) AnswerSet {
	if b == nil {
		return AnswerSet{}
	}
	n := core.Clamp(g.cfg.Board.Answers, 1, core.MaxAnswers)
	correct := b.Item.Reading(g.style)

	seen := map[string]bool{correct: true}
	options := []string{correct}
	for _, i := range g.rng.Perm(len(g.lvl.Vocabulary)) {
		if len(options) >= n {
			break
		}
		r := g.lvl.Vocabulary[i].Reading(g.style)
		if seen[r] {
			continue
		}
		seen[r] = true
		options = append(options, r)
	}

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	set := AnswerSet{BlockID: b.ID, Options: options}
	for i, o := range options {
		if o == correct {
			set.Correct = i
		}
	}
	return set
}

// Answer taps answer button i (0-based). Returns true for a correct answer.
// Taps outside a running game, without an active block or on an empty
// button are ignored.
func (g *Game) Answer(i int) bool {
	if g.phase != PhaseRunning || g.paused {
		return false
	}
	b := g.activeBlock()
	if b == nil || i < 0 || i >= len(g.answers.Options) {
		return false
	}

	if i != g.answers.Correct {
		g.score = max(0, g.score-g.cfg.Scoring.Wrong)
		g.emit(core.EventWrongAnswer, g.answers.Options[i])
		return false
	}

	g.score += g.cfg.Scoring.Correct
	g.correct++
	g.emit(core.EventBlockCleared, b.Item.Kanji)
	g.remove(b.ID)

	if g.correct >= g.cfg.Scoring.ClearTarget {
		g.finish(true)
		return true
	}
	if len(g.blocks) == 0 {
		g.spawn()
	}
	return true
}
