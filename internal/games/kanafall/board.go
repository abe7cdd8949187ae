package kanafall

import (
	"github.com/vovakirdan/kana-arcade/internal/core"
	"github.com/vovakirdan/kana-arcade/internal/vocab"
)

// blockHeight is the number of rows a block occupies.
const blockHeight = 1

// Block is one falling vocabulary item. Positions are in play-area cells
// with Y growing towards the floor.
type Block struct {
	ID     int
	Item   vocab.Item
	X      int
	Y      float64
	Width  int
	Hinted bool // hint already surfaced for this block
}

// Bottom returns the block's lower edge.
func (b *Block) Bottom() float64 {
	return b.Y + blockHeight
}

// Label returns the text drawn for the block.
func (b *Block) Label() string {
	return "[" + b.Item.Kanji + "]"
}

// blockWidth returns the display width of a block for item.
func blockWidth(item vocab.Item) int {
	return core.TextWidth(item.Kanji) + 2
}

// spawn adds a block with a random item at a random column.
func (g *Game) spawn() {
	pool := g.lvl.Vocabulary
	if len(pool) == 0 {
		return
	}
	item := pool[g.rng.Intn(len(pool))]
	width := blockWidth(item)

	x := 0
	if span := g.playW - width; span > 0 {
		x = g.rng.Intn(span + 1)
	}

	g.nextID++
	b := &Block{ID: g.nextID, Item: item, X: x, Y: 0, Width: width}
	g.blocks = append(g.blocks, b)
	g.emit(core.EventBlockSpawned, item.Kanji)

	g.selectActive()
}

// update moves every block down by speed*dt rows, surfaces the hint and
// ends the run when a block reaches the floor.
func (g *Game) update(dtSeconds float64) {
	for _, b := range g.blocks {
		b.Y += g.fallSpeed * dtSeconds
	}
	g.selectActive()

	if b := g.activeBlock(); b != nil && !b.Hinted && b.Bottom() > g.cfg.Board.DangerRatio*float64(g.playH) {
		b.Hinted = true
		g.hint = b.Item.Reading(g.style)
		g.emit(core.EventHint, g.hint)
	}

	for _, b := range g.blocks {
		if b.Bottom() >= float64(g.playH) {
			g.finish(false)
			return
		}
	}
}

// selectActive marks the block closest to the floor as active. Ties go to
// the oldest block. The answer set is rebuilt only when the active block
// changes.
func (g *Game) selectActive() {
	var best *Block
	for _, b := range g.blocks {
		if best == nil || b.Y > best.Y || (b.Y == best.Y && b.ID < best.ID) {
			best = b
		}
	}

	id := 0
	if best != nil {
		id = best.ID
	}
	if id == g.activeID {
		return
	}
	g.activeID = id
	g.hint = ""
	if best != nil && best.Hinted {
		g.hint = best.Item.Reading(g.style)
	}
	g.answers = g.buildAnswers(best)
}

// activeBlock returns the active block, or nil.
func (g *Game) activeBlock() *Block {
	if g.activeID == 0 {
		return nil
	}
	for _, b := range g.blocks {
		if b.ID == g.activeID {
			return b
		}
	}
	return nil
}

// remove deletes a block and reselects the active one.
func (g *Game) remove(id int) {
	for i, b := range g.blocks {
		if b.ID == id {
			g.blocks = append(g.blocks[:i], g.blocks[i+1:]...)
			break
		}
	}
	g.selectActive()
}
