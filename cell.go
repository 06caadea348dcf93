package wfc

import (
	"fmt"
	"iter"
	"math"
	"math/rand/v2"
	"slices"
)

// Cell is the state of one output position: the tiles it may still hold,
// running weight sums for entropy, and per tile and direction the number of
// neighbour tiles that still support it.
//
// A cell is Open until it is Collapsed to a single tile or Contradicted
// (no tiles left).
type Cell struct {
	possible  []bool
	enablers  []int32 // tile*4 + dir
	chosen    TileIndex
	sampled   bool
	remaining int

	sumWeight          int
	sumWeightLogWeight float64
}

// newTemplateCell builds the initial state shared by every position: all
// tiles possible, and enablers[t][d] counting the tiles u that may sit in
// direction d of t.
func newTemplateCell(rules *AdjacencyRules, hints *FrequencyHints) *Cell {
	n := rules.Len()
	c := &Cell{
		possible:           make([]bool, n),
		enablers:           make([]int32, n*4),
		chosen:             NoTile,
		remaining:          n,
		sumWeight:          hints.totalWeight,
		sumWeightLogWeight: hints.totalWeightL,
	}
	for t := range n {
		c.possible[t] = true
		for _, d := range Directions {
			c.enablers[t*4+int(d)] = int32(len(rules.allowedList(TileIndex(t), d)))
		}
	}
	return c
}

func (c *Cell) clone() Cell {
	return Cell{
		possible:           slices.Clone(c.possible),
		enablers:           slices.Clone(c.enablers),
		chosen:             c.chosen,
		sampled:            c.sampled,
		remaining:          c.remaining,
		sumWeight:          c.sumWeight,
		sumWeightLogWeight: c.sumWeightLogWeight,
	}
}

// PossibleTiles yields the tiles still possible here, ascending.
func (c *Cell) PossibleTiles() iter.Seq[TileIndex] {
	return func(yield func(TileIndex) bool) {
		for t, ok := range c.possible {
			if ok && !yield(TileIndex(t)) {
				return
			}
		}
	}
}

func (c *Cell) IsPossible(t TileIndex) bool { return c.possible[t] }

// Remaining returns the number of possible tiles.
func (c *Cell) Remaining() int { return c.remaining }

// Collapsed reports whether a tile has been locked in.
func (c *Cell) Collapsed() bool { return c.chosen != NoTile }

// Sampled reports whether the cell was collapsed by weighted sampling
// rather than narrowed to one tile by propagation.
func (c *Cell) Sampled() bool { return c.sampled }

// Chosen returns the locked tile, or NoTile.
func (c *Cell) Chosen() TileIndex { return c.chosen }

// NoPossibleTiles is the contradiction signal.
func (c *Cell) NoPossibleTiles() bool { return c.sumWeight == 0 }

// Entropy is the Shannon entropy, in bits, of the weights of the remaining
// tiles. It is 0 once collapsed and NaN when contradicted.
func (c *Cell) Entropy() float64 {
	if c.Collapsed() {
		return 0
	}
	if c.sumWeight <= 0 {
		return math.NaN()
	}
	sw := float64(c.sumWeight)
	return math.Log2(sw) - c.sumWeightLogWeight/sw
}

// chooseTile samples a remaining tile proportionally to its weight, locks it
// in and removes every competitor, reporting each removal to onRemove.
func (c *Cell) chooseTile(hints *FrequencyHints, rng *rand.Rand, onRemove func(TileIndex)) (TileIndex, error) {
	if c.sumWeight <= 0 {
		return NoTile, fmt.Errorf("%w: sampling a cell with no weight", ErrInvariant)
	}
	r := rng.IntN(c.sumWeight)
	chosen := NoTile
	for t := range c.PossibleTiles() {
		r -= hints.Weight(t)
		if r < 0 {
			chosen = t
			break
		}
	}
	if chosen == NoTile {
		return NoTile, fmt.Errorf("%w: weighted sampling exhausted %d tiles (sum weight %d)",
			ErrInvariant, c.remaining, c.sumWeight)
	}
	c.chosen = chosen
	c.sampled = true
	for t, ok := range c.possible {
		if ok && TileIndex(t) != chosen {
			c.removeTile(TileIndex(t), nil)
			if onRemove != nil {
				onRemove(TileIndex(t))
			}
		}
	}
	return chosen, nil
}

// removeTile marks t impossible. With hints the weight sums are kept exact;
// collapse passes nil because a collapsed cell's entropy no longer matters.
// A cell left with one tile through weighted removal becomes collapsed;
// the return value reports that transition.
func (c *Cell) removeTile(t TileIndex, hints *FrequencyHints) (collapsed bool) {
	if !c.possible[t] {
		return false
	}
	c.possible[t] = false
	c.remaining--
	if hints == nil {
		return false
	}
	c.sumWeight -= hints.Weight(t)
	c.sumWeightLogWeight -= hints.weightLogWeight(t)
	if c.remaining == 1 && c.chosen == NoTile {
		for u := range c.PossibleTiles() {
			c.chosen = u
		}
		return true
	}
	return false
}
