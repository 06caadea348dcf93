package wfc

import (
	"container/heap"
	"context"
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Status is the outcome of a Step.
type Status uint8

const (
	// StatusRunning means more steps are needed.
	StatusRunning Status = iota
	// StatusComplete means every cell is collapsed.
	StatusComplete
	// StatusContradiction means a cell ran out of tiles. The run is over.
	StatusContradiction
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusComplete:
		return "complete"
	case StatusContradiction:
		return "contradiction"
	}
	return "unknown"
}

type removal struct {
	pos  int
	tile TileIndex
}

// Solver runs the collapse and propagate loop over a grid of cells.
// It is single-threaded: Step must not be called concurrently.
type Solver struct {
	width, height int

	rules  *AdjacencyRules
	hints  *FrequencyHints
	colors []Color

	cells    []Cell
	queue    entropyQueue
	removals []removal
	rng      *rand.Rand

	status    Status
	steps     int
	collapsed int
	failedAt  int
}

// NewSolver builds a width*height grid where every cell starts with all
// tiles possible. colors gives the output color of each tile.
func NewSolver(rules *AdjacencyRules, hints *FrequencyHints, colors []Color, width, height int, seed uint64) (*Solver, error) {
	if width < 1 || height < 1 {
		return nil, configErrorf("output size", "%dx%d has no area", width, height)
	}
	n := rules.Len()
	if n == 0 {
		return nil, configErrorf("catalog", "no tiles")
	}
	if hints.Len() != n || len(colors) != n {
		return nil, configErrorf("catalog", "rules cover %d tiles, hints %d, colors %d", n, hints.Len(), len(colors))
	}

	s := &Solver{
		width:    width,
		height:   height,
		rules:    rules,
		hints:    hints,
		colors:   colors,
		cells:    make([]Cell, width*height),
		queue:    make(entropyQueue, 0, width*height),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		failedAt: -1,
	}
	template := newTemplateCell(rules, hints)
	entropy := template.Entropy()
	for i := range s.cells {
		s.cells[i] = template.clone()
		s.queue = append(s.queue, entropyEntry{pos: i, entropy: entropy, noise: s.rng.Float64()})
	}
	heap.Init(&s.queue)
	return s, nil
}

func (s *Solver) Width() int  { return s.width }
func (s *Solver) Height() int { return s.height }

// Steps returns how many cells were collapsed by sampling.
func (s *Solver) Steps() int { return s.steps }

// CollapsedCount includes cells narrowed to a single tile by propagation.
func (s *Solver) CollapsedCount() int { return s.collapsed }

func (s *Solver) Status() Status { return s.status }

// CellAt returns the live cell at (x, y).
func (s *Solver) CellAt(x, y int) *Cell { return &s.cells[y*s.width+x] }

// Contradiction returns the cell that ran out of tiles, if any.
func (s *Solver) Contradiction() (x, y int, ok bool) {
	if s.failedAt < 0 {
		return 0, 0, false
	}
	return s.failedAt % s.width, s.failedAt / s.width, true
}

// Step picks the lowest-entropy open cell, collapses it, and propagates the
// consequences until nothing more changes. A non-nil error means internal
// bookkeeping broke and the solver must be discarded. Once the status is
// terminal, Step does nothing.
func (s *Solver) Step() (Status, error) {
	if s.status != StatusRunning {
		return s.status, nil
	}

	pos := -1
	for {
		e, ok := s.queue.pop()
		if !ok {
			break
		}
		if s.cells[e.pos].Collapsed() {
			continue
		}
		pos = e.pos
		break
	}
	if pos < 0 {
		s.finish()
		return s.status, nil
	}

	s.steps++
	s.removals = s.removals[:0]
	_, err := s.cells[pos].chooseTile(s.hints, s.rng, func(t TileIndex) {
		s.removals = append(s.removals, removal{pos: pos, tile: t})
	})
	if err != nil {
		return s.status, fmt.Errorf("step %d at (%d,%d): %w", s.steps, pos%s.width, pos/s.width, err)
	}
	s.collapsed++

	if !s.propagate() {
		s.status = StatusContradiction
		x, y, _ := s.Contradiction()
		Logger().Warn("contradiction", "x", x, "y", y, "step", s.steps)
		return s.status, nil
	}
	if s.collapsed == len(s.cells) {
		s.finish()
	}
	return s.status, nil
}

func (s *Solver) finish() {
	s.status = StatusComplete
	Logger().Info("generation complete", "steps", s.steps, "cells", len(s.cells))
}

// propagate drains the removal queue. It returns false on contradiction.
func (s *Solver) propagate() bool {
	for head := 0; head < len(s.removals); head++ {
		ev := s.removals[head]
		x, y := ev.pos%s.width, ev.pos/s.width
		for _, d := range Directions {
			dx, dy := d.Offset()
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= s.width || ny >= s.height {
				continue
			}
			npos := ny*s.width + nx
			n := &s.cells[npos]
			if n.sampled {
				continue
			}
			opp := int(d.Opposite())
			for _, u := range s.rules.allowedList(ev.tile, d) {
				if !n.possible[u] {
					continue
				}
				k := int(u)*4 + opp
				n.enablers[k]--
				if n.enablers[k] > 0 {
					continue
				}
				if n.removeTile(u, s.hints) {
					s.collapsed++
				}
				if n.NoPossibleTiles() {
					s.failedAt = npos
					return false
				}
				s.removals = append(s.removals, removal{pos: npos, tile: u})
				if !n.Collapsed() {
					s.queue.push(entropyEntry{pos: npos, entropy: n.Entropy(), noise: s.rng.Float64()})
				}
			}
		}
	}
	return true
}

// Run steps until the grid completes, a contradiction occurs, ctx is done,
// or maxSteps steps were taken (maxSteps <= 0 means no budget).
// A contradiction is returned as a *ContradictionError.
func (s *Solver) Run(ctx context.Context, maxSteps int) (Status, error) {
	for taken := 0; ; taken++ {
		if err := ctx.Err(); err != nil {
			return s.status, err
		}
		if maxSteps > 0 && taken >= maxSteps && s.status == StatusRunning {
			return s.status, ErrStepBudget
		}
		st, err := s.Step()
		if err != nil {
			return st, err
		}
		switch st {
		case StatusComplete:
			return st, nil
		case StatusContradiction:
			x, y, _ := s.Contradiction()
			return st, &ContradictionError{X: x, Y: y, Step: s.steps}
		}
	}
}

// Render returns the output grid, row-major. Each cell shows the
// weight-averaged color of its possible tiles, which is the exact tile color
// once collapsed. Output is always opaque.
func (s *Solver) Render() []Color {
	out := make([]Color, len(s.cells))
	for i := range s.cells {
		out[i] = s.cellColor(&s.cells[i])
	}
	return out
}

func (s *Solver) cellColor(c *Cell) Color {
	var acc colorful.Color
	total := 0
	for t := range c.PossibleTiles() {
		w := s.hints.Weight(t)
		col := s.colors[t].Colorful()
		acc.R += col.R * float64(w)
		acc.G += col.G * float64(w)
		acc.B += col.B * float64(w)
		total += w
	}
	if total == 0 {
		return ContradictionColor
	}
	tw := float64(total)
	return colorFromColorful(colorful.Color{R: acc.R / tw, G: acc.G / tw, B: acc.B / tw}, 0xff)
}

// RenderImage is Render as an image.
func (s *Solver) RenderImage() *image.NRGBA {
	bm := &Bitmap{Width: s.width, Height: s.height, Pix: s.Render()}
	return bm.Image()
}
