package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/setanarut/wfc"
)

// reporter prints human-facing progress. Completion and contradiction use
// different colors and symbols so a failed run is never mistaken for a
// finished one.
type reporter struct {
	out io.Writer
}

func (r reporter) catalog(s wfc.CatalogStats, tileSize int) {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(r.out, "━━━ %d tiles (%dx%d) from %d placements, %.2f bits ━━━\n",
		s.Tiles, tileSize, tileSize, s.Occurrences, s.Entropy)
}

func (r reporter) attempt(n int, seed uint64, s *wfc.Solver, err error) {
	var ce *wfc.ContradictionError
	switch {
	case err == nil && s.Status() == wfc.StatusComplete:
		color.New(color.FgGreen).Fprintf(r.out, "  ✓ attempt %d (seed %d): complete", n, seed)
	case errors.As(err, &ce):
		color.New(color.FgRed).Fprintf(r.out, "  ✗ attempt %d (seed %d): contradiction at (%d,%d)", n, seed, ce.X, ce.Y)
	case errors.Is(err, wfc.ErrStepBudget):
		color.New(color.FgYellow).Fprintf(r.out, "  ! attempt %d (seed %d): step budget exhausted", n, seed)
	default:
		color.New(color.FgRed).Fprintf(r.out, "  ✗ attempt %d (seed %d): %v", n, seed, err)
	}
	color.New(color.FgHiBlack).Fprintf(r.out, " - %d steps, %d/%d cells\n",
		s.Steps(), s.CollapsedCount(), s.Width()*s.Height())
}

func (r reporter) saved(what, path string) {
	fmt.Fprintf(r.out, "  → %s: %s\n", what, path)
}
