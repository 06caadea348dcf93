package wfc

import (
	"testing"
)

var (
	red   = RGBA8(255, 0, 0, 255)
	green = RGBA8(0, 200, 0, 255)
	blue  = RGBA8(0, 0, 255, 255)
	white = RGBA8(255, 255, 255, 255)
	black = RGBA8(0, 0, 0, 255)
)

// bitmapFromRows builds a bitmap from equal-length strings, one rune per
// pixel.
func bitmapFromRows(t *testing.T, palette map[rune]Color, rows ...string) *Bitmap {
	t.Helper()
	bm := NewBitmap(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != bm.Width {
			t.Fatalf("row %d has length %d, want %d", y, len(row), bm.Width)
		}
		for x, r := range row {
			c, ok := palette[r]
			if !ok {
				t.Fatalf("rune %q missing from palette", r)
			}
			bm.Set(x, y, c)
		}
	}
	return bm
}

var rgbw = map[rune]Color{'R': red, 'G': green, 'B': blue, 'W': white, 'K': black}

// rulesFromRelation builds rules from an explicit relation instead of pixel
// overlap. allowed must be symmetric under direction reversal.
func rulesFromRelation(n int, allowed func(from, to TileIndex, d Direction) bool) *AdjacencyRules {
	r := &AdjacencyRules{
		n:       n,
		allowed: make([]bool, n*n*4),
		lists:   make([][]TileIndex, n*4),
	}
	for i := range n {
		for _, d := range Directions {
			for j := range n {
				if allowed(TileIndex(i), TileIndex(j), d) {
					r.allowed[(i*4+int(d))*n+j] = true
					r.lists[i*4+int(d)] = append(r.lists[i*4+int(d)], TileIndex(j))
				}
			}
		}
	}
	return r
}

// assertValidTiling checks every pair of collapsed neighbours against rules.
func assertValidTiling(t *testing.T, s *Solver, rules *AdjacencyRules) {
	t.Helper()
	for y := range s.Height() {
		for x := range s.Width() {
			a := s.CellAt(x, y)
			if !a.Collapsed() {
				t.Fatalf("cell (%d,%d) not collapsed", x, y)
			}
			for _, d := range []Direction{Right, Down} {
				dx, dy := d.Offset()
				nx, ny := x+dx, y+dy
				if nx >= s.Width() || ny >= s.Height() {
					continue
				}
				b := s.CellAt(nx, ny)
				if !rules.IsAllowed(a.Chosen(), b.Chosen(), d) {
					t.Fatalf("tiles %d at (%d,%d) and %d at (%d,%d) may not be adjacent %s",
						a.Chosen(), x, y, b.Chosen(), nx, ny, d)
				}
			}
		}
	}
}
