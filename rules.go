package wfc

import (
	"iter"
	"slices"
)

// AdjacencyRules records which tiles may sit next to each other. A tile `to`
// is allowed in direction d of `from` when the pixels of the two tiles agree
// wherever they overlap after shifting `to` by one step in d.
type AdjacencyRules struct {
	n       int
	allowed []bool        // (from*4+dir)*n + to
	lists   [][]TileIndex // from*4+dir, ascending
}

// NewAdjacencyRules tests every ordered pair of tiles in every direction.
// Tiles must all share one size.
func NewAdjacencyRules(tiles []Tile) *AdjacencyRules {
	n := len(tiles)
	r := &AdjacencyRules{
		n:       n,
		allowed: make([]bool, n*n*4),
		lists:   make([][]TileIndex, n*4),
	}
	for i := range n {
		for _, d := range Directions {
			row := (i*4 + int(d)) * n
			for j := range n {
				if overlapMatches(tiles[i], tiles[j], d) {
					r.allowed[row+j] = true
					r.lists[i*4+int(d)] = append(r.lists[i*4+int(d)], TileIndex(j))
				}
			}
		}
	}
	Logger().Debug("adjacency rules built", "tiles", n)
	return r
}

// overlapMatches reports whether b may be placed one step in d from a.
func overlapMatches(a, b Tile, d Direction) bool {
	ox, oy := d.Offset()
	size := a.size
	for ay := range size {
		by := ay - oy
		if by < 0 || by >= size {
			continue
		}
		for ax := range size {
			bx := ax - ox
			if bx < 0 || bx >= size {
				continue
			}
			if a.at(ax, ay) != b.at(bx, by) {
				return false
			}
		}
	}
	return true
}

// Len returns the number of tiles the rules cover.
func (r *AdjacencyRules) Len() int { return r.n }

// IsAllowed reports whether `to` may be placed in direction dir from `from`.
func (r *AdjacencyRules) IsAllowed(from, to TileIndex, dir Direction) bool {
	return r.allowed[(int(from)*4+int(dir))*r.n+int(to)]
}

// AllowedTiles yields every tile allowed in direction dir from `from`, in
// ascending index order.
func (r *AdjacencyRules) AllowedTiles(from TileIndex, dir Direction) iter.Seq[TileIndex] {
	return slices.Values(r.allowedList(from, dir))
}

func (r *AdjacencyRules) allowedList(from TileIndex, dir Direction) []TileIndex {
	return r.lists[int(from)*4+int(dir)]
}
