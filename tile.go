package wfc

import (
	"encoding/binary"
	"slices"
)

// TileIndex identifies a catalog entry. Indices are dense and start at zero.
type TileIndex int

// NoTile marks an unset TileIndex.
const NoTile TileIndex = -1

// Tile is an immutable size*size block of colors, row-major.
type Tile struct {
	size int
	pix  []Color
}

// NewTile wraps pix, which must hold size*size colors. The slice is copied.
func NewTile(size int, pix []Color) Tile {
	if len(pix) != size*size {
		panic("wfc: tile pixel count does not match size")
	}
	return Tile{size: size, pix: slices.Clone(pix)}
}

// ExtractTile reads the size*size block anchored at (ox, oy), wrapping around
// the source edges.
func ExtractTile(src *Bitmap, ox, oy, size int) Tile {
	t := Tile{size: size, pix: make([]Color, size*size)}
	forEachPoint(size, size, func(x, y int) {
		t.pix[y*size+x] = src.Wrapped(ox+x, oy+y)
	})
	return t
}

func (t Tile) Size() int { return t.size }

// Pixels returns a copy of the tile's colors.
func (t Tile) Pixels() []Color { return slices.Clone(t.pix) }

// TopLeft is the tile's representative output color.
func (t Tile) TopLeft() Color { return t.pix[0] }

// PixelAt returns the color at local (x, y). ok is false outside the tile.
func (t Tile) PixelAt(x, y int) (c Color, ok bool) {
	if x < 0 || y < 0 || x >= t.size || y >= t.size {
		return Transparent, false
	}
	return t.pix[y*t.size+x], true
}

func (t Tile) at(x, y int) Color { return t.pix[y*t.size+x] }

// RotatedClockwise returns a tile where pixel (x, y) equals t's (y, size-1-x).
func (t Tile) RotatedClockwise() Tile {
	n := t.size
	r := Tile{size: n, pix: make([]Color, n*n)}
	forEachPoint(n, n, func(x, y int) {
		r.pix[y*n+x] = t.at(y, n-1-x)
	})
	return r
}

// FlippedVertically returns a tile where pixel (x, y) equals t's (x, size-1-y).
func (t Tile) FlippedVertically() Tile {
	n := t.size
	f := Tile{size: n, pix: make([]Color, n*n)}
	for y := range n {
		copy(f.pix[y*n:(y+1)*n], t.pix[(n-1-y)*n:(n-y)*n])
	}
	return f
}

// Variants returns the eight symmetry variants: t and its three further
// rotations, then the vertical flip of t and its three further rotations.
func (t Tile) Variants() [8]Tile {
	var v [8]Tile
	v[0] = t
	for i := 1; i < 4; i++ {
		v[i] = v[i-1].RotatedClockwise()
	}
	v[4] = t.FlippedVertically()
	for i := 5; i < 8; i++ {
		v[i] = v[i-1].RotatedClockwise()
	}
	return v
}

func (t Tile) Equal(o Tile) bool {
	return t.size == o.size && slices.Equal(t.pix, o.pix)
}

// key is the full pixel sequence, used for catalog deduplication.
func (t Tile) key() string {
	b := make([]byte, 0, 4*len(t.pix))
	for _, c := range t.pix {
		b = binary.BigEndian.AppendUint32(b, uint32(c))
	}
	return string(b)
}
