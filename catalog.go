package wfc

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Catalog is the deduplicated, insertion-ordered set of tiles found in a
// source image together with their occurrence counts.
type Catalog struct {
	TileSize int
	Tiles    []Tile
	Counts   []int
}

// CatalogStats summarizes a catalog.
type CatalogStats struct {
	Tiles       int
	Occurrences int
	// Entropy of the occurrence distribution, in bits.
	Entropy float64
}

// BuildCatalog extracts every wrapped tileSize*tileSize block of src. With
// includeSymmetries each block also contributes its seven other rotation and
// flip variants. Tiles keep first-seen order, so identical input always
// produces an identical catalog.
func BuildCatalog(src *Bitmap, tileSize int, includeSymmetries bool) (*Catalog, error) {
	if src == nil || src.Width <= 0 || src.Height <= 0 {
		return nil, configErrorf("source", "image is empty")
	}
	if tileSize < 2 {
		return nil, configErrorf("tile size", "%d is below the minimum of 2", tileSize)
	}
	if tileSize > src.Width || tileSize > src.Height {
		return nil, configErrorf("tile size", "%d exceeds source image %dx%d", tileSize, src.Width, src.Height)
	}

	c := &Catalog{TileSize: tileSize}
	index := make(map[string]TileIndex)
	record := func(t Tile) {
		k := t.key()
		if i, ok := index[k]; ok {
			c.Counts[i]++
			return
		}
		index[k] = TileIndex(len(c.Tiles))
		c.Tiles = append(c.Tiles, t)
		c.Counts = append(c.Counts, 1)
	}

	forEachPoint(src.Width, src.Height, func(x, y int) {
		t := ExtractTile(src, x, y, tileSize)
		if !includeSymmetries {
			record(t)
			return
		}
		for _, v := range t.Variants() {
			record(v)
		}
	})

	Logger().Debug("catalog built",
		"tiles", len(c.Tiles),
		"tileSize", tileSize,
		"symmetries", includeSymmetries,
		"source", image.Pt(src.Width, src.Height))
	return c, nil
}

func (c *Catalog) Len() int { return len(c.Tiles) }

// Colors returns the top-left pixel of every tile, indexed by TileIndex.
func (c *Catalog) Colors() []Color {
	out := make([]Color, len(c.Tiles))
	for i, t := range c.Tiles {
		out[i] = t.TopLeft()
	}
	return out
}

// Hints returns the occurrence counts as sampling weights.
func (c *Catalog) Hints() *FrequencyHints {
	return newFrequencyHints(c.Counts)
}

// Rules computes the adjacency rules for the catalog.
func (c *Catalog) Rules() *AdjacencyRules {
	return NewAdjacencyRules(c.Tiles)
}

func (c *Catalog) Stats() CatalogStats {
	s := CatalogStats{Tiles: len(c.Tiles)}
	for _, n := range c.Counts {
		s.Occurrences += n
	}
	if s.Occurrences == 0 {
		return s
	}
	p := make([]float64, len(c.Counts))
	for i, n := range c.Counts {
		p[i] = float64(n) / float64(s.Occurrences)
	}
	s.Entropy = stat.Entropy(p) / math.Ln2
	return s
}

// Image lays the tiles out on a near-square grid, separated by one
// transparent pixel, in catalog order.
func (c *Catalog) Image() *image.NRGBA {
	n := len(c.Tiles)
	if n == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	size := c.TileSize
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	img := image.NewNRGBA(image.Rect(0, 0, cols*(size+1)-1, rows*(size+1)-1))
	for i, t := range c.Tiles {
		ox := (i % cols) * (size + 1)
		oy := (i / cols) * (size + 1)
		forEachPoint(size, size, func(x, y int) {
			img.SetNRGBA(ox+x, oy+y, t.at(x, y).NRGBA())
		})
	}
	return img
}
