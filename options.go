package wfc

type Options struct {
	// Edge length of the square tiles learned from the source. At least 2 and
	// no larger than either source dimension. Larger tiles copy bigger
	// structures but need bigger sources to avoid contradictions.
	TileSize int
	// Output grid size in cells; one cell becomes one output pixel.
	OutputWidth  int
	OutputHeight int
	// Also learn the 90 degree rotations and vertical flips of every tile.
	IncludeSymmetries bool
	// Seed for tile sampling and entropy tie-breaks.
	Seed uint64
}

func DefaultOptions() Options {
	return Options{
		TileSize:          3,
		OutputWidth:       20,
		OutputHeight:      20,
		IncludeSymmetries: false,
	}
}

// Validate checks the options that do not depend on the source image.
func (o Options) Validate() error {
	if o.TileSize < 2 {
		return configErrorf("tile size", "%d is below the minimum of 2", o.TileSize)
	}
	if o.OutputWidth < 1 || o.OutputHeight < 1 {
		return configErrorf("output size", "%dx%d has no area", o.OutputWidth, o.OutputHeight)
	}
	return nil
}

// needsCatalog reports whether switching from o to next requires extracting
// the tiles and rules again.
func (o Options) needsCatalog(next Options) bool {
	return o.TileSize != next.TileSize || o.IncludeSymmetries != next.IncludeSymmetries
}
