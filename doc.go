// Package wfc generates images by example with the overlapping Wave Function
// Collapse algorithm.
//
// Every wrapped N×N block of a small source image becomes a tile. Tiles that
// agree on their overlapping pixels may be placed next to each other. A
// Solver starts with every output cell allowing every tile, then repeatedly
// collapses the lowest-entropy cell to one tile, sampled by how often the
// tile occurs in the source, and propagates the consequences to neighbours.
// A run ends complete, or with a contradiction when some cell is left with no
// tile; there is no backtracking.
//
//	src, _ := utils.ReadImage("flowers.png")
//	gen, err := wfc.NewGenerator(src, wfc.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	if _, err := gen.Run(ctx, 0); errors.Is(err, wfc.ErrContradiction) {
//		// try gen.Reset(newSeed)
//	}
//	utils.SaveImage(gen.Image(), "out.png")
package wfc
