package wfc

import (
	"context"
	"fmt"
	"image"
)

// Generator ties a source image to a Solver. It owns the learned catalog and
// rules and rebuilds only what a configuration change invalidates.
type Generator struct {
	src *Bitmap
	opt Options

	catalog *Catalog
	rules   *AdjacencyRules
	hints   *FrequencyHints
	colors  []Color

	solver *Solver
}

// NewGenerator learns tiles from src and prepares an empty output grid.
func NewGenerator(src image.Image, opt Options) (*Generator, error) {
	g := &Generator{src: BitmapFromImage(src)}
	if err := g.learn(opt); err != nil {
		return nil, err
	}
	if err := g.reset(opt); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) learn(opt Options) error {
	if err := opt.Validate(); err != nil {
		return err
	}
	catalog, err := BuildCatalog(g.src, opt.TileSize, opt.IncludeSymmetries)
	if err != nil {
		return err
	}
	g.catalog = catalog
	g.rules = catalog.Rules()
	g.hints = catalog.Hints()
	g.colors = catalog.Colors()
	return nil
}

func (g *Generator) reset(opt Options) error {
	s, err := NewSolver(g.rules, g.hints, g.colors, opt.OutputWidth, opt.OutputHeight, opt.Seed)
	if err != nil {
		return err
	}
	g.opt = opt
	g.solver = s
	return nil
}

// Configure applies new options. Changing the tile size or symmetry flag
// re-extracts the catalog; any other change only rebuilds the output grid.
// On error the generator keeps its previous state.
func (g *Generator) Configure(opt Options) error {
	if err := opt.Validate(); err != nil {
		return err
	}
	if g.opt.needsCatalog(opt) {
		prev := *g
		if err := g.learn(opt); err != nil {
			*g = prev
			return fmt.Errorf("configure: %w", err)
		}
		if err := g.reset(opt); err != nil {
			*g = prev
			return fmt.Errorf("configure: %w", err)
		}
		return nil
	}
	return g.reset(opt)
}

// Reset starts a new run over the same catalog with another seed.
func (g *Generator) Reset(seed uint64) error {
	opt := g.opt
	opt.Seed = seed
	return g.reset(opt)
}

func (g *Generator) Options() Options       { return g.opt }
func (g *Generator) Catalog() *Catalog      { return g.catalog }
func (g *Generator) Rules() *AdjacencyRules { return g.rules }
func (g *Generator) Solver() *Solver        { return g.solver }

func (g *Generator) Step() (Status, error) { return g.solver.Step() }

func (g *Generator) Run(ctx context.Context, maxSteps int) (Status, error) {
	return g.solver.Run(ctx, maxSteps)
}

// Image renders the current output grid.
func (g *Generator) Image() *image.NRGBA { return g.solver.RenderImage() }

// CatalogImage renders the learned tiles for display.
func (g *Generator) CatalogImage() *image.NRGBA { return g.catalog.Image() }
