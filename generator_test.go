package wfc

import (
	"context"
	"errors"
	"testing"
)

func newTestGenerator(t *testing.T, opt Options) *Generator {
	t.Helper()
	src := bitmapFromRows(t, rgbw,
		"WWWWW",
		"WRRWW",
		"WRRWB",
		"WWWWW",
	)
	g, err := NewGenerator(src.Image(), opt)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGeneratorConfigureKeepsCatalog(t *testing.T) {
	opt := DefaultOptions()
	opt.TileSize = 2
	g := newTestGenerator(t, opt)
	catalog := g.Catalog()

	opt.OutputWidth, opt.OutputHeight = 7, 5
	opt.Seed = 9
	if err := g.Configure(opt); err != nil {
		t.Fatal(err)
	}
	if g.Catalog() != catalog {
		t.Error("output size change rebuilt the catalog")
	}
	if g.Solver().Width() != 7 || g.Solver().Height() != 5 {
		t.Errorf("solver is %dx%d, want 7x5", g.Solver().Width(), g.Solver().Height())
	}
	if b := g.Image().Bounds(); b.Dx() != 7 || b.Dy() != 5 {
		t.Errorf("image is %v, want 7x5", b.Size())
	}

	opt.IncludeSymmetries = true
	if err := g.Configure(opt); err != nil {
		t.Fatal(err)
	}
	if g.Catalog() == catalog {
		t.Error("symmetry change kept the old catalog")
	}
	if g.Rules().Len() != g.Catalog().Len() {
		t.Errorf("rules cover %d tiles, catalog has %d", g.Rules().Len(), g.Catalog().Len())
	}
}

func TestGeneratorConfigureTileSize(t *testing.T) {
	opt := DefaultOptions()
	opt.TileSize = 2
	g := newTestGenerator(t, opt)
	before := g.Catalog()

	opt.TileSize = 3
	if err := g.Configure(opt); err != nil {
		t.Fatal(err)
	}
	if g.Catalog() == before || g.Catalog().TileSize != 3 {
		t.Errorf("catalog not rebuilt for tile size 3")
	}
	if g.Options().TileSize != 3 {
		t.Errorf("options not applied: %+v", g.Options())
	}
}

func TestGeneratorConfigureErrorKeepsState(t *testing.T) {
	opt := DefaultOptions()
	opt.TileSize = 2
	g := newTestGenerator(t, opt)
	catalog, solver := g.Catalog(), g.Solver()

	bad := opt
	bad.TileSize = 5 // taller than the 4 pixel source
	err := g.Configure(bad)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
	if g.Catalog() != catalog || g.Solver() != solver || g.Options() != opt {
		t.Error("failed Configure changed the generator")
	}

	bad = opt
	bad.OutputWidth = 0
	if err := g.Configure(bad); !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
	if g.Solver() != solver {
		t.Error("failed Configure replaced the solver")
	}
}

func TestGeneratorResetReplaysSeed(t *testing.T) {
	opt := DefaultOptions()
	opt.TileSize = 2
	opt.OutputWidth, opt.OutputHeight = 10, 8
	opt.Seed = 5
	g := newTestGenerator(t, opt)

	st1, _ := g.Run(context.Background(), 0)
	first := g.Solver().Render()

	if err := g.Reset(5); err != nil {
		t.Fatal(err)
	}
	if g.Solver().Steps() != 0 || g.Solver().Status() != StatusRunning {
		t.Fatal("Reset did not start a fresh run")
	}
	st2, _ := g.Run(context.Background(), 0)
	if st1 != st2 {
		t.Fatalf("status %s after reset, want %s", st2, st1)
	}
	for i, c := range g.Solver().Render() {
		if c != first[i] {
			t.Fatalf("pixel %d differs after reset with the same seed", i)
		}
	}
}

func TestNewGeneratorRejectsInvalidOptions(t *testing.T) {
	src := bitmapFromRows(t, rgbw, "RG", "GR")
	opt := DefaultOptions()
	if _, err := NewGenerator(src.Image(), opt); err == nil {
		t.Error("tile size 3 accepted for a 2x2 source")
	}
	opt.TileSize = 1
	if _, err := NewGenerator(src.Image(), opt); err == nil {
		t.Error("tile size 1 accepted")
	}
}
