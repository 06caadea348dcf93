// Command wfcgen generates an image from a small example image with the
// overlapping Wave Function Collapse algorithm.
//
//	wfcgen -in flowers.png -n 3 -sym -width 64 -height 64 -scale 4 -out out.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/setanarut/wfc"
	"github.com/setanarut/wfc/utils"
)

// Exit codes.
const (
	exitOK            = 0
	exitError         = 1
	exitContradiction = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := parseConfig(args, os.LookupEnv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	logger := newLogger(cfg.Verbose, cfg.LogFile).With(zap.String("run", uuid.NewString()))
	defer logger.Sync()
	wfc.SetLogger(slog.New(newZapHandler(logger)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	code, err := generate(ctx, cfg, logger, reporter{out: os.Stdout})
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
	}
	return code
}

func generate(ctx context.Context, cfg Config, logger *zap.Logger, rep reporter) (int, error) {
	img, err := utils.ReadImage(cfg.Input)
	if err != nil {
		return exitError, err
	}

	if cfg.PaletteSize > 0 {
		method, _ := utils.ParsePaletteMethod(cfg.PaletteMethod)
		palette := utils.ExtractPalette(img, cfg.PaletteSize, method)
		utils.SortPaletteByBrightness(palette)
		hex := make([]string, len(palette))
		for i, c := range palette {
			hex[i] = c.Hex()
		}
		logger.Info("quantizing source", zap.String("method", method.String()), zap.Strings("palette", hex))
		if img, err = utils.Quantize(img, palette); err != nil {
			return exitError, err
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	opt := cfg.Options()
	opt.Seed = seed

	gen, err := wfc.NewGenerator(img, opt)
	if err != nil {
		return exitError, err
	}
	rep.catalog(gen.Catalog().Stats(), opt.TileSize)

	if cfg.TilesOutput != "" {
		if err := utils.SaveImage(utils.Upscale(gen.CatalogImage(), cfg.Scale), cfg.TilesOutput); err != nil {
			return exitError, fmt.Errorf("save tiles: %w", err)
		}
		rep.saved("tiles", cfg.TilesOutput)
	}

	code := exitContradiction
	var runErr error
	for attempt := range cfg.Attempts {
		s := seed + uint64(attempt)
		if attempt > 0 {
			if err := gen.Reset(s); err != nil {
				return exitError, err
			}
		}
		_, runErr = gen.Run(ctx, cfg.MaxSteps)
		rep.attempt(attempt+1, s, gen.Solver(), runErr)
		if errors.Is(runErr, wfc.ErrContradiction) {
			continue
		}
		if runErr == nil {
			code = exitOK
		} else {
			code = exitError
		}
		break
	}

	// The last attempt is saved even when it failed; the preview shows where.
	if err := utils.SaveImage(utils.Upscale(gen.Image(), cfg.Scale), cfg.Output); err != nil {
		return exitError, fmt.Errorf("save output: %w", err)
	}
	rep.saved("output", cfg.Output)
	return code, runErr
}
