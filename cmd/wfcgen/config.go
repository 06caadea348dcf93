package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/setanarut/wfc"
	"github.com/setanarut/wfc/utils"
)

// Config holds every wfcgen setting. Later sources override earlier ones:
// defaults, YAML file (-config), .env file and WFC_* environment variables,
// then command-line flags.
type Config struct {
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	TilesOutput string `yaml:"tiles_output"`

	TileSize   int    `yaml:"tile_size"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Symmetries bool   `yaml:"symmetries"`
	Seed       uint64 `yaml:"seed"` // 0 picks a random seed

	Attempts int           `yaml:"attempts"`
	MaxSteps int           `yaml:"max_steps"` // 0 means unlimited
	Timeout  time.Duration `yaml:"timeout"`   // 0 means none
	Scale    int           `yaml:"scale"`

	// Quantize the source to this many colors first; 0 disables it.
	PaletteSize   int    `yaml:"palette_size"`
	PaletteMethod string `yaml:"palette_method"`

	LogFile string `yaml:"log_file"`
	Verbose bool   `yaml:"verbose"`
}

func DefaultConfig() Config {
	opt := wfc.DefaultOptions()
	return Config{
		Output:        "output.png",
		TileSize:      opt.TileSize,
		Width:         opt.OutputWidth,
		Height:        opt.OutputHeight,
		Symmetries:    opt.IncludeSymmetries,
		Attempts:      10,
		Scale:         1,
		PaletteMethod: utils.PaletteMethodDominantColor.String(),
	}
}

// Options converts the generation settings for the library.
func (c Config) Options() wfc.Options {
	return wfc.Options{
		TileSize:          c.TileSize,
		OutputWidth:       c.Width,
		OutputHeight:      c.Height,
		IncludeSymmetries: c.Symmetries,
		Seed:              c.Seed,
	}
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("no input image; pass -in or set WFC_INPUT")
	}
	if c.Output == "" {
		return errors.New("no output path")
	}
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", c.Attempts)
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", c.Scale)
	}
	if c.PaletteSize < 0 {
		return fmt.Errorf("palette size must not be negative, got %d", c.PaletteSize)
	}
	if _, err := utils.ParsePaletteMethod(c.PaletteMethod); err != nil {
		return err
	}
	return nil
}

// loadYAML overlays the fields present in r onto cfg.
func loadYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func loadYAMLFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return loadYAML(f, cfg)
}

// applyEnv overlays WFC_* variables. Unparseable values are errors rather
// than silently ignored.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "1", "yes", "on":
				*dst = true
			case "false", "0", "no", "off":
				*dst = false
			default:
				errs = append(errs, fmt.Errorf("%s: invalid boolean %q", key, v))
			}
		}
	}

	str("WFC_INPUT", &cfg.Input)
	str("WFC_OUTPUT", &cfg.Output)
	str("WFC_TILES_OUTPUT", &cfg.TilesOutput)
	integer("WFC_TILE_SIZE", &cfg.TileSize)
	integer("WFC_WIDTH", &cfg.Width)
	integer("WFC_HEIGHT", &cfg.Height)
	boolean("WFC_SYMMETRIES", &cfg.Symmetries)
	if v, ok := lookup("WFC_SEED"); ok && v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("WFC_SEED: %w", err))
		} else {
			cfg.Seed = n
		}
	}
	integer("WFC_ATTEMPTS", &cfg.Attempts)
	integer("WFC_MAX_STEPS", &cfg.MaxSteps)
	if v, ok := lookup("WFC_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("WFC_TIMEOUT: %w", err))
		} else {
			cfg.Timeout = d
		}
	}
	integer("WFC_SCALE", &cfg.Scale)
	integer("WFC_PALETTE_SIZE", &cfg.PaletteSize)
	str("WFC_PALETTE_METHOD", &cfg.PaletteMethod)
	str("WFC_LOG_FILE", &cfg.LogFile)
	boolean("WFC_VERBOSE", &cfg.Verbose)
	return errors.Join(errs...)
}

// parseConfig resolves the final configuration from args and the
// environment.
func parseConfig(args []string, lookup func(string) (string, bool), stderr io.Writer) (Config, error) {
	def := DefaultConfig()
	var f Config

	fset := flag.NewFlagSet("wfcgen", flag.ContinueOnError)
	fset.SetOutput(stderr)
	configPath := fset.String("config", "", "YAML config file")
	envFile := fset.String("env", ".env", "dotenv file with WFC_* variables (ignored if missing)")
	fset.StringVar(&f.Input, "in", def.Input, "source image (png, jpeg, gif, bmp, webp)")
	fset.StringVar(&f.Output, "out", def.Output, "generated PNG")
	fset.StringVar(&f.TilesOutput, "tiles", def.TilesOutput, "optional PNG of the learned tiles")
	fset.IntVar(&f.TileSize, "n", def.TileSize, "tile size")
	fset.IntVar(&f.Width, "width", def.Width, "output width in pixels")
	fset.IntVar(&f.Height, "height", def.Height, "output height in pixels")
	fset.BoolVar(&f.Symmetries, "sym", def.Symmetries, "include rotated and flipped tiles")
	fset.Uint64Var(&f.Seed, "seed", def.Seed, "random seed (0 = random)")
	fset.IntVar(&f.Attempts, "attempts", def.Attempts, "restarts with a new seed after a contradiction")
	fset.IntVar(&f.MaxSteps, "max-steps", def.MaxSteps, "step budget per attempt (0 = unlimited)")
	fset.DurationVar(&f.Timeout, "timeout", def.Timeout, "overall time limit (0 = none)")
	fset.IntVar(&f.Scale, "scale", def.Scale, "integer upscale factor for saved images")
	fset.IntVar(&f.PaletteSize, "palette", def.PaletteSize, "quantize source to this many colors (0 = off)")
	fset.StringVar(&f.PaletteMethod, "palette-method", def.PaletteMethod, "dominantcolor or kmeans")
	fset.StringVar(&f.LogFile, "log-file", def.LogFile, "also write JSON logs here, rotated")
	fset.BoolVar(&f.Verbose, "v", def.Verbose, "debug logging")
	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := def
	if *configPath != "" {
		if err := loadYAMLFile(*configPath, &cfg); err != nil {
			return Config{}, err
		}
	}
	if *envFile != "" {
		env, err := godotenv.Read(*envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", *envFile, err)
		}
		// Real environment variables win over the dotenv file.
		base := lookup
		lookup = func(key string) (string, bool) {
			if v, ok := base(key); ok {
				return v, true
			}
			v, ok := env[key]
			return v, ok
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	fset.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "in":
			cfg.Input = f.Input
		case "out":
			cfg.Output = f.Output
		case "tiles":
			cfg.TilesOutput = f.TilesOutput
		case "n":
			cfg.TileSize = f.TileSize
		case "width":
			cfg.Width = f.Width
		case "height":
			cfg.Height = f.Height
		case "sym":
			cfg.Symmetries = f.Symmetries
		case "seed":
			cfg.Seed = f.Seed
		case "attempts":
			cfg.Attempts = f.Attempts
		case "max-steps":
			cfg.MaxSteps = f.MaxSteps
		case "timeout":
			cfg.Timeout = f.Timeout
		case "scale":
			cfg.Scale = f.Scale
		case "palette":
			cfg.PaletteSize = f.PaletteSize
		case "palette-method":
			cfg.PaletteMethod = f.PaletteMethod
		case "log-file":
			cfg.LogFile = f.LogFile
		case "v":
			cfg.Verbose = f.Verbose
		}
	})
	return cfg, cfg.Validate()
}
