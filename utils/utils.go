package utils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"math"
	"os"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the names printed by String.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "", "dominantcolor", "dominant":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

// SortPaletteByBrightness orders colors from darkest to brightest by
// relative luminance, so palettes print and compare deterministically.
func SortPaletteByBrightness(palette []colorful.Color) {
	luma := func(c colorful.Color) float64 {
		r, g, b := c.LinearRgb()
		return 0.2126*r + 0.7152*g + 0.0722*b
	}
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		la, lb := luma(a), luma(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})
}

// ExtractDominantPalette returns up to k dominant colors of img, most
// prominent first.
func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, k)
	out := make([]colorful.Color, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		out = append(out, col.Clamped())
	}
	return out
}

// ExtractKMeansPalette clusters the opaque pixels of img into at most k
// colors, largest cluster first. Cluster seeding is random, so repeated
// calls may differ slightly.
func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if b.Dx()*b.Dy() > maxSamples {
		step = int(math.Sqrt(float64(b.Dx()*b.Dy())/float64(maxSamples))) + 1
	}

	var dataset clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			col, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{col.R, col.G, col.B})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, min(k, len(dataset)))
	if err != nil {
		return nil
	}
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped())
	}
	return out
}

func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	if method == PaletteMethodKMeans {
		if p := ExtractKMeansPalette(img, k); len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned empty palette, falling back to dominantcolor")
	}
	return ExtractDominantPalette(img, k)
}

// Quantize maps every pixel of img to the perceptually nearest palette color
// (CIE Lab distance). Alpha is kept. Fewer distinct colors means fewer
// distinct tiles and far cheaper adjacency rules for photographic sources.
func Quantize(img image.Image, palette []colorful.Color) (*image.NRGBA, error) {
	if len(palette) == 0 {
		return nil, errors.New("quantize: empty palette")
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	nearest := make(map[color.NRGBA]color.NRGBA)
	for y := range b.Dy() {
		for x := range b.Dx() {
			src := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			key := color.NRGBA{R: src.R, G: src.G, B: src.B, A: 0xff}
			q, ok := nearest[key]
			if !ok {
				q = nearestColor(key, palette)
				nearest[key] = q
			}
			q.A = src.A
			out.SetNRGBA(x, y, q)
		}
	}
	return out, nil
}

func nearestColor(c color.NRGBA, palette []colorful.Color) color.NRGBA {
	col, _ := colorful.MakeColor(c)
	best, bestD := 0, math.Inf(1)
	for i, p := range palette {
		if d := col.DistanceLab(p); d < bestD {
			best, bestD = i, d
		}
	}
	r, g, b := palette[best].RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling,
// keeping hard pixel edges.
func Upscale(img image.Image, scale int) *image.NRGBA {
	b := img.Bounds()
	if scale < 1 {
		scale = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ReadImage decodes a PNG, JPEG, GIF, BMP or WebP file.
func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SavePalette writes the palette as a strip of tileSize squares.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewNRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		draw.Draw(img, image.Rect(i*tileSize, 0, (i+1)*tileSize, tileSize),
			image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: 255}), image.Point{}, draw.Src)
	}
	return SaveImage(img, filename)
}
