package utils

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func twoColorImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := range 4 {
		for x := range 8 {
			c := color.NRGBA{R: 250, G: 10, B: 10, A: 255}
			if x >= 4 {
				c = color.NRGBA{R: 10, G: 10, B: 240, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestParsePaletteMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    PaletteMethod
		wantErr bool
	}{
		{"", PaletteMethodDominantColor, false},
		{"dominantcolor", PaletteMethodDominantColor, false},
		{"dominant", PaletteMethodDominantColor, false},
		{"kmeans", PaletteMethodKMeans, false},
		{"median-cut", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePaletteMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePaletteMethod(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParsePaletteMethod(%q) = %s, want %s", tt.in, got, tt.want)
		}
		if !tt.wantErr {
			if back, _ := ParsePaletteMethod(got.String()); back != got {
				t.Errorf("%s does not round-trip through String", got)
			}
		}
	}
}

func TestSortPaletteByBrightness(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	green := colorful.Color{G: 1}
	blue := colorful.Color{B: 1}
	p := []colorful.Color{white, green, black, blue}
	SortPaletteByBrightness(p)
	want := []colorful.Color{black, blue, green, white}
	for i := range want {
		if p[i] != want[i] {
			t.Fatalf("sorted palette = %v, want %v", p, want)
		}
	}
}

func TestQuantize(t *testing.T) {
	img := twoColorImage()
	img.SetNRGBA(0, 0, color.NRGBA{R: 250, G: 10, B: 10, A: 128})
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	out, err := Quantize(img, []colorful.Color{red, blue})
	if err != nil {
		t.Fatal(err)
	}
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("left half quantized to %v", got)
	}
	if got := out.NRGBAAt(6, 2); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("right half quantized to %v", got)
	}
	if got := out.NRGBAAt(0, 0); got.A != 128 || got.R != 255 {
		t.Errorf("translucent pixel quantized to %v, want red with alpha 128", got)
	}

	if _, err := Quantize(img, nil); err == nil {
		t.Error("empty palette accepted")
	}
}

func TestUpscale(t *testing.T) {
	img := twoColorImage()
	out := Upscale(img, 3)
	if b := out.Bounds(); b.Dx() != 24 || b.Dy() != 12 {
		t.Fatalf("upscaled size = %v, want 24x12", b.Size())
	}
	for _, p := range []image.Point{{0, 0}, {11, 11}, {12, 0}, {23, 11}} {
		if got, want := out.NRGBAAt(p.X, p.Y), img.NRGBAAt(p.X/3, p.Y/3); got != want {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
	if b := Upscale(img, 0).Bounds(); b.Dx() != 8 {
		t.Errorf("scale 0 produced width %d, want 8", b.Dx())
	}
}

func TestSaveAndReadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := twoColorImage()
	if err := SaveImage(img, path); err != nil {
		t.Fatal(err)
	}
	back, err := ReadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Bounds().Size() != img.Bounds().Size() {
		t.Fatalf("read back %v, want %v", back.Bounds().Size(), img.Bounds().Size())
	}
	for y := range 4 {
		for x := range 8 {
			got := color.NRGBAModel.Convert(back.At(x, y)).(color.NRGBA)
			if got != img.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, img.NRGBAAt(x, y))
			}
		}
	}

	if _, err := ReadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file read without error")
	}
}

func TestSavePalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.png")
	p := []colorful.Color{{R: 1}, {G: 1}}
	if err := SavePalette(p, 4, path); err != nil {
		t.Fatal(err)
	}
	img, err := ReadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("palette strip is %v, want 8x4", b.Size())
	}
	if err := SavePalette(nil, 4, path); err == nil {
		t.Error("empty palette saved")
	}
}

func TestExtractPalette(t *testing.T) {
	img := twoColorImage()
	for _, m := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		p := ExtractPalette(img, 2, m)
		if len(p) > 2 || (m == PaletteMethodKMeans && len(p) == 0) {
			t.Fatalf("%s: got %d colors", m, len(p))
		}
		for _, c := range p {
			r, g, b := c.Clamped().RGB255()
			if g > 60 || (r < 100 && b < 100) {
				t.Errorf("%s: unexpected palette color %d,%d,%d", m, r, g, b)
			}
		}
	}
	if p := ExtractPalette(img, 0, PaletteMethodKMeans); len(p) != 0 {
		t.Errorf("k=0 returned %d colors", len(p))
	}
}
