package wfc

import (
	"image"
)

// Bitmap is a rectangular grid of packed colors, row-major.
type Bitmap struct {
	Width, Height int
	Pix           []Color
}

func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}
}

// BitmapFromImage copies img into a Bitmap anchored at (0,0).
func BitmapFromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	bm := NewBitmap(bounds.Dx(), bounds.Dy())
	forEachPoint(bm.Width, bm.Height, func(x, y int) {
		bm.Pix[y*bm.Width+x] = ColorFrom(img.At(bounds.Min.X+x, bounds.Min.Y+y))
	})
	return bm
}

func (b *Bitmap) At(x, y int) Color {
	return b.Pix[y*b.Width+x]
}

func (b *Bitmap) Set(x, y int, c Color) {
	b.Pix[y*b.Width+x] = c
}

// Wrapped reads (x, y) treating the bitmap as a torus.
func (b *Bitmap) Wrapped(x, y int) Color {
	x %= b.Width
	if x < 0 {
		x += b.Width
	}
	y %= b.Height
	if y < 0 {
		y += b.Height
	}
	return b.Pix[y*b.Width+x]
}

func (b *Bitmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	forEachPoint(b.Width, b.Height, func(x, y int) {
		img.SetNRGBA(x, y, b.At(x, y).NRGBA())
	})
	return img
}
