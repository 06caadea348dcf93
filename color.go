package wfc

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a packed non-premultiplied 0xRRGGBBAA value.
type Color uint32

// Transparent is the zero Color.
const Transparent Color = 0

// ContradictionColor marks cells that ran out of candidate tiles in rendered output.
var ContradictionColor = RGBA8(255, 0, 0, 255)

func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

func (c Color) R() uint8 { return uint8(c >> 24) }
func (c Color) G() uint8 { return uint8(c >> 16) }
func (c Color) B() uint8 { return uint8(c >> 8) }
func (c Color) A() uint8 { return uint8(c) }

// Opaque returns c with full alpha. Alpha always lives in the low byte.
func (c Color) Opaque() Color { return c | 0xff }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}.RGBA()
}

// NRGBA converts c to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// Colorful returns the RGB channels as a colorful.Color. Alpha is dropped.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R()) / 255.0,
		G: float64(c.G()) / 255.0,
		B: float64(c.B()) / 255.0,
	}
}

// Hex formats the RGB channels as #rrggbb.
func (c Color) Hex() string {
	return c.Colorful().Hex()
}

// ColorFrom converts any color.Color to a packed Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA8(n.R, n.G, n.B, n.A)
}

// colorFromColorful packs a colorful.Color with the given alpha.
func colorFromColorful(c colorful.Color, a uint8) Color {
	r, g, b := c.Clamped().RGB255()
	return RGBA8(r, g, b, a)
}
