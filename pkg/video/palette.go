// Package video resolves the two-bit shade indices the pixel unit
// produces into display colors. It is a display-sink concern, not a
// core one: GameBoy.RunFrame hands back a raw [144][160]uint8 grid of
// shade indices, and this package is how a display sink turns that
// into pixels a screen (or a terminal) can actually show.
package video

import "github.com/lucasb-eyer/go-colorful"

// Named palette identifiers, matching the four the teacher ships.
const (
	Greyscale = iota
	Green
	Red
	Yellow
)

// Palette maps the four DMG shade indices (0 = lightest, 3 = darkest)
// to display colors.
type Palette struct {
	Colors [4]colorful.Color
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Palettes lists the built-in palettes, grounded on the teacher's
// internal/ppu/palette/palette.go RGB triples, recast as go-colorful
// colors so a display sink can interpolate or gamma-correct them
// rather than only ever using them verbatim.
var Palettes = [...]Palette{
	Greyscale: {Colors: [4]colorful.Color{
		rgb(0xFF, 0xFF, 0xFF), rgb(0xCC, 0xCC, 0xCC), rgb(0x77, 0x77, 0x77), rgb(0x00, 0x00, 0x00),
	}},
	Green: {Colors: [4]colorful.Color{
		rgb(0x9B, 0xBC, 0x0F), rgb(0x8B, 0xAC, 0x0F), rgb(0x30, 0x62, 0x30), rgb(0x0F, 0x38, 0x0F),
	}},
	Red: {Colors: [4]colorful.Color{
		rgb(0xFF, 0x00, 0x00), rgb(0xCC, 0x00, 0x00), rgb(0x77, 0x00, 0x00), rgb(0x00, 0x00, 0x00),
	}},
	Yellow: {Colors: [4]colorful.Color{
		rgb(0xFF, 0xFF, 0x00), rgb(0xCC, 0xCC, 0x00), rgb(0x77, 0x77, 0x00), rgb(0x00, 0x00, 0x00),
	}},
}

// Color returns the display color for shade index, clamped to [0,3].
func (p Palette) Color(index uint8) colorful.Color {
	if index > 3 {
		index = 3
	}
	return p.Colors[index]
}

// RGBA32 returns index's color as packed 0xRRGGBBAA, the form most
// framebuffer-backed display sinks (SDL textures, image.RGBA) want.
func (p Palette) RGBA32(index uint8) uint32 {
	c := p.Color(index)
	r, g, b := c.RGB255()
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | 0xFF
}

// Blend returns the color a fraction t (0 = a, 1 = b) of the way from
// a's to b's color at index, using go-colorful's Lab-space
// interpolation. Intended for a
// display sink that wants to smooth palette swaps instead of cutting
// over on the frame boundary.
func Blend(a, b Palette, index uint8, t float64) colorful.Color {
	return a.Color(index).BlendLab(b.Color(index), t)
}
