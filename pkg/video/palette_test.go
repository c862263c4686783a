package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBA32LightestAndDarkest(t *testing.T) {
	p := Palettes[Greyscale]

	r, g, b, a := byte(p.RGBA32(0)>>24), byte(p.RGBA32(0)>>16), byte(p.RGBA32(0)>>8), byte(p.RGBA32(0))
	assert.Equal(t, [4]byte{0xFF, 0xFF, 0xFF, 0xFF}, [4]byte{r, g, b, a})

	assert.Equal(t, uint32(0x000000FF), p.RGBA32(3))
}

func TestColorClampsOutOfRangeIndex(t *testing.T) {
	p := Palettes[Green]
	assert.Equal(t, p.Color(3), p.Color(250))
}

func TestBlendAtZeroAndOneMatchesEndpoints(t *testing.T) {
	a, b := Palettes[Greyscale], Palettes[Green]
	assert.InDelta(t, a.Color(1).R, Blend(a, b, 1, 0).R, 1e-9)
	assert.InDelta(t, b.Color(1).R, Blend(a, b, 1, 1).R, 1e-9)
}
