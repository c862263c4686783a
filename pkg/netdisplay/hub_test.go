package netdisplay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aldermoon/dmgboy/internal/ppu"
	"github.com/aldermoon/dmgboy/pkg/video"
)

func TestBroadcastFrameWithNoClientsDoesNotBlock(t *testing.T) {
	h := NewHub()
	var frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8
	assert.NoError(t, h.BroadcastFrame(frame, video.Palettes[video.Greyscale]))
}

func TestBroadcastFrameSkipsIdenticalRepeat(t *testing.T) {
	h := NewHub()
	h.Compression = false

	var frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8
	pal := video.Palettes[video.Greyscale]

	assert.NoError(t, h.BroadcastFrame(frame, pal))
	firstHash := h.lastHash

	assert.NoError(t, h.BroadcastFrame(frame, pal))
	assert.Equal(t, firstHash, h.lastHash)

	frame[0][0] = 3
	assert.NoError(t, h.BroadcastFrame(frame, pal))
	assert.NotEqual(t, firstHash, h.lastHash)
}
