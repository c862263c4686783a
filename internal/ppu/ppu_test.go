package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aldermoon/dmgboy/internal/interrupts"
)

func newTestPPU() *PPU {
	return New(interrupts.NewService())
}

// Two sprites occupy the same screen pixel; the lower OAM index wins
// the tiebreak at equal X.
func TestSpritePriorityLowerOAMIndexWins(t *testing.T) {
	p := newTestPPU()

	// Tile 1: solid color index 1 everywhere.
	for row := uint16(0); row < 8; row++ {
		p.Write(0x8010+row*2, 0xFF)
		p.Write(0x8010+row*2+1, 0x00)
	}
	// Tile 2: solid color index 3 everywhere, so the two tiles are
	// visibly distinguishable if priority picks the wrong one.
	for row := uint16(0); row < 8; row++ {
		p.Write(0x8020+row*2, 0xFF)
		p.Write(0x8020+row*2+1, 0xFF)
	}

	p.Write(0xFF48, 0xE4) // OBP0: identity palette

	// OAM[0] and OAM[1] both at (y=16, x=8) i.e. screen (0,0).
	p.Write(0xFE00, 16)
	p.Write(0xFE01, 8)
	p.Write(0xFE02, 1)
	p.Write(0xFE03, 0)

	p.Write(0xFE04, 16)
	p.Write(0xFE05, 8)
	p.Write(0xFE06, 2)
	p.Write(0xFE07, 0)

	// Enabled last: OAM writes are discarded once the LCD is on and in
	// mode 2.
	p.Write(0xFF40, 0x83) // LCDC: display + OBJ enable + BG enable

	p.Step(oamCycles + vramCycles)

	assert.Equal(t, uint8(1), p.Frame[0][0])
}

func TestFrameReadyFiresOncePerFrame(t *testing.T) {
	p := newTestPPU()
	p.Write(0xFF40, 0x80)

	assert.False(t, p.FrameReady())

	ready := false
	for i := 0; i < 400 && !ready; i++ {
		p.Step(255)
		if p.FrameReady() {
			ready = true
		}
	}

	assert.True(t, ready)
	assert.False(t, p.FrameReady())
}

func TestLYCInterruptFiresOnceOnEqualEdge(t *testing.T) {
	irq := interrupts.NewService()
	p := New(irq)
	p.Write(0xFF40, 0x80)
	p.Write(0xFF41, 0x40) // STAT: LYC=LY interrupt enable
	p.Write(0xFF45, 0)    // LYC = 0, already equal to LY = 0

	assert.NotZero(t, irq.ReadIF()&interrupts.LCDSTAT)
}
