package gameboy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aldermoon/dmgboy/internal/joypad"
)

// testROM returns a minimal 32KB ROM-only cartridge image: a valid
// header with no bank controller, and an infinite JP-to-self loop at
// the entry point so RunFrame always has somewhere to run.
func testROM() []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x134:], "TESTROM")
	rom[0x147] = 0x00 // ROM only
	rom[0x148] = 0x00 // 32KB, 2 banks
	rom[0x149] = 0x00 // no RAM

	rom[0x100] = 0xC3 // JP 0x100
	rom[0x101] = 0x00
	rom[0x102] = 0x01

	return rom
}

func TestNewRejectsUndersizedROM(t *testing.T) {
	_, err := New(make([]byte, 10))
	assert.Error(t, err)
}

func TestRunFrameProducesAFullFrame(t *testing.T) {
	g, err := New(testROM())
	assert.NoError(t, err)

	g.PPU.Write(0xFF40, 0x80) // LCDC: display enable only

	frame := g.RunFrame()
	assert.Len(t, frame, 144)
	assert.Len(t, frame[0], 160)
}

func TestSaveStateRoundTrip(t *testing.T) {
	rom := testROM()
	g, err := New(rom)
	assert.NoError(t, err)

	g.CPU.A = 0x42
	g.CPU.PC = 0x150
	g.PressButton(joypad.ButtonA)

	data := g.SaveState(len(rom))

	g2, err := New(rom)
	assert.NoError(t, err)
	assert.NoError(t, g2.LoadState(data, len(rom)))

	assert.Equal(t, uint8(0x42), g2.CPU.A)
	assert.Equal(t, uint16(0x150), g2.CPU.PC)
}

func TestLoadStateRejectsMismatchedCartridge(t *testing.T) {
	rom := testROM()
	g, err := New(rom)
	assert.NoError(t, err)
	data := g.SaveState(len(rom))

	otherROM := testROM()
	copy(otherROM[0x134:], "DIFFERENT")
	g2, err := New(otherROM)
	assert.NoError(t, err)

	assert.Error(t, g2.LoadState(data, len(otherROM)))
}
