package gameboy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aldermoon/dmgboy/internal/interrupts"
	"github.com/aldermoon/dmgboy/internal/types"
)

// scenarioROM builds a minimal ROM-only cartridge with program bytes
// placed starting at the entry point 0x0100.
func scenarioROM(program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x134:], "TEST")
	rom[0x147] = 0x00
	rom[0x148] = 0x00
	rom[0x149] = 0x00
	copy(rom[0x100:], program)
	return rom
}

// NOP followed by an infinite relative jump back to itself (JR -2).
func TestScenarioNOPRoundtrip(t *testing.T) {
	g, err := New(scenarioROM(0x00, 0x18, 0xFE))
	assert.NoError(t, err)

	g.Bus.Write(0xFF40, 0x80) // LCDC: display enable only
	g.RunFrame()

	assert.True(t, g.CPU.PC == 0x0100 || g.CPU.PC == 0x0101 || g.CPU.PC == 0x0102)
	assert.NotZero(t, g.irq.ReadIF()&interrupts.VBlank)
}

// TAC enabled at clock/16 with TMA near wraparound: TIMA must overflow
// twice within the cycle budget, requesting interrupts.Timer and
// reloading to TMA each time.
func TestScenarioTimerOverflow(t *testing.T) {
	g, err := New(scenarioROM(0x00, 0x18, 0xFE))
	assert.NoError(t, err)

	g.Bus.Write(types.TAC, 0x05) // enabled, clock/16
	g.Bus.Write(types.TMA, 0xFE)

	overflows := 0
	for i := 0; i < 5000; i++ {
		before := g.Bus.Read(types.TIMA)
		g.Timer.Step(4)
		after := g.Bus.Read(types.TIMA)
		if before == 0xFF && after == 0xFE {
			overflows++
			assert.NotZero(t, g.irq.ReadIF()&interrupts.Timer)
			g.irq.WriteIF(g.irq.ReadIF() &^ interrupts.Timer)
		}
		if overflows == 2 {
			break
		}
	}
	assert.Equal(t, 2, overflows)
	assert.Equal(t, uint8(0xFE), g.Bus.Read(types.TIMA))
}

// HALT with IME set and the timer interrupt enabled: the CPU must
// vector to 0x0050 once TIMA overflows.
func TestScenarioHaltWakesOnTimerInterrupt(t *testing.T) {
	g, err := New(scenarioROM(
		0xFB,       // EI
		0x00,       // NOP (lets the EI delay resolve)
		0x76,       // HALT
	))
	assert.NoError(t, err)

	g.Bus.Write(0xFFFF, uint8(interrupts.Timer)) // IE
	g.Bus.Write(types.TAC, 0x05)                 // enabled, clock/16
	g.Bus.Write(types.TIMA, 0xFF)                // overflow after one tick
	g.Bus.Write(types.TMA, 0xFF)                 // and after every tick thereafter

	for i := 0; i < 1000 && g.CPU.PC != 0x0050; i++ {
		cycles := g.CPU.Step()
		g.Timer.Step(cycles)
	}

	assert.Equal(t, uint16(0x0050), g.CPU.PC)
}
