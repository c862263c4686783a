package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aldermoon/dmgboy/internal/interrupts"
	"github.com/aldermoon/dmgboy/internal/types"
)

func TestDIVIncrementsAtClockOver256RegardlessOfTAC(t *testing.T) {
	irq := interrupts.NewService()
	tm := New(irq)

	tm.Step(255)
	assert.Equal(t, uint8(0), tm.Read(types.DIV))
	tm.Step(1)
	assert.Equal(t, uint8(1), tm.Read(types.DIV))
}

func TestWritingDIVResetsItToZero(t *testing.T) {
	irq := interrupts.NewService()
	tm := New(irq)

	for i := 0; i < 256; i++ {
		tm.Step(255)
	}
	assert.NotZero(t, tm.Read(types.DIV))

	tm.Write(types.DIV, 0x42) // any value written resets the divider
	assert.Zero(t, tm.Read(types.DIV))
}

// TIMA reloads from TMA and requests Timer on overflow, at the rate
// TAC's clock-select bits choose.
func TestTIMAOverflowReloadsFromTMAAndRequestsInterrupt(t *testing.T) {
	irq := interrupts.NewService()
	tm := New(irq)

	tm.Write(types.TAC, 0x05) // enabled, clock/16
	tm.Write(types.TMA, 0xFE)
	tm.Write(types.TIMA, 0xFE) // two ticks: 0xFE -> 0xFF -> overflow

	for i := 0; i < 16*2; i++ {
		tm.Step(1)
	}

	assert.Equal(t, uint8(0xFE), tm.Read(types.TIMA))
	assert.NotZero(t, irq.ReadIF()&interrupts.Timer)
}

func TestTIMADoesNotAdvanceWhileDisabled(t *testing.T) {
	irq := interrupts.NewService()
	tm := New(irq)

	tm.Write(types.TAC, 0x01) // clock/16, but enable bit (bit2) clear
	for i := 0; i < 1000; i++ {
		tm.Step(1)
	}

	assert.Zero(t, tm.Read(types.TIMA))
}

func TestTACReadbackPinsUnusedBitsHigh(t *testing.T) {
	irq := interrupts.NewService()
	tm := New(irq)

	tm.Write(types.TAC, 0xFF)
	assert.Equal(t, uint8(0xFF), tm.Read(types.TAC))
}
