package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aldermoon/dmgboy/internal/interrupts"
	"github.com/aldermoon/dmgboy/internal/types"
)

func TestReadReflectsActiveLowPressedState(t *testing.T) {
	j := New(interrupts.NewService())
	j.Write(types.P1, 0x00) // select both lines
	j.Press(ButtonA)
	j.Press(ButtonUp)

	v := j.Read(types.P1)
	assert.Zero(t, v&0x01) // A line pulled low
	assert.Zero(t, v&0x04) // Up line pulled low
	assert.NotZero(t, v&0x02) // B still released (high)
}

func TestPressRaisesInterruptOnlyOnTheSelectedLine(t *testing.T) {
	irq := interrupts.NewService()
	j := New(irq)

	j.Write(types.P1, 0xEF) // select direction line only (bit4=0)
	j.Press(ButtonA)        // action line not selected: no interrupt
	assert.Zero(t, irq.ReadIF()&interrupts.Joypad)

	j.Press(ButtonUp) // direction line selected: interrupt fires
	assert.NotZero(t, irq.ReadIF()&interrupts.Joypad)
}

func TestPressIsIdempotentOnAnAlreadyHeldButton(t *testing.T) {
	irq := interrupts.NewService()
	j := New(irq)
	j.Write(types.P1, 0xDF) // select action line (bit5=0)

	j.Press(ButtonA)
	irq.WriteIF(0) // clear the first edge's flag

	j.Press(ButtonA) // already held: no new edge
	assert.Zero(t, irq.ReadIF()&interrupts.Joypad)
}
