// Package timer implements the Game Boy's DIV/TIMA/TMA/TAC timer
// registers.
package timer

import (
	"github.com/aldermoon/dmgboy/internal/interrupts"
	"github.com/aldermoon/dmgboy/internal/types"
)

// rates gives the number of CPU cycles between TIMA increments for each
// of TAC's four clock-select values.
var rates = [4]uint16{1024, 16, 64, 256}

// Timer models DIV and TIMA as plain cycle accumulators rather than the
// real hardware's falling-edge detector over a shared 16-bit system
// counter. It reproduces the observable behavior the spec requires
// (DIV increments at 16384Hz, TIMA increments at the TAC-selected rate
// and reloads from TMA with a Timer interrupt on overflow) without the
// write-during-reload and enable/disable edge glitches the real
// hardware exhibits; those are out of scope (sub-instruction timing is
// explicitly not modeled).
type Timer struct {
	div  uint16
	tima uint8
	tma  uint8
	tac  uint8

	accum uint16

	irq interrupts.Raiser
}

func New(irq interrupts.Raiser) *Timer {
	return &Timer{irq: irq}
}

func (t *Timer) enabled() bool { return t.tac&types.Bit2 != 0 }

// Step advances the timer by cycles CPU cycles.
func (t *Timer) Step(cycles uint8) {
	t.div += uint16(cycles)

	if !t.enabled() {
		return
	}

	rate := rates[t.tac&0x03]
	t.accum += uint16(cycles)
	for t.accum >= rate {
		t.accum -= rate
		t.tima++
		if t.tima == 0 {
			t.tima = t.tma
			t.irq.Request(interrupts.Timer)
		}
	}
}

func (t *Timer) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(t.div >> 8)
	case types.TIMA:
		return t.tima
	case types.TMA:
		return t.tma
	case types.TAC:
		return t.tac | 0xF8
	default:
		return 0xFF
	}
}

func (t *Timer) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		t.div = 0
		t.accum = 0
	case types.TIMA:
		t.tima = value
	case types.TMA:
		t.tma = value
	case types.TAC:
		t.tac = value & 0x07
	}
}

var _ types.Stater = (*Timer)(nil)

func (t *Timer) Load(s *types.State) {
	t.div = s.Read16()
	t.tima = s.Read8()
	t.tma = s.Read8()
	t.tac = s.Read8()
	t.accum = s.Read16()
}

func (t *Timer) Save(s *types.State) {
	s.Write16(t.div)
	s.Write8(t.tima)
	s.Write8(t.tma)
	s.Write8(t.tac)
	s.Write16(t.accum)
}
