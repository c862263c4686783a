package cartridge

import "github.com/aldermoon/dmgboy/internal/types"

// rtc implements the MBC3 real-time clock. Advance policy: the clock
// advances by the emulated cycle budget the frame driver forwards to the
// cartridge (one tick per 4194304 cycles, i.e. one emulated second per
// emulated second of CPU time), not by the host's wall clock. This keeps
// save-state round-trips and test runs deterministic, at the cost of the
// clock stopping while the emulator itself is paused or not running —
// documented as the chosen resolution of spec.md §9's open RTC policy
// question.
type rtc struct {
	seconds, minutes, hours uint8
	dayLow                  uint8
	dayHigh                 uint8 // bit0: day bit8, bit6: halt, bit7: day overflow

	latchedSeconds, latchedMinutes, latchedHours uint8
	latchedDayLow, latchedDayHigh                uint8

	selected   uint8 // last 0x08-0x0C register selected for the A000 view
	latchState uint8 // last byte written to the 0x6000-0x7FFF latch trigger

	cycleAccum uint32
}

const cyclesPerSecond = 4194304

func (r *rtc) halted() bool { return r.dayHigh&types.Bit6 != 0 }

// AdvanceCycles advances the live (unlatched) clock by cycles worth of
// emulated time.
func (r *rtc) AdvanceCycles(cycles uint32) {
	if r.halted() {
		return
	}
	r.cycleAccum += cycles
	for r.cycleAccum >= cyclesPerSecond {
		r.cycleAccum -= cyclesPerSecond
		r.tickSecond()
	}
}

func (r *rtc) tickSecond() {
	r.seconds++
	if r.seconds < 60 {
		return
	}
	r.seconds = 0
	r.minutes++
	if r.minutes < 60 {
		return
	}
	r.minutes = 0
	r.hours++
	if r.hours < 24 {
		return
	}
	r.hours = 0

	day := uint16(r.dayLow) | uint16(r.dayHigh&types.Bit0)<<8
	day++
	if day > 511 {
		day = 0
		r.dayHigh |= types.Bit7
	}
	r.dayLow = uint8(day)
	r.dayHigh = (r.dayHigh &^ types.Bit0) | uint8(day>>8)&types.Bit0
}

// latch snapshots the live registers into the latched view, called when
// 0x00 then 0x01 are written in succession to the 0x6000-0x7FFF window.
func (r *rtc) latch(value uint8) {
	if r.latchState == 0x00 && value == 0x01 {
		r.latchedSeconds = r.seconds
		r.latchedMinutes = r.minutes
		r.latchedHours = r.hours
		r.latchedDayLow = r.dayLow
		r.latchedDayHigh = r.dayHigh
	}
	r.latchState = value
}

// ReadSelected returns the latched value of the register selected by the
// most recent 0x08-0x0C select write. Returns 0xFF if nothing valid is
// selected.
func (r *rtc) ReadSelected() uint8 {
	switch r.selected {
	case 0x08:
		return r.latchedSeconds
	case 0x09:
		return r.latchedMinutes
	case 0x0A:
		return r.latchedHours
	case 0x0B:
		return r.latchedDayLow
	case 0x0C:
		return r.latchedDayHigh
	default:
		return 0xFF
	}
}

// WriteSelected writes value (masked to its register's natural width)
// through to the live (unlatched) register selected by the most recent
// 0x08-0x0C select write.
func (r *rtc) WriteSelected(value uint8) {
	switch r.selected {
	case 0x08:
		r.seconds = value & 0x3F
	case 0x09:
		r.minutes = value & 0x3F
	case 0x0A:
		r.hours = value & 0x1F
	case 0x0B:
		r.dayLow = value
	case 0x0C:
		r.dayHigh = value & 0xC1
	}
}

func (r *rtc) Load(s *types.State) {
	r.seconds = s.Read8()
	r.minutes = s.Read8()
	r.hours = s.Read8()
	r.dayLow = s.Read8()
	r.dayHigh = s.Read8()
	r.latchedSeconds = s.Read8()
	r.latchedMinutes = s.Read8()
	r.latchedHours = s.Read8()
	r.latchedDayLow = s.Read8()
	r.latchedDayHigh = s.Read8()
	r.selected = s.Read8()
	r.latchState = s.Read8()
	r.cycleAccum = s.Read32()
}

func (r *rtc) Save(s *types.State) {
	s.Write8(r.seconds)
	s.Write8(r.minutes)
	s.Write8(r.hours)
	s.Write8(r.dayLow)
	s.Write8(r.dayHigh)
	s.Write8(r.latchedSeconds)
	s.Write8(r.latchedMinutes)
	s.Write8(r.latchedHours)
	s.Write8(r.latchedDayLow)
	s.Write8(r.latchedDayHigh)
	s.Write8(r.selected)
	s.Write8(r.latchState)
	s.Write32(r.cycleAccum)
}
