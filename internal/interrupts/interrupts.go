// Package interrupts implements the Game Boy's interrupt request/enable
// registers and the one-instruction-deferred IME latch.
package interrupts

import "github.com/aldermoon/dmgboy/internal/types"

const (
	// VBlank is raised when the pixel unit's mode transitions from
	// H-blank to V-blank (LY reaches 144).
	VBlank = types.Bit0
	// LCDSTAT is raised on the qualifying STAT mode/LYC transitions.
	LCDSTAT = types.Bit1
	// Timer is raised when TIMA overflows.
	Timer = types.Bit2
	// Serial is raised on serial transfer completion. Never requested
	// by this core (serial link is out of scope) but still maskable.
	Serial = types.Bit3
	// Joypad is raised when a button transitions from released to
	// pressed.
	Joypad = types.Bit4

	// mask is the set of bits that are actually wired to a vector.
	mask = 0x1F
)

// vectors holds the five interrupt entry points, indexed by bit position
// 0..4 (VBlank..Joypad).
var vectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}

// Raiser is the capability devices use to request an interrupt without
// holding a reference to the bus that owns the flag register.
type Raiser interface {
	Request(flag uint8)
}

// Service owns the interrupt-enable and interrupt-flag registers and the
// master-enable state (IME) plus its one-instruction-deferred latch.
type Service struct {
	Flag   uint8 // IF (0xFF0F), low 5 bits meaningful
	Enable uint8 // IE (0xFFFF)

	IME bool

	// pendingEnable and primed implement the one-instruction delay
	// between EI and IME actually going true: ScheduleEnable arms
	// pendingEnable; the Tick call at the end of that same
	// instruction promotes it to primed without enabling anything;
	// only the Tick at the end of the *following* instruction sets
	// IME. This is what lets EI immediately followed by DI disable
	// interrupts again before they ever take effect.
	pendingEnable bool
	primed        bool
}

// NewService returns a Service with IME clear and no pending requests.
func NewService() *Service {
	return &Service{}
}

// Request sets the given interrupt's bit in IF. flag is one of the
// exported bit constants.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & mask
}

// ReadIF returns IF with its unused upper 3 bits pinned high, matching
// real hardware.
func (s *Service) ReadIF() uint8 {
	return s.Flag&mask | 0xE0
}

// WriteIF stores the low 5 bits of value.
func (s *Service) WriteIF(value uint8) {
	s.Flag = value & mask
}

// ReadIE returns IE verbatim.
func (s *Service) ReadIE() uint8 {
	return s.Enable
}

// WriteIE stores value verbatim.
func (s *Service) WriteIE(value uint8) {
	s.Enable = value
}

// Pending reports whether any enabled interrupt is currently requested,
// independent of IME. HALT wakes on this condition even with IME clear.
func (s *Service) Pending() bool {
	return s.Enable&s.Flag&mask != 0
}

// ScheduleEnable arms the one-instruction-deferred IME latch. Called by
// the EI instruction; IME becomes true after the next instruction
// completes, via Tick.
func (s *Service) ScheduleEnable() {
	s.pendingEnable = true
}

// Tick applies a pending EI latch at most once per call. The CPU calls
// this immediately after executing the instruction that followed EI.
func (s *Service) Tick() {
	if s.primed {
		s.primed = false
		s.IME = true
		return
	}
	if s.pendingEnable {
		s.pendingEnable = false
		s.primed = true
	}
}

// EnableNow sets IME immediately, with none of EI's one-instruction
// delay. Used by RETI, which re-enables interrupts as part of the
// same instruction that restores PC.
func (s *Service) EnableNow() {
	s.IME = true
	s.pendingEnable = false
	s.primed = false
}

// Disable clears IME immediately (the DI instruction).
func (s *Service) Disable() {
	s.IME = false
	s.pendingEnable = false
	s.primed = false
}

// Vector selects the lowest-numbered pending, enabled interrupt, clears
// its request bit, and returns its entry-point address. Returns (0,
// false) if none is pending.
func (s *Service) Vector() (uint16, bool) {
	pending := s.Enable & s.Flag & mask
	if pending == 0 {
		return 0, false
	}
	for i := 0; i < 5; i++ {
		bit := uint8(1 << i)
		if pending&bit != 0 {
			s.Flag &^= bit
			return vectors[i], true
		}
	}
	return 0, false
}

var _ types.Stater = (*Service)(nil)

func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
	s.IME = st.ReadBool()
	s.pendingEnable = st.ReadBool()
	s.primed = st.ReadBool()
}

func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
	st.WriteBool(s.IME)
	st.WriteBool(s.pendingEnable)
	st.WriteBool(s.primed)
}
