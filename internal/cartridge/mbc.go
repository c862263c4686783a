package cartridge

import "github.com/aldermoon/dmgboy/internal/types"

// MBC is a bank controller: it owns the cartridge ROM bytes and any
// external RAM, and resolves the CPU-visible 0x0000-0x7FFF / 0xA000-0xBFFF
// windows according to its own bank-select registers.
type MBC interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	// RAM returns the external RAM for battery-backed persistence.
	// Returns nil if the cartridge has no RAM.
	RAM() []byte
	LoadRAM(data []byte)

	types.Stater
}

// New constructs the MBC implementation selected by h.CartridgeType. rom
// is retained by reference, never copied or mutated.
func New(rom []byte, h Header) MBC {
	switch h.CartridgeType {
	case ROM:
		return newNone(rom)
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return newMBC1(rom, h)
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return newMBC3(rom, h)
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return newMBC5(rom, h)
	default:
		// header parsing already rejects this case; unreachable.
		panic("cartridge: unresolved MBC type")
	}
}

// none is the no-bank-controller case: ROM is read directly, writes
// below 0x8000 are ignored, and there is no external RAM.
type none struct {
	rom []byte
}

func newNone(rom []byte) *none { return &none{rom: rom} }

func (n *none) Read(address uint16) uint8 {
	if int(address) < len(n.rom) {
		return n.rom[address]
	}
	return 0xFF
}

func (n *none) Write(address uint16, value uint8) {}
func (n *none) RAM() []byte                        { return nil }
func (n *none) LoadRAM(data []byte)                {}
func (n *none) Load(s *types.State)                {}
func (n *none) Save(s *types.State)                {}

var _ MBC = (*none)(nil)
