package cartridge

import "github.com/aldermoon/dmgboy/internal/types"

// mbc1 implements the MBC1 bank controller: a 5-bit ROM bank register
// combined with a 2-bit secondary register whose meaning (RAM bank vs.
// high ROM bank bits) is selected by the mode bit.
type mbc1 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBankLow uint8 // 5 bits, never stored as 0 (see Write)
	ramBank    uint8 // 2 bits
	modeBit    bool  // false = ROM banking mode, true = RAM banking mode

	romBankCount uint
	hasRAM       bool
}

func newMBC1(rom []byte, h Header) *mbc1 {
	return &mbc1{
		rom:          rom,
		ram:          make([]byte, h.RAMSize),
		romBankLow:   1,
		romBankCount: h.ROMBankCount,
		hasRAM:       h.CartridgeType == MBC1RAM || h.CartridgeType == MBC1RAMBATT,
	}
}

// effectiveROMBank returns the bank mapped into 0x4000-0x7FFF.
func (m *mbc1) effectiveROMBank() uint {
	bank := (uint(m.ramBank) << 5) | uint(m.romBankLow)
	return bank % m.romBankCount
}

// effectiveBank0 returns the bank mapped into 0x0000-0x3FFF. In mode 0 it
// is always bank 0; in mode 1 the high bits of the combined register
// apply there too.
func (m *mbc1) effectiveBank0() uint {
	if !m.modeBit {
		return 0
	}
	return (uint(m.ramBank) << 5) % m.romBankCount
}

func (m *mbc1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(m.effectiveBank0(), address)
	case address < 0x8000:
		return m.readROM(m.effectiveROMBank(), address-0x4000)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		bank := uint(0)
		if m.modeBit {
			bank = uint(m.ramBank)
		}
		offset := bank*0x2000 + uint(address&0x1FFF)
		if offset >= uint(len(m.ram)) {
			return 0xFF
		}
		return m.ram[offset]
	}
	return 0xFF
}

func (m *mbc1) readROM(bank uint, offset uint16) uint8 {
	idx := bank*0x4000 + uint(offset)
	if idx >= uint(len(m.rom)) {
		return 0xFF
	}
	return m.rom[idx]
}

func (m *mbc1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBankLow = bank
	case address < 0x6000:
		m.ramBank = value & 0x03
	case address < 0x8000:
		m.modeBit = value&0x01 != 0
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		bank := uint(0)
		if m.modeBit {
			bank = uint(m.ramBank)
		}
		offset := bank*0x2000 + uint(address&0x1FFF)
		if offset < uint(len(m.ram)) {
			m.ram[offset] = value
		}
	}
}

func (m *mbc1) RAM() []byte {
	if !m.hasRAM {
		return nil
	}
	return m.ram
}

func (m *mbc1) LoadRAM(data []byte) { copy(m.ram, data) }

var _ MBC = (*mbc1)(nil)

func (m *mbc1) Load(s *types.State) {
	m.ramEnabled = s.ReadBool()
	m.romBankLow = s.Read8()
	m.ramBank = s.Read8()
	m.modeBit = s.ReadBool()
	s.ReadData(m.ram)
}

func (m *mbc1) Save(s *types.State) {
	s.WriteBool(m.ramEnabled)
	s.Write8(m.romBankLow)
	s.Write8(m.ramBank)
	s.WriteBool(m.modeBit)
	s.WriteData(m.ram)
}
