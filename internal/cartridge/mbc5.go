package cartridge

import "github.com/aldermoon/dmgboy/internal/types"

// mbc5 implements the MBC5 bank controller: a 9-bit ROM bank register
// split across two write windows, and a 4-bit RAM bank register. Rumble
// variants steal bit 3 of the RAM bank register for the motor and are
// masked off here since there is no rumble sink in scope.
type mbc5 struct {
	rom []byte
	ram []byte

	ramEnabled  bool
	romBankLow  uint8
	romBankHigh uint8 // bit 0 only
	ramBank     uint8 // 4 bits

	romBankCount uint
	hasRAM       bool
	rumble       bool
}

func newMBC5(rom []byte, h Header) *mbc5 {
	return &mbc5{
		rom:          rom,
		ram:          make([]byte, h.RAMSize),
		romBankLow:   1,
		romBankCount: h.ROMBankCount,
		hasRAM:       h.CartridgeType == MBC5RAM || h.CartridgeType == MBC5RAMBATT || h.CartridgeType == MBC5RUMBLERAM || h.CartridgeType == MBC5RUMBLERAMBATT,
		rumble:       h.CartridgeType == MBC5RUMBLE || h.CartridgeType == MBC5RUMBLERAM || h.CartridgeType == MBC5RUMBLERAMBATT,
	}
}

func (m *mbc5) romBank() uint {
	bank := uint(m.romBankHigh&0x01)<<8 | uint(m.romBankLow)
	return bank % m.romBankCount
}

func (m *mbc5) ramBankMasked() uint8 {
	if m.rumble {
		return m.ramBank & 0x07
	}
	return m.ramBank & 0x0F
}

func (m *mbc5) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(0, address)
	case address < 0x8000:
		return m.readROM(m.romBank(), address-0x4000)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := uint(m.ramBankMasked())*0x2000 + uint(address&0x1FFF)
		if offset >= uint(len(m.ram)) {
			return 0xFF
		}
		return m.ram[offset]
	}
	return 0xFF
}

func (m *mbc5) readROM(bank uint, offset uint16) uint8 {
	idx := bank*0x4000 + uint(offset)
	if idx >= uint(len(m.rom)) {
		return 0xFF
	}
	return m.rom[idx]
}

func (m *mbc5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		m.romBankLow = value
	case address < 0x4000:
		m.romBankHigh = value & 0x01
	case address < 0x6000:
		m.ramBank = value & 0x0F
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		offset := uint(m.ramBankMasked())*0x2000 + uint(address&0x1FFF)
		if offset < uint(len(m.ram)) {
			m.ram[offset] = value
		}
	}
}

func (m *mbc5) RAM() []byte {
	if !m.hasRAM {
		return nil
	}
	return m.ram
}

func (m *mbc5) LoadRAM(data []byte) { copy(m.ram, data) }

var _ MBC = (*mbc5)(nil)

func (m *mbc5) Load(s *types.State) {
	m.ramEnabled = s.ReadBool()
	m.romBankLow = s.Read8()
	m.romBankHigh = s.Read8()
	m.ramBank = s.Read8()
	s.ReadData(m.ram)
}

func (m *mbc5) Save(s *types.State) {
	s.WriteBool(m.ramEnabled)
	s.Write8(m.romBankLow)
	s.Write8(m.romBankHigh)
	s.Write8(m.ramBank)
	s.WriteData(m.ram)
}
