package cartridge

import "github.com/aldermoon/dmgboy/internal/types"

// mbc3 implements the MBC3 bank controller: a 7-bit ROM bank register,
// a RAM bank register that doubles as the real-time clock register
// selector, and (on the TIMER variants) an rtc.
type mbc3 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    uint8 // 7 bits, never stored as 0
	ramOrRTC   uint8 // 0x00-0x03 selects a RAM bank, 0x08-0x0C selects an RTC register

	romBankCount uint
	hasRAM       bool
	hasRTC       bool

	clock rtc
}

func newMBC3(rom []byte, h Header) *mbc3 {
	return &mbc3{
		rom:          rom,
		ram:          make([]byte, h.RAMSize),
		romBank:      1,
		romBankCount: h.ROMBankCount,
		hasRAM:       h.CartridgeType == MBC3RAM || h.CartridgeType == MBC3RAMBATT || h.CartridgeType == MBC3TIMERRAMBATT,
		hasRTC:       h.CartridgeType.HasRTC(),
	}
}

func (m *mbc3) Step(cycles uint8) {
	if m.hasRTC {
		m.clock.AdvanceCycles(uint32(cycles))
	}
}

func (m *mbc3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(0, address)
	case address < 0x8000:
		bank := uint(m.romBank) % m.romBankCount
		return m.readROM(bank, address-0x4000)
	case address >= 0xA000 && address < 0xC000:
		if m.hasRTC && m.ramOrRTC >= 0x08 && m.ramOrRTC <= 0x0C {
			return m.clock.ReadSelected()
		}
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := uint(m.ramOrRTC)*0x2000 + uint(address&0x1FFF)
		if offset >= uint(len(m.ram)) {
			return 0xFF
		}
		return m.ram[offset]
	}
	return 0xFF
}

func (m *mbc3) readROM(bank uint, offset uint16) uint8 {
	idx := bank*0x4000 + uint(offset)
	if idx >= uint(len(m.rom)) {
		return 0xFF
	}
	return m.rom[idx]
}

func (m *mbc3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case address < 0x6000:
		m.ramOrRTC = value
		if value >= 0x08 && value <= 0x0C {
			m.clock.selected = value
		}
	case address < 0x8000:
		if m.hasRTC {
			m.clock.latch(value)
		}
	case address >= 0xA000 && address < 0xC000:
		if m.hasRTC && m.ramOrRTC >= 0x08 && m.ramOrRTC <= 0x0C {
			m.clock.WriteSelected(value)
			return
		}
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		offset := uint(m.ramOrRTC)*0x2000 + uint(address&0x1FFF)
		if offset < uint(len(m.ram)) {
			m.ram[offset] = value
		}
	}
}

func (m *mbc3) RAM() []byte {
	if !m.hasRAM {
		return nil
	}
	return m.ram
}

func (m *mbc3) LoadRAM(data []byte) { copy(m.ram, data) }

var _ MBC = (*mbc3)(nil)

func (m *mbc3) Load(s *types.State) {
	m.ramEnabled = s.ReadBool()
	m.romBank = s.Read8()
	m.ramOrRTC = s.Read8()
	s.ReadData(m.ram)
	if m.hasRTC {
		m.clock.Load(s)
	}
}

func (m *mbc3) Save(s *types.State) {
	s.WriteBool(m.ramEnabled)
	s.Write8(m.romBank)
	s.Write8(m.ramOrRTC)
	s.WriteData(m.ram)
	if m.hasRTC {
		m.clock.Save(s)
	}
}
