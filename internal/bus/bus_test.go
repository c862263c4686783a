package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aldermoon/dmgboy/internal/cartridge"
	"github.com/aldermoon/dmgboy/internal/interrupts"
)

// fakeDevice stands in for the ppu/apu/timer/joypad peripherals so the
// bus's own memory map can be exercised without constructing a real one.
type fakeDevice struct {
	mem map[uint16]uint8
}

func newFakeDevice() *fakeDevice { return &fakeDevice{mem: map[uint16]uint8{}} }

func (d *fakeDevice) Read(address uint16) uint8  { return d.mem[address] }
func (d *fakeDevice) Write(address uint16, v uint8) { d.mem[address] = v }

func testROM() []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x134:], "BUSTEST")
	return rom
}

func newTestBus(t *testing.T) *Bus {
	cart, err := cartridge.Load(testROM())
	assert.NoError(t, err)

	b := New(cart, interrupts.NewService())
	b.AttachPeripherals(newFakeDevice(), newFakeDevice(), newFakeDevice(), newFakeDevice())
	return b
}

// Echo RAM (0xE000-0xFDFF) is a direct alias of work RAM's first 7680
// bytes (0xC000-0xDDFF); a write through either address is visible
// through the other.
func TestEchoRAMAliasesWorkRAM(t *testing.T) {
	b := newTestBus(t)

	for k := uint16(0); k < 0x1E00; k += 0x137 {
		b.Write(0xE000+k, uint8(k))
		assert.Equal(t, uint8(k), b.Read(0xC000+k))
	}

	for k := uint16(0); k < 0x1E00; k += 0x211 {
		b.Write(0xC000+k, uint8(k+1))
		assert.Equal(t, uint8(k+1), b.Read(0xE000+k))
	}
}

// High RAM (0xFF80-0xFFFE) round-trips independently of every other
// region.
func TestHighRAMReadWriteRoundTrip(t *testing.T) {
	b := newTestBus(t)

	for addr := uint32(0xFF80); addr < 0xFFFF; addr++ {
		v := uint8(addr)
		b.Write(uint16(addr), v)
		assert.Equal(t, v, b.Read(uint16(addr)))
	}
}

// IE (0xFFFF) is backed by the interrupt service, not hram, and must not
// alias the last high-RAM byte.
func TestInterruptEnableIsNotPartOfHighRAM(t *testing.T) {
	b := newTestBus(t)

	b.Write(0xFFFE, 0x5A)
	b.Write(0xFFFF, 0x1F)

	assert.Equal(t, uint8(0x5A), b.Read(0xFFFE))
	assert.Equal(t, uint8(0x1F), b.Read(0xFFFF))
}

// OAM DMA copies 160 bytes from src = value<<8 into the attached ppu's
// OAM range, byte for byte.
func TestDMACopiesOneHundredSixtyBytesFromSourcePage(t *testing.T) {
	b := newTestBus(t)

	for i := uint16(0); i < 0xA0; i++ {
		b.Write(0xC100+i, uint8(i^0x5A))
	}

	b.Write(0xFF46, 0xC1) // DMA source page 0xC100

	ppu := b.ppu.(*fakeDevice)
	for i := uint16(0); i < 0xA0; i++ {
		assert.Equal(t, uint8(i^0x5A), ppu.mem[0xFE00+i])
	}
}

// Unmapped IO reads return 0xFF, matching real hardware's floating bus
// behavior for registers this core doesn't implement.
func TestUnmappedIOReadsReturnAllOnes(t *testing.T) {
	b := newTestBus(t)
	assert.Equal(t, uint8(0xFF), b.Read(0xFF03))
}
