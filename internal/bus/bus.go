// Package bus implements the Game Boy's 16-bit address space, routing
// reads and writes to work RAM, high RAM, the cartridge, and the
// peripheral registers in 0xFF00-0xFF7F plus 0xFFFF.
package bus

import (
	"github.com/aldermoon/dmgboy/internal/cartridge"
	"github.com/aldermoon/dmgboy/internal/interrupts"
	"github.com/aldermoon/dmgboy/internal/types"
	"github.com/aldermoon/dmgboy/pkg/log"
)

// Device is anything mapped into the address space that the bus
// delegates reads and writes to directly (the pixel unit for
// VRAM/OAM/its registers, the sound unit for wave RAM and its
// registers, the timer, the joypad).
type Device interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// ioHandler is one entry of the 0xFF00-0xFF7F dispatch table.
type ioHandler struct {
	read  func(address uint16) uint8
	write func(address uint16, value uint8)
}

// Bus owns the memory regions not delegated to another component (work
// RAM, high RAM, the unusable region) and dispatches everything else to
// whichever Device was registered for it. It holds no reference back to
// the CPU; interrupt requests from peripherals go through
// interrupts.Raiser instead, so nothing on the bus needs to know about
// the bus itself.
type Bus struct {
	Cart *cartridge.Cartridge
	irq  *interrupts.Service

	ppu     Device
	apu     Device
	timer   Device
	joypad  Device

	wram [0x2000]byte
	hram [0x80]byte

	io [0x80]ioHandler

	dmaInProgress bool

	log log.Logger
}

// New constructs a Bus over cart. The pixel unit, sound unit, timer and
// joypad must be attached with AttachPeripherals before the bus is used;
// this split mirrors how the frame driver wires the concrete devices
// together after constructing them all.
func New(cart *cartridge.Cartridge, irq *interrupts.Service) *Bus {
	b := &Bus{Cart: cart, irq: irq, log: log.NewNullLogger()}
	b.initIO()
	return b
}

// SetLogger replaces the bus's logger, used to report unmapped IO
// access during development.
func (b *Bus) SetLogger(l log.Logger) { b.log = l }

// AttachPeripherals wires the devices that own sub-ranges of
// 0xFF00-0xFF7F (and, for the pixel unit, VRAM/OAM outside that range).
func (b *Bus) AttachPeripherals(ppu, apu, timer, joypad Device) {
	b.ppu, b.apu, b.timer, b.joypad = ppu, apu, timer, joypad
	b.initIO()
}

func (b *Bus) initIO() {
	for i := range b.io {
		b.io[i] = ioHandler{
			read: func(addr uint16) uint8 {
				b.log.Debugf("bus: read from unmapped IO register 0x%04X", addr)
				return 0xFF
			},
			write: func(addr uint16, v uint8) {
				b.log.Debugf("bus: write 0x%02X to unmapped IO register 0x%04X", v, addr)
			},
		}
	}

	b.register(types.P1, func(uint16) uint8 { return b.deviceRead(b.joypad, types.P1) }, func(v uint8) { b.deviceWrite(b.joypad, types.P1, v) })
	b.register(types.SB, func(uint16) uint8 { return 0x00 }, func(uint8) {})
	b.register(types.SC, func(uint16) uint8 { return 0x7E }, func(uint8) {})

	for addr := types.DIV; addr <= types.TAC; addr++ {
		a := addr
		b.register(a, func(uint16) uint8 { return b.deviceRead(b.timer, a) }, func(v uint8) { b.deviceWrite(b.timer, a, v) })
	}

	b.register(types.IF, func(uint16) uint8 { return b.irq.ReadIF() }, func(v uint8) { b.irq.WriteIF(v) })

	for addr := types.NR10; addr <= types.WaveRAMEnd; addr++ {
		a := addr
		b.register(a, func(uint16) uint8 { return b.deviceRead(b.apu, a) }, func(v uint8) { b.deviceWrite(b.apu, a, v) })
	}

	for addr := types.LCDC; addr <= types.WX; addr++ {
		a := addr
		if a == types.DMA {
			b.register(a, func(uint16) uint8 { return b.deviceRead(b.ppu, a) }, func(v uint8) { b.startDMA(v) })
			continue
		}
		b.register(a, func(uint16) uint8 { return b.deviceRead(b.ppu, a) }, func(v uint8) { b.deviceWrite(b.ppu, a, v) })
	}
}

func (b *Bus) register(addr types.HardwareAddress, read func(uint16) uint8, write func(uint8)) {
	b.io[addr&0x7F] = ioHandler{
		read:  read,
		write: func(address uint16, v uint8) { write(v) },
	}
}

func (b *Bus) deviceRead(d Device, addr uint16) uint8 {
	if d == nil {
		return 0xFF
	}
	return d.Read(addr)
}

func (b *Bus) deviceWrite(d Device, addr uint16, v uint8) {
	if d == nil {
		return
	}
	d.Write(addr, v)
}

// startDMA copies 160 bytes from value*0x100 into OAM. Real hardware
// locks the bus for 160 machine cycles; the frame driver's ordering
// (the CPU cannot issue another memory access until its current
// instruction completes, and DMA completes well within one instruction
// boundary at the cycle granularity this core models) makes an
// instantaneous copy observationally equivalent for anything this core
// emulates.
func (b *Bus) startDMA(value uint8) {
	src := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.ppu.Write(0xFE00+i, b.Read(src+i))
	}
}

// Read returns the byte visible to the CPU at address.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return b.Cart.Read(address)
	case address < 0xA000:
		return b.ppu.Read(address)
	case address < 0xC000:
		return b.Cart.Read(address)
	case address < 0xE000:
		return b.wram[address-0xC000]
	case address < 0xFE00:
		return b.wram[address-0xE000]
	case address < 0xFEA0:
		return b.ppu.Read(address)
	case address < 0xFF00:
		return 0xFF
	case address < 0xFF80:
		return b.io[address&0x7F].read(address)
	case address < 0xFFFF:
		return b.hram[address-0xFF80]
	default:
		return b.irq.ReadIE()
	}
}

// Write stores value at address, delegating to the cartridge or an
// attached peripheral where the address range demands it.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		b.Cart.Write(address, value)
	case address < 0xA000:
		b.ppu.Write(address, value)
	case address < 0xC000:
		b.Cart.Write(address, value)
	case address < 0xE000:
		b.wram[address-0xC000] = value
	case address < 0xFE00:
		b.wram[address-0xE000] = value
	case address < 0xFEA0:
		b.ppu.Write(address, value)
	case address < 0xFF00:
		// unusable region, writes discarded
	case address < 0xFF80:
		b.io[address&0x7F].write(address, value)
	case address < 0xFFFF:
		b.hram[address-0xFF80] = value
	default:
		b.irq.WriteIE(value)
	}
}

// Request raises an interrupt on behalf of an attached peripheral.
// Peripherals hold the interrupts.Raiser capability, not the bus.
func (b *Bus) Request(flag uint8) { b.irq.Request(flag) }

var _ interrupts.Raiser = (*Bus)(nil)

var _ types.Stater = (*Bus)(nil)

func (b *Bus) Load(s *types.State) {
	s.ReadData(b.wram[:])
	s.ReadData(b.hram[:])
}

func (b *Bus) Save(s *types.State) {
	s.WriteData(b.wram[:])
	s.WriteData(b.hram[:])
}
