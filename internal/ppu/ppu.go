// Package ppu implements the Game Boy's pixel processing unit: the
// mode 2/3/0/1 scanline automaton, VRAM/OAM storage, and an atomic
// end-of-mode-3 scanline compositor. It does not model the real
// hardware's pixel FIFO or sub-scanline mid-line effects — those are
// out of scope.
package ppu

import (
	"github.com/aldermoon/dmgboy/internal/interrupts"
	"github.com/aldermoon/dmgboy/internal/types"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	ModeHBlank = 0
	ModeVBlank = 1
	ModeOAM    = 2
	ModeVRAM   = 3

	oamCycles    = 80
	vramCycles   = 172
	hblankCycles = 204
	lineCycles   = oamCycles + vramCycles + hblankCycles // 456
	vblankLines  = 10
)

// PPU renders one Game Boy frame at a time into Frame, a 160x144 grid
// of 2-bit-deep palette indices resolved against BGP/OBP0/OBP1. A
// higher layer (pkg/video) turns those indices into display colors;
// this package only ever produces palette-space pixels.
type PPU struct {
	lcdc uint8
	stat uint8
	scy, scx uint8
	ly, lyc  uint8
	bgp, obp0, obp1 uint8
	wy, wx   uint8

	mode uint8
	dot  uint16

	vram [0x2000]byte
	oam  [0xA0]byte

	Frame     [ScreenHeight][ScreenWidth]uint8
	frameDone bool

	irq interrupts.Raiser
}

func New(irq interrupts.Raiser) *PPU {
	return &PPU{irq: irq}
}

func (p *PPU) enabled() bool { return p.lcdc&types.Bit7 != 0 }

// FrameReady reports whether a complete frame has been produced since
// the last call, clearing the flag.
func (p *PPU) FrameReady() bool {
	r := p.frameDone
	p.frameDone = false
	return r
}

// Step advances the PPU by cycles CPU cycles, running the mode
// automaton and triggering a scanline render the instant mode 3 ends.
func (p *PPU) Step(cycles uint8) {
	if !p.enabled() {
		return
	}

	remaining := uint16(cycles)
	for remaining > 0 {
		p.dot++
		remaining--

		switch p.mode {
		case ModeOAM:
			if p.dot == oamCycles {
				p.setMode(ModeVRAM)
			}
		case ModeVRAM:
			if p.dot == oamCycles+vramCycles {
				p.renderScanline()
				p.setMode(ModeHBlank)
			}
		case ModeHBlank:
			if p.dot == lineCycles {
				p.dot = 0
				p.advanceLine()
			}
		case ModeVBlank:
			if p.dot == lineCycles {
				p.dot = 0
				p.advanceLine()
			}
		}
	}
}

func (p *PPU) advanceLine() {
	p.ly++
	if p.ly == ScreenHeight {
		p.setMode(ModeVBlank)
		p.irq.Request(interrupts.VBlank)
		p.frameDone = true
	} else if p.ly == ScreenHeight+vblankLines {
		p.ly = 0
		p.setMode(ModeOAM)
	} else if p.mode == ModeHBlank {
		p.setMode(ModeOAM)
	}
	p.checkLYC()
}

// setMode transitions to mode and raises a STAT interrupt on the
// entry edge if the corresponding STAT enable bit is set. This
// resolves the hardware's mode-vs-enable-bit STAT timing ambiguity by
// always firing once per mode entry, never continuously while a mode
// is active.
func (p *PPU) setMode(mode uint8) {
	p.mode = mode
	var enable uint8
	switch mode {
	case ModeHBlank:
		enable = types.Bit3
	case ModeVBlank:
		enable = types.Bit4
	case ModeOAM:
		enable = types.Bit5
	}
	if enable != 0 && p.stat&enable != 0 {
		p.raiseStat()
	}
}

func (p *PPU) checkLYC() {
	if p.ly == p.lyc {
		p.stat |= types.Bit2
		if p.stat&types.Bit6 != 0 {
			p.raiseStat()
		}
	} else {
		p.stat &^= types.Bit2
	}
}

func (p *PPU) raiseStat() {
	p.irq.Request(interrupts.LCDSTAT)
}

func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address < 0xA000:
		if p.mode == ModeVRAM {
			return 0xFF
		}
		return p.vram[address-0x8000]
	case address >= 0xFE00 && address < 0xFEA0:
		if p.mode == ModeOAM || p.mode == ModeVRAM {
			return 0xFF
		}
		return p.oam[address-0xFE00]
	}
	switch address {
	case types.LCDC:
		return p.lcdc
	case types.STAT:
		return p.stat | 0x80 | p.mode
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	case types.BGP:
		return p.bgp
	case types.OBP0:
		return p.obp0
	case types.OBP1:
		return p.obp1
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	case types.DMA:
		return 0xFF
	}
	return 0xFF
}

func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= 0x8000 && address < 0xA000:
		if p.mode != ModeVRAM {
			p.vram[address-0x8000] = value
		}
		return
	case address >= 0xFE00 && address < 0xFEA0:
		if p.mode != ModeOAM && p.mode != ModeVRAM {
			p.oam[address-0xFE00] = value
		}
		return
	}
	switch address {
	case types.LCDC:
		wasEnabled := p.enabled()
		p.lcdc = value
		if wasEnabled && !p.enabled() {
			p.ly = 0
			p.dot = 0
			p.mode = ModeHBlank
		} else if !wasEnabled && p.enabled() {
			p.dot = 0
			p.mode = ModeOAM
		}
	case types.STAT:
		p.stat = (p.stat & types.Bit2) | (value &^ (types.Bit0 | types.Bit1 | types.Bit2)) | 0x80
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LY:
		// read-only
	case types.LYC:
		p.lyc = value
		p.checkLYC()
	case types.BGP:
		p.bgp = value
	case types.OBP0:
		p.obp0 = value
	case types.OBP1:
		p.obp1 = value
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	case types.DMA:
		// handled by the bus, which writes directly into OAM
	}
}

var _ types.Stater = (*PPU)(nil)

func (p *PPU) Load(s *types.State) {
	p.lcdc = s.Read8()
	p.stat = s.Read8()
	p.scy = s.Read8()
	p.scx = s.Read8()
	p.ly = s.Read8()
	p.lyc = s.Read8()
	p.bgp = s.Read8()
	p.obp0 = s.Read8()
	p.obp1 = s.Read8()
	p.wy = s.Read8()
	p.wx = s.Read8()
	p.mode = s.Read8()
	p.dot = s.Read16()
	s.ReadData(p.vram[:])
	s.ReadData(p.oam[:])
}

func (p *PPU) Save(s *types.State) {
	s.Write8(p.lcdc)
	s.Write8(p.stat)
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.ly)
	s.Write8(p.lyc)
	s.Write8(p.bgp)
	s.Write8(p.obp0)
	s.Write8(p.obp1)
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.Write8(p.mode)
	s.Write16(p.dot)
	s.WriteData(p.vram[:])
	s.WriteData(p.oam[:])
}
