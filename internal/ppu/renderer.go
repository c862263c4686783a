package ppu

import "github.com/aldermoon/dmgboy/internal/types"

// sprite is one OAM entry visible on the current scanline.
type sprite struct {
	y, x, tile, attr uint8
	oamIndex         uint8
}

// renderScanline composites the background, window and sprite layers
// for the current LY into Frame in one shot, at the instant mode 3
// ends. Real hardware streams this pixel-by-pixel through a FIFO as
// mode 3 progresses; collapsing it to a single end-of-mode compositor
// is observationally equivalent for anything that doesn't depend on
// mid-scanline register writes, which this core doesn't model.
func (p *PPU) renderScanline() {
	line := p.ly
	var bgColor [ScreenWidth]uint8

	bgEnabled := p.lcdc&types.Bit0 != 0
	winEnabled := p.lcdc&types.Bit5 != 0 && p.wy <= line

	for x := uint8(0); x < ScreenWidth; x++ {
		var idx uint8
		if winEnabled && int(x)+7 >= int(p.wx) {
			idx = p.windowPixel(x, line)
		} else if bgEnabled {
			idx = p.backgroundPixel(x, line)
		}
		bgColor[x] = idx
		p.Frame[line][x] = applyPalette(p.bgp, idx)
	}

	if p.lcdc&types.Bit1 != 0 {
		p.renderSprites(line, bgColor[:])
	}
}

func (p *PPU) backgroundPixel(x, y uint8) uint8 {
	scrolledX := x + p.scx
	scrolledY := y + p.scy

	tileMapBase := uint16(0x1800)
	if p.lcdc&types.Bit3 != 0 {
		tileMapBase = 0x1C00
	}
	mapAddr := tileMapBase + uint16(scrolledY/8)*32 + uint16(scrolledX/8)
	tileNo := p.vram[mapAddr]

	return p.tilePixel(tileNo, scrolledX%8, scrolledY%8)
}

func (p *PPU) windowPixel(x, y uint8) uint8 {
	winX := x + 7 - p.wx
	winY := y - p.wy

	tileMapBase := uint16(0x1800)
	if p.lcdc&types.Bit6 != 0 {
		tileMapBase = 0x1C00
	}
	mapAddr := tileMapBase + uint16(winY/8)*32 + uint16(winX/8)
	tileNo := p.vram[mapAddr]

	return p.tilePixel(tileNo, winX%8, winY%8)
}

// tilePixel reads the 2-bit color index at (col, row) within tileNo,
// honoring LCDC.4's addressing mode (signed tile IDs relative to
// 0x9000 when clear, unsigned from 0x8000 when set).
func (p *PPU) tilePixel(tileNo, col, row uint8) uint8 {
	var base uint16
	if p.lcdc&types.Bit4 != 0 {
		base = uint16(tileNo) * 16
	} else {
		base = uint16(0x1000 + int16(int8(tileNo))*16)
	}
	addr := base + uint16(row)*2
	low := p.vram[addr]
	high := p.vram[addr+1]
	bit := 7 - col
	return (low>>bit)&1 | ((high>>bit)&1)<<1
}

// renderSprites overlays up to 10 sprites on line, applying the
// standard DMG priority rules: lower OAM index wins ties at equal X,
// and a sprite's BG-priority attribute bit defers to any non-zero
// background pixel already drawn.
func (p *PPU) renderSprites(line uint8, bgColor []uint8) {
	tall := p.lcdc&types.Bit2 != 0
	height := uint8(8)
	if tall {
		height = 16
	}

	var visible []sprite
	for i := 0; i < 40 && len(visible) < 10; i++ {
		base := i * 4
		y := p.oam[base]
		x := p.oam[base+1]
		tile := p.oam[base+2]
		attr := p.oam[base+3]

		spriteTop := int(y) - 16
		if int(line) >= spriteTop && int(line) < spriteTop+int(height) {
			visible = append(visible, sprite{y: y, x: x, tile: tile, attr: attr, oamIndex: uint8(i)})
		}
	}

	// Sort by ascending X so the first visible pixel written at a
	// given screen column belongs to the highest-priority sprite; stable
	// sort preserves OAM order as the tiebreaker.
	for i := 1; i < len(visible); i++ {
		for j := i; j > 0 && visible[j].x < visible[j-1].x; j-- {
			visible[j], visible[j-1] = visible[j-1], visible[j]
		}
	}

	drawn := make([]bool, ScreenWidth)
	for _, s := range visible {
		spriteTop := int(s.y) - 16
		row := uint8(int(line) - spriteTop)
		if s.attr&types.Bit6 != 0 {
			row = height - 1 - row
		}

		tile := s.tile
		if tall {
			tile &^= 1
			if row >= 8 {
				tile |= 1
				row -= 8
			}
		}

		palette := p.obp0
		if s.attr&types.Bit4 != 0 {
			palette = p.obp1
		}

		for col := uint8(0); col < 8; col++ {
			screenX := int(s.x) + int(col) - 8
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}
			if drawn[screenX] {
				continue
			}

			tc := col
			if s.attr&types.Bit5 != 0 {
				tc = 7 - col
			}
			// Sprite tiles always use unsigned addressing from 0x8000,
			// whatever LCDC.4 selects for the background and window.
			addr := uint16(tile)*16 + uint16(row)*2
			bit := 7 - tc
			idx := (p.vram[addr]>>bit)&1 | ((p.vram[addr+1]>>bit)&1)<<1
			if idx == 0 {
				continue
			}
			if s.attr&types.Bit7 != 0 && bgColor[screenX] != 0 {
				continue
			}

			p.Frame[line][screenX] = applyPalette(palette, idx)
			drawn[screenX] = true
		}
	}
}

// applyPalette resolves a 2-bit color index through a BGP/OBPn
// register into the 2-bit shade it selects.
func applyPalette(palette, index uint8) uint8 {
	return (palette >> (index * 2)) & 0x03
}
