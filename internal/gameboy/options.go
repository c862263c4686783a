package gameboy

import (
	"github.com/aldermoon/dmgboy/internal/joypad"
	"github.com/aldermoon/dmgboy/pkg/log"
)

// WithLogger replaces the default null logger, which otherwise
// discards the unmapped-IO warnings the bus emits.
func WithLogger(l log.Logger) Option {
	return func(g *GameBoy) {
		g.log = l
		g.Bus.SetLogger(l)
	}
}

// WithButtonsHeld presses button at construction time, before the
// first RunFrame call — useful for driving a boot sequence that reads
// a held button (e.g. a test ROM's "hold A to skip" convention).
func WithButtonsHeld(buttons ...joypad.Button) Option {
	return func(g *GameBoy) {
		for _, b := range buttons {
			g.Joypad.Press(b)
		}
	}
}

// WithEntryPoint overrides PC and SP after construction, skipping the
// cartridge's normal reset vector. Intended for test fixtures that
// inject a hand-written program rather than a full ROM image.
func WithEntryPoint(pc, sp uint16) Option {
	return func(g *GameBoy) {
		g.CPU.PC = pc
		g.CPU.SP = sp
	}
}
