// Package gameboy wires together the CPU, bus, cartridge and
// peripherals into a single deterministic core and drives it one frame
// at a time.
package gameboy

import (
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/aldermoon/dmgboy/internal/apu"
	"github.com/aldermoon/dmgboy/internal/bus"
	"github.com/aldermoon/dmgboy/internal/cartridge"
	"github.com/aldermoon/dmgboy/internal/cpu"
	"github.com/aldermoon/dmgboy/internal/interrupts"
	"github.com/aldermoon/dmgboy/internal/joypad"
	"github.com/aldermoon/dmgboy/internal/ppu"
	"github.com/aldermoon/dmgboy/internal/timer"
	"github.com/aldermoon/dmgboy/internal/types"
	"github.com/aldermoon/dmgboy/pkg/log"
)

const (
	// ClockSpeed is the DMG's master clock rate in Hz.
	ClockSpeed = 4194304
	// CyclesPerFrame is the number of clock cycles in one 59.7 Hz frame.
	CyclesPerFrame = 70224

	// SaveStateVersion is checked first when loading a save state;
	// loads from a different version are rejected outright rather
	// than risking a misinterpreted byte stream.
	SaveStateVersion = 1
)

// ErrSaveStateVersion reports a save state written by an incompatible
// version of this core.
type ErrSaveStateVersion struct {
	Got, Want uint8
}

func (e *ErrSaveStateVersion) Error() string {
	return fmt.Sprintf("gameboy: save state version %d, want %d", e.Got, e.Want)
}

// ErrSaveStateMismatch reports a save state whose cartridge fingerprint
// doesn't match the ROM currently loaded.
type ErrSaveStateMismatch struct{}

func (e *ErrSaveStateMismatch) Error() string {
	return "gameboy: save state does not match the loaded cartridge"
}

// GameBoy owns every component of the emulated console and is the only
// type outside this package that display/audio/input sinks and the
// save-state loader need to talk to.
type GameBoy struct {
	CPU    *cpu.CPU
	Bus    *bus.Bus
	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Timer
	Joypad *joypad.Joypad
	Cart   *cartridge.Cartridge

	irq *interrupts.Service
	log log.Logger
}

// Option configures a GameBoy at construction time.
type Option func(*GameBoy)

// New constructs a GameBoy around rom, wiring every peripheral's
// interrupt capability to the shared interrupts.Service and the bus's
// IO dispatch table to the concrete devices.
func New(rom []byte, opts ...Option) (*GameBoy, error) {
	cart, err := cartridge.Load(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}

	irq := interrupts.NewService()
	b := bus.New(cart, irq)

	g := &GameBoy{
		CPU:    cpu.New(b, irq),
		Bus:    b,
		PPU:    ppu.New(irq),
		APU:    apu.New(),
		Timer:  timer.New(irq),
		Joypad: joypad.New(irq),
		Cart:   cart,
		irq:    irq,
		log:    log.NewNullLogger(),
	}
	b.AttachPeripherals(g.PPU, g.APU, g.Timer, g.Joypad)

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// RunFrame steps the core until the pixel unit has produced a complete
// frame, dispatching the CPU's returned cycle count to the timer,
// pixel unit, sound unit and cartridge (for MBC3's RTC) in that order
// every step, and returns the rendered frame.
func (g *GameBoy) RunFrame() [ppu.ScreenHeight][ppu.ScreenWidth]uint8 {
	for !g.PPU.FrameReady() {
		cycles := g.CPU.Step()
		g.Timer.Step(cycles)
		g.PPU.Step(cycles)
		g.APU.Step(cycles)
		g.Cart.Step(cycles)
	}
	return g.PPU.Frame
}

// Samples returns the ring buffer the sound unit mixes output into.
func (g *GameBoy) Samples() *apu.Ring { return g.APU.Samples() }

// PressButton and ReleaseButton forward to the joypad.
func (g *GameBoy) PressButton(b joypad.Button)   { g.Joypad.Press(b) }
func (g *GameBoy) ReleaseButton(b joypad.Button) { g.Joypad.Release(b) }

// fingerprint identifies a cartridge for save-state compatibility
// checking: the title plus ROM length and header checksum hashed
// together, cheap enough to compute on every save/load and far less
// likely to collide than a bare title compare.
func (g *GameBoy) fingerprint(romLength int) uint64 {
	h := xxhash.New()
	h.Write([]byte(g.Cart.Title()))
	h.Write([]byte{
		uint8(romLength), uint8(romLength >> 8), uint8(romLength >> 16),
		g.Cart.Header.HeaderChecksum,
	})
	return h.Sum64()
}

// SaveState serializes the entire core into a flat byte buffer,
// prefixed with a version byte and an identity fingerprint checked by
// LoadState.
func (g *GameBoy) SaveState(romLength int) []byte {
	s := types.NewState()
	s.Write8(SaveStateVersion)

	fp := g.fingerprint(romLength)
	for i := 0; i < 8; i++ {
		s.Write8(uint8(fp >> (8 * i)))
	}

	g.CPU.Save(s)
	g.Bus.Save(s)
	g.PPU.Save(s)
	g.APU.Save(s)
	g.Timer.Save(s)
	g.Joypad.Save(s)
	g.irq.Save(s)
	g.Cart.Save(s)

	return s.Bytes()
}

// LoadState restores the core from data previously returned by
// SaveState. It refuses to load a mismatched version or a state saved
// against a different cartridge.
func (g *GameBoy) LoadState(data []byte, romLength int) error {
	if len(data) < 9 {
		return fmt.Errorf("gameboy: save state too short")
	}

	s := types.StateFromBytes(data)
	if version := s.Read8(); version != SaveStateVersion {
		return &ErrSaveStateVersion{Got: version, Want: SaveStateVersion}
	}

	var fp uint64
	for i := 0; i < 8; i++ {
		fp |= uint64(s.Read8()) << (8 * i)
	}
	if fp != g.fingerprint(romLength) {
		return &ErrSaveStateMismatch{}
	}

	g.CPU.Load(s)
	g.Bus.Load(s)
	g.PPU.Load(s)
	g.APU.Load(s)
	g.Timer.Load(s)
	g.Joypad.Load(s)
	g.irq.Load(s)
	g.Cart.Load(s)

	return nil
}
