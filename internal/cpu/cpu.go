// Package cpu implements the Sharp LR35902 instruction set: the eight
// 8-bit registers and their 16-bit pair aliases, the full opcode and
// CB-prefixed opcode tables, HALT/interrupt dispatch, and the
// one-instruction-deferred EI latch.
package cpu

import (
	"github.com/aldermoon/dmgboy/internal/interrupts"
	"github.com/aldermoon/dmgboy/internal/types"
)

// Bus is the memory interface the CPU executes against.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

type runMode uint8

const (
	modeNormal runMode = iota
	modeHalt
	modeHaltBug
	modeStop
)

// CPU executes LR35902 machine code one instruction (or one halted
// tick, or one interrupt dispatch) per Step call, returning the number
// of machine cycles that step consumed. It never advances any other
// device itself — the frame driver forwards the returned cycle count
// to the timer, pixel unit and sound unit in turn.
type CPU struct {
	types.Registers
	PC uint16
	SP uint16

	bus Bus
	irq *interrupts.Service

	mode  runMode
	cycles uint8
}

// New returns a CPU in the state real hardware reaches right after the
// boot ROM hands off control, since this core doesn't execute a boot
// ROM: PC at the cartridge entry point, SP at the top of high RAM, and
// the registers the DMG boot ROM is known to leave behind.
func New(bus Bus, irq *interrupts.Service) *CPU {
	c := &CPU{bus: bus, irq: irq}
	c.Registers.Init()
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
	return c
}

// Step executes one unit of work and returns the machine cycles it
// consumed: one instruction and its operands, one 4-cycle halted tick,
// or one 20-cycle interrupt dispatch.
func (c *CPU) Step() uint8 {
	c.cycles = 0

	if c.irq.Pending() && c.mode != modeHaltBug {
		if c.mode == modeHalt {
			c.mode = modeNormal
		}
		if c.irq.IME {
			c.dispatchInterrupt()
			return c.cycles
		}
	}

	switch c.mode {
	case modeHalt, modeStop:
		c.tick()
		return c.cycles
	case modeHaltBug:
		c.mode = modeNormal
		opcode := c.fetchNoAdvance()
		c.execute(opcode)
		c.irq.Tick()
		return c.cycles
	}

	opcode := c.fetch()
	c.execute(opcode)
	c.irq.Tick()
	return c.cycles
}

// tick accounts for 4 machine cycles (one M-cycle) of elapsed time.
func (c *CPU) tick() { c.cycles += 4 }

func (c *CPU) fetch() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	c.tick()
	return v
}

// fetchNoAdvance reads the opcode at PC without advancing PC, modeling
// the HALT bug: the byte following HALT executed with interrupts
// disabled and a pending interrupt is fetched but PC does not move,
// so the same byte is decoded again next step.
func (c *CPU) fetchNoAdvance() uint8 {
	v := c.bus.Read(c.PC)
	c.tick()
	return v
}

func (c *CPU) readOperand() uint8 { return c.fetch() }

func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

func (c *CPU) readByte(address uint16) uint8 {
	c.tick()
	return c.bus.Read(address)
}

func (c *CPU) writeByte(address uint16, value uint8) {
	c.tick()
	c.bus.Write(address, value)
}

func (c *CPU) execute(opcode uint8) {
	if opcode == 0xCB {
		cb := c.readOperand()
		cbTable[cb](c)
		return
	}
	opcodeTable[opcode](c)
}

// dispatchInterrupt pushes PC, jumps to the highest-priority pending
// interrupt's vector, and clears IME. Costs 5 machine cycles (20
// T-cycles): 2 wasted, 2 for the PC push, 1 for the jump.
func (c *CPU) dispatchInterrupt() {
	c.tick()
	c.tick()

	vector, ok := c.irq.Vector()
	if !ok {
		return
	}

	c.push(c.PC)
	c.PC = vector
	c.irq.Disable()
}

// halt enters HALT, choosing the halt-bug variant if interrupts are
// disabled but one is already pending (the documented HALT
// edge case on real hardware).
func (c *CPU) halt() {
	if c.irq.IME {
		c.mode = modeHalt
		return
	}
	if c.irq.Pending() {
		c.mode = modeHaltBug
	} else {
		c.mode = modeHalt
	}
}

func (c *CPU) stop() { c.mode = modeStop }

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8() & 0xF0
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.mode = runMode(s.Read8())
}

func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(uint8(c.mode))
}
