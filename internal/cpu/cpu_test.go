package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aldermoon/dmgboy/internal/interrupts"
)

// flatBus is a 64KB RAM-backed Bus good enough to run hand-written
// programs against the CPU without a cartridge, pixel unit or timer.
type flatBus struct {
	mem [0x10000]byte
}

func (b *flatBus) Read(address uint16) uint8         { return b.mem[address] }
func (b *flatBus) Write(address uint16, value uint8) { b.mem[address] = value }

func newTestCPU(program []uint8) (*CPU, *flatBus, *interrupts.Service) {
	b := &flatBus{}
	copy(b.mem[0x100:], program)
	irq := interrupts.NewService()
	c := New(b, irq)
	c.PC = 0x100
	c.SP = 0xFFFE
	return c, b, irq
}

func TestNOPRoundTrip(t *testing.T) {
	c, _, _ := newTestCPU([]uint8{0x00})
	cycles := c.Step()
	assert.Equal(t, uint8(4), cycles)
	assert.Equal(t, uint16(0x101), c.PC)
}

func TestLoadImmediateIntoRegister(t *testing.T) {
	c, _, _ := newTestCPU([]uint8{0x3E, 0x42}) // LD A,0x42
	c.Step()
	assert.Equal(t, uint8(0x42), c.A)
}

func TestAddSetsCarryAndHalfCarry(t *testing.T) {
	c, _, _ := newTestCPU([]uint8{0x87}) // ADD A,A
	c.A = 0xFF
	c.Step()
	assert.Equal(t, uint8(0xFE), c.A)
	assert.True(t, c.isFlagSet(flagCarry))
	assert.True(t, c.isFlagSet(flagHalfCarry))
	assert.False(t, c.isFlagSet(flagZero))
}

func TestIncDecWrapAndZeroFlag(t *testing.T) {
	c, _, _ := newTestCPU([]uint8{0x04, 0x05}) // INC B, DEC B
	c.B = 0xFF
	c.Step()
	assert.Equal(t, uint8(0), c.B)
	assert.True(t, c.isFlagSet(flagZero))
	assert.True(t, c.isFlagSet(flagHalfCarry))

	c.Step()
	assert.Equal(t, uint8(0xFF), c.B)
	assert.False(t, c.isFlagSet(flagZero))
}

func TestJumpRelativeTaken(t *testing.T) {
	c, _, _ := newTestCPU([]uint8{0x18, 0x05}) // JR +5
	cycles := c.Step()
	assert.Equal(t, uint16(0x107), c.PC)
	assert.Equal(t, uint8(12), cycles)
}

func TestCallAndReturn(t *testing.T) {
	c, b, _ := newTestCPU([]uint8{0xCD, 0x00, 0x02}) // CALL 0x0200
	b.mem[0x200] = 0xC9                              // RET
	cycles := c.Step()
	assert.Equal(t, uint16(0x0200), c.PC)
	assert.Equal(t, uint8(24), cycles)

	cycles = c.Step()
	assert.Equal(t, uint16(0x0103), c.PC)
	assert.Equal(t, uint8(16), cycles)
}

func TestPushPopRoundTrip(t *testing.T) {
	c, _, _ := newTestCPU([]uint8{0xC5, 0xD1}) // PUSH BC, POP DE
	c.BC.SetUint16(0xBEEF)
	c.Step()
	c.Step()
	assert.Equal(t, uint16(0xBEEF), c.DE.Uint16())
}

func TestHaltWakesOnPendingInterrupt(t *testing.T) {
	c, _, irq := newTestCPU([]uint8{0x76}) // HALT
	irq.WriteIE(interrupts.VBlank)
	irq.IME = true
	c.Step() // executes HALT

	irq.Request(interrupts.VBlank)
	cycles := c.Step() // should dispatch the interrupt, not tick idle
	assert.Equal(t, uint8(20), cycles)
	assert.Equal(t, uint16(0x40), c.PC)
}

func TestUndefinedOpcodeIsFourCycleNoOp(t *testing.T) {
	c, _, _ := newTestCPU([]uint8{0xD3}) // unused opcode
	pcBefore := c.PC
	cycles := c.Step()
	assert.Equal(t, uint8(4), cycles)
	assert.Equal(t, pcBefore+1, c.PC)
}

func TestCBBitInstruction(t *testing.T) {
	c, _, _ := newTestCPU([]uint8{0xCB, 0x7F}) // BIT 7,A
	c.A = 0x00
	cycles := c.Step()
	assert.Equal(t, uint8(8), cycles)
	assert.True(t, c.isFlagSet(flagZero))
	assert.True(t, c.isFlagSet(flagHalfCarry))
	assert.False(t, c.isFlagSet(flagSubtract))
}

// F's low nibble is unused on real hardware and must read back zero no
// matter what garbage a POP AF pulls off the stack.
func TestPopAFMasksUnusedLowNibbleOfF(t *testing.T) {
	c, _, _ := newTestCPU([]uint8{0xF1}) // POP AF
	c.SP = 0xFFFC
	c.push(0xFFFF) // would set every bit of F if unmasked

	c.Step()
	assert.Zero(t, c.F&0x0F)
}

func TestEIIsDeferredByOneInstruction(t *testing.T) {
	c, _, irq := newTestCPU([]uint8{0xFB, 0x00}) // EI, NOP
	c.Step()                                     // EI: IME not yet set
	assert.False(t, irq.IME)
	c.Step() // NOP completes, latch applies
	assert.True(t, irq.IME)
}
