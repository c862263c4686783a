package cpu

// instrFunc executes one decoded instruction against c, including any
// operand fetches and the memory accesses its addressing mode requires.
type instrFunc func(c *CPU)

// opcodeTable and cbTable are indexed by the raw opcode byte (and, for
// cbTable, the byte following a 0xCB prefix). Both are populated by
// init functions across this package's files, following the same
// "register one function per opcode, generate the repetitive families
// with a loop" shape the hand-written instruction set below uses
// throughout.
var opcodeTable [256]instrFunc
var cbTable [256]instrFunc

// define registers fn as the handler for opcode in the unprefixed table.
func define(opcode uint8, fn instrFunc) {
	opcodeTable[opcode] = fn
}

// defineCB registers fn as the handler for opcode in the CB-prefixed
// table.
func defineCB(opcode uint8, fn instrFunc) {
	cbTable[opcode] = fn
}

func init() {
	// Every opcode not claimed by another init() in this package is a
	// genuine gap in the LR35902 map (0xCB is intercepted by execute
	// before the table lookup, and a handful of bytes are simply
	// unused by the real hardware). Treat them as 4-cycle no-ops
	// rather than panicking, so a ROM that stumbles into one keeps
	// running instead of crashing the core. Only empty slots are
	// filled: the init functions of files sorted before this one
	// (alu.go, bit.go) have already run.
	for i := range opcodeTable {
		if opcodeTable[i] == nil {
			opcodeTable[i] = undefinedOpcode
		}
	}
	for i := range cbTable {
		if cbTable[i] == nil {
			cbTable[i] = undefinedOpcode
		}
	}
}

// undefinedOpcode does nothing; the opcode fetch has already charged
// its 4 cycles.
func undefinedOpcode(c *CPU) {
}

// readReg8/writeReg8 map the standard 3-bit register encoding (0=B
// 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A) used throughout the opcode map onto
// the register file, reading or writing through the bus for index 6.
func (c *CPU) readReg8(i uint8) uint8 {
	switch i {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.readByte(c.HL.Uint16())
	default:
		return c.A
	}
}

func (c *CPU) writeReg8(i uint8, v uint8) {
	switch i {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.writeByte(c.HL.Uint16(), v)
	default:
		c.A = v
	}
}

// getPairSP/setPairSP map the standard 2-bit pair encoding (0=BC 1=DE
// 2=HL 3=SP) used by 16-bit loads, INC/DEC rr and ADD HL,rr.
func (c *CPU) getPairSP(i uint8) uint16 {
	switch i {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

func (c *CPU) setPairSP(i uint8, v uint16) {
	switch i {
	case 0:
		c.BC.SetUint16(v)
	case 1:
		c.DE.SetUint16(v)
	case 2:
		c.HL.SetUint16(v)
	default:
		c.SP = v
	}
}
