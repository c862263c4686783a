package types

// Register is an 8-bit CPU register.
type Register = uint8

// RegisterPair aliases two 8-bit registers as a single 16-bit value, high
// byte first, matching the AF/BC/DE/HL pairing of the LR35902 register file.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the pair's combined 16-bit value.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 splits value across the pair's two registers.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers holds the CPU's eight 8-bit registers and their 16-bit pair
// aliases. The pairs are pointers into the same storage as the individual
// registers, so writes through either view are immediately visible to the
// other.
type Registers struct {
	A, B, C, D, E, F, H, L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// Init wires up the register pairs. Must be called once after the
// Registers value is embedded in its owner.
func (r *Registers) Init() {
	r.BC = &RegisterPair{&r.B, &r.C}
	r.DE = &RegisterPair{&r.D, &r.E}
	r.HL = &RegisterPair{&r.H, &r.L}
	r.AF = &RegisterPair{&r.A, &r.F}
}
