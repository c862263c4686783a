// Package cartridge parses Game Boy ROM headers and provides the bank
// controller implementations (none, MBC1, MBC3[+RTC], MBC5) that resolve
// the CPU-visible ROM and external-RAM windows.
package cartridge

import "github.com/aldermoon/dmgboy/internal/types"

// Cartridge couples a parsed Header with the MBC it selects.
type Cartridge struct {
	Header Header
	mbc    MBC
}

// Load parses rom's header and constructs the matching bank controller.
// rom is retained by reference and must not be mutated afterwards.
func Load(rom []byte) (*Cartridge, error) {
	h, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}
	return &Cartridge{Header: h, mbc: New(rom, h)}, nil
}

func (c *Cartridge) Title() string { return c.Header.Title }

func (c *Cartridge) Read(address uint16) uint8        { return c.mbc.Read(address) }
func (c *Cartridge) Write(address uint16, value uint8) { c.mbc.Write(address, value) }

// RAM returns the cartridge's external RAM for battery-backed
// persistence, or nil if the cartridge has none.
func (c *Cartridge) RAM() []byte       { return c.mbc.RAM() }
func (c *Cartridge) LoadRAM(d []byte)  { c.mbc.LoadRAM(d) }

// Step advances time-dependent cartridge hardware (the MBC3 real-time
// clock). Other bank controllers ignore it.
func (c *Cartridge) Step(cycles uint8) {
	if s, ok := c.mbc.(interface{ Step(uint8) }); ok {
		s.Step(cycles)
	}
}

var _ types.Stater = (*Cartridge)(nil)

func (c *Cartridge) Load(s *types.State) { c.mbc.Load(s) }
func (c *Cartridge) Save(s *types.State) { c.mbc.Save(s) }
