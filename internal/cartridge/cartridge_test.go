package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mbc1ROM builds a banks-bank (16KB per bank) MBC1 image with each bank's first
// byte set to its own bank number, so a read at 0x4000 after a bank
// select identifies which bank is mapped in.
func mbc1ROM(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	copy(rom[0x134:], "BANKTEST")
	rom[0x147] = byte(MBC1)
	rom[0x149] = 0

	for b := 0; b < banks; b++ {
		rom[b*0x4000] = byte(b)
	}
	return rom
}

func TestMBC1BankSwitchAndZeroPromotion(t *testing.T) {
	rom := mbc1ROM(8)
	// 2 << rom[0x148] must equal 8 banks.
	rom[0x148] = 2

	cart, err := Load(rom)
	assert.NoError(t, err)

	cart.Write(0x2000, 3)
	assert.Equal(t, uint8(3), cart.Read(0x4000))

	cart.Write(0x2000, 0)
	assert.Equal(t, uint8(1), cart.Read(0x4000))
}

func TestMBC1Bank0InRAMModeUsesHighBits(t *testing.T) {
	rom := mbc1ROM(128)
	rom[0x148] = 6 // 2 << 6 = 128 banks

	cart, err := Load(rom)
	assert.NoError(t, err)

	cart.Write(0x6000, 1) // mode 1: RAM banking mode
	cart.Write(0x4000, 2) // ramBank = 2, also feeds bank0's high bits

	assert.Equal(t, uint8(2<<5), cart.Read(0x0000))
}
