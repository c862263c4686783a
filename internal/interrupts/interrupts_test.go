package interrupts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadIFPinsUnusedBitsHigh(t *testing.T) {
	s := NewService()
	s.Request(Timer)
	assert.Equal(t, uint8(0xE0|Timer), s.ReadIF())
}

func TestPendingRequiresBothEnableAndFlag(t *testing.T) {
	s := NewService()
	s.Request(VBlank)
	assert.False(t, s.Pending())

	s.WriteIE(uint8(VBlank))
	assert.True(t, s.Pending())
}

func TestVectorPicksHighestPriorityPendingInterrupt(t *testing.T) {
	s := NewService()
	s.WriteIE(0x1F)
	s.Request(Timer)
	s.Request(VBlank)

	vector, ok := s.Vector()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x40), vector) // VBlank outranks Timer
}

func TestEIDelaysOneInstructionBeforeIMEGoesTrue(t *testing.T) {
	s := NewService()
	s.ScheduleEnable()
	s.Tick() // end of the EI instruction itself: still not enabled
	assert.False(t, s.IME)

	s.Tick() // end of the following instruction: now enabled
	assert.True(t, s.IME)
}

func TestDisableClearsAPendingOrPrimedEnable(t *testing.T) {
	s := NewService()
	s.ScheduleEnable()
	s.Tick()
	s.Disable()
	s.Tick()
	assert.False(t, s.IME)
}

func TestEnableNowBypassesTheDelay(t *testing.T) {
	s := NewService()
	s.EnableNow()
	assert.True(t, s.IME)
}
