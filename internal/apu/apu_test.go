package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aldermoon/dmgboy/internal/types"
)

// Channel 1's sweep unit must disable the channel on the initial
// trigger check when the first computed frequency exceeds 2047:
// shadow=1400, shift=1 -> 1400 + (1400>>1) = 2100 > 2047.
func TestSweepOverflowDisablesChannelOnTrigger(t *testing.T) {
	a := New()
	a.Write(types.NR52, 0x80) // master enable

	a.Write(types.NR10, 0x11) // period=1, negate=0, shift=1
	a.Write(types.NR12, 0xF0) // max volume, DAC enabled
	a.Write(types.NR13, 0x78) // frequency low byte: 1400 & 0xFF
	a.Write(types.NR14, 0x85) // trigger, frequency high bits: 1400>>8

	assert.False(t, a.ch1.enabled)
}

// With shift=0 the trigger skips the initial overflow check, so the
// channel stays enabled right after trigger even at frequency 2047.
func TestSweepWithZeroShiftSkipsTriggerOverflowCheck(t *testing.T) {
	a := New()
	a.Write(types.NR52, 0x80)

	a.Write(types.NR10, 0x10) // period=1, negate=0, shift=0
	a.Write(types.NR12, 0xF0)
	a.Write(types.NR13, 0xFF)
	a.Write(types.NR14, 0x87) // frequency = 0x7FF = 2047

	assert.True(t, a.ch1.enabled)
}

func TestRegisterWritesIgnoredWhileMasterDisabled(t *testing.T) {
	a := New()
	a.Write(types.NR12, 0xF0)
	assert.Equal(t, uint8(0), a.ch1.startingVolume)
}
