package apu

var squareDuty = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 1, 1, 1},
	{0, 1, 1, 1, 1, 1, 1, 0},
}

// square implements channels 1 and 2: a duty-cycle generator with a
// volume envelope, plus an optional frequency sweep used only by
// channel 1.
type square struct {
	enabled    bool
	dacEnabled bool

	duty       uint8
	lengthLoad uint8
	length     uint

	lengthEnabled bool

	startingVolume  uint8
	envelopeAdd     bool
	envelopePeriod  uint8
	envelopeTimer   uint8
	currentVolume   uint8

	frequency      uint16
	frequencyTimer int32
	dutyPosition   uint8

	hasSweep        bool
	sweepPeriod     uint8
	sweepNegate     bool
	sweepShift      uint8
	sweepTimer      uint8
	sweepShadowFreq uint16
	sweepEnabled    bool
}

func (c *square) reloadFrequencyTimer() {
	c.frequencyTimer = int32(2048-c.frequency) * 4
}

func (c *square) step(cycles int32) {
	c.frequencyTimer -= cycles
	for c.frequencyTimer <= 0 {
		c.reloadFrequencyTimer()
		c.dutyPosition = (c.dutyPosition + 1) & 0x07
	}
}

func (c *square) output() uint8 {
	if !c.enabled || !c.dacEnabled {
		return 0
	}
	return squareDuty[c.duty][c.dutyPosition] * c.currentVolume
}

func (c *square) lengthStep() {
	if c.lengthEnabled && c.length > 0 {
		c.length--
		if c.length == 0 {
			c.enabled = false
		}
	}
}

func (c *square) volumeStep() {
	if c.envelopePeriod == 0 {
		return
	}
	if c.envelopeTimer > 0 {
		c.envelopeTimer--
		if c.envelopeTimer == 0 {
			c.envelopeTimer = c.envelopePeriod
			if c.envelopeAdd && c.currentVolume < 0x0F {
				c.currentVolume++
			} else if !c.envelopeAdd && c.currentVolume > 0 {
				c.currentVolume--
			}
		}
	}
}

func (c *square) sweepCalculate() uint16 {
	delta := c.sweepShadowFreq >> c.sweepShift
	var freq uint16
	if c.sweepNegate {
		freq = c.sweepShadowFreq - delta
	} else {
		freq = c.sweepShadowFreq + delta
	}
	if freq > 2047 {
		c.enabled = false
	}
	return freq
}

func (c *square) sweepStep() {
	if !c.hasSweep {
		return
	}
	if c.sweepTimer > 0 {
		c.sweepTimer--
	}
	if c.sweepTimer != 0 {
		return
	}
	if c.sweepPeriod > 0 {
		c.sweepTimer = c.sweepPeriod
	} else {
		c.sweepTimer = 8
	}
	if c.sweepEnabled && c.sweepPeriod > 0 {
		freq := c.sweepCalculate()
		if freq <= 2047 && c.sweepShift > 0 {
			c.sweepShadowFreq = freq
			c.frequency = freq
			c.sweepCalculate()
		}
	}
}

// trigger implements the NRx4 bit-7 trigger event for channels 1 and 2:
// reload the length counter if expired, re-seed the envelope and (for
// channel 1) the sweep unit, and enable the channel if its DAC is on.
func (c *square) trigger() {
	c.enabled = c.dacEnabled
	if c.length == 0 {
		c.length = 64
	}
	c.reloadFrequencyTimer()
	c.envelopeTimer = c.envelopePeriod
	c.currentVolume = c.startingVolume

	if c.hasSweep {
		c.sweepShadowFreq = c.frequency
		if c.sweepPeriod > 0 {
			c.sweepTimer = c.sweepPeriod
		} else {
			c.sweepTimer = 8
		}
		c.sweepEnabled = c.sweepPeriod > 0 || c.sweepShift > 0
		if c.sweepShift > 0 {
			c.sweepCalculate()
		}
	}
}

func (c *square) setNRx2(v uint8) {
	c.startingVolume = v >> 4
	c.envelopeAdd = v&0x08 != 0
	c.envelopePeriod = v & 0x07
	c.dacEnabled = v&0xF8 != 0
	if !c.dacEnabled {
		c.enabled = false
	}
}

func (c *square) getNRx2() uint8 {
	b := c.startingVolume<<4 | c.envelopePeriod
	if c.envelopeAdd {
		b |= 0x08
	}
	return b
}
