package apu

// wave implements channel 3: playback of a 32-sample, 4-bit waveform
// stored in wave RAM (0xFF30-0xFF3F, two samples packed per byte).
type wave struct {
	enabled    bool
	dacEnabled bool

	length        uint
	lengthEnabled bool

	frequency      uint16
	frequencyTimer int32

	volumeShift uint8 // 0=mute, 1=100%, 2=50%, 3=25%

	position uint8
	ram      [16]byte
}

var waveShift = [4]uint8{4, 0, 1, 2}

func (c *wave) reloadFrequencyTimer() {
	c.frequencyTimer = int32(2048-c.frequency) * 2
}

func (c *wave) step(cycles int32) {
	c.frequencyTimer -= cycles
	for c.frequencyTimer <= 0 {
		c.reloadFrequencyTimer()
		c.position = (c.position + 1) & 0x1F
	}
}

func (c *wave) sample() uint8 {
	b := c.ram[c.position/2]
	if c.position%2 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

func (c *wave) output() uint8 {
	if !c.enabled || !c.dacEnabled {
		return 0
	}
	return c.sample() >> waveShift[c.volumeShift]
}

func (c *wave) lengthStep() {
	if c.lengthEnabled && c.length > 0 {
		c.length--
		if c.length == 0 {
			c.enabled = false
		}
	}
}

func (c *wave) trigger() {
	c.enabled = c.dacEnabled
	if c.length == 0 {
		c.length = 256
	}
	c.reloadFrequencyTimer()
	c.position = 0
}

func (c *wave) readWaveRAM(address uint16) uint8 {
	return c.ram[address-0xFF30]
}

func (c *wave) writeWaveRAM(address uint16, value uint8) {
	c.ram[address-0xFF30] = value
}
