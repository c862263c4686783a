// Package apu implements the Game Boy's sound unit: four channels (two
// square, one wave, one noise) clocked by a 512Hz frame sequencer and
// mixed into a stereo sample ring buffer.
package apu

import "github.com/aldermoon/dmgboy/internal/types"

const (
	sampleRate  = 44100
	framePeriod = 4194304 / 512
)

// APU is the sound unit. It is stepped in CPU-cycle units by the frame
// driver and exposes its mixed output through Samples.
type APU struct {
	enabled bool

	ch1 square
	ch2 square
	ch3 wave
	ch4 noise

	frameSeqAccum int32
	frameSeqStep  uint8

	sampleAccum int32

	volumeLeft, volumeRight uint8
	vinLeft, vinRight       bool
	leftEnable, rightEnable [4]bool

	ring *Ring
}

func New() *APU {
	a := &APU{ring: NewRing(sampleRate)}
	a.ch1.hasSweep = true
	return a
}

// Samples returns the ring buffer an audio sink drains mixed output
// from.
func (a *APU) Samples() *Ring { return a.ring }

func (a *APU) Step(cycles uint8) {
	if !a.enabled {
		return
	}
	c := int32(cycles)

	a.frameSeqAccum += c
	for a.frameSeqAccum >= framePeriod {
		a.frameSeqAccum -= framePeriod
		a.stepFrameSequencer()
	}

	a.ch1.step(c)
	a.ch2.step(c)
	a.ch3.step(c)
	a.ch4.step(c)

	a.sampleAccum += c
	period := int32(4194304 / sampleRate)
	for a.sampleAccum >= period {
		a.sampleAccum -= period
		a.mixSample()
	}
}

func (a *APU) stepFrameSequencer() {
	switch a.frameSeqStep {
	case 0, 2, 4, 6:
		a.ch1.lengthStep()
		a.ch2.lengthStep()
		a.ch3.lengthStep()
		a.ch4.lengthStep()
		if a.frameSeqStep == 2 || a.frameSeqStep == 6 {
			a.ch1.sweepStep()
		}
	case 7:
		a.ch1.volumeStep()
		a.ch2.volumeStep()
		a.ch4.volumeStep()
	}
	a.frameSeqStep = (a.frameSeqStep + 1) & 0x07
}

func (a *APU) mixSample() {
	outputs := [4]uint8{a.ch1.output(), a.ch2.output(), a.ch3.output(), a.ch4.output()}

	var left, right int32
	for i, out := range outputs {
		if a.leftEnable[i] {
			left += int32(out)
		}
		if a.rightEnable[i] {
			right += int32(out)
		}
	}

	left = left * int32(a.volumeLeft+1) * 256 / (4 * 8)
	right = right * int32(a.volumeRight+1) * 256 / (4 * 8)

	a.ring.Push(Sample{Left: int16(left), Right: int16(right)})
}

func (a *APU) Read(address uint16) uint8 {
	switch {
	case address >= types.WaveRAMStart && address <= types.WaveRAMEnd:
		return a.ch3.readWaveRAM(address)
	}
	switch address {
	case types.NR10:
		b := a.ch1.sweepPeriod<<4 | a.ch1.sweepShift
		if a.ch1.sweepNegate {
			b |= 0x08
		}
		return b | 0x80
	case types.NR11:
		return a.ch1.duty<<6 | 0x3F
	case types.NR12:
		return a.ch1.getNRx2()
	case types.NR14:
		b := uint8(0)
		if a.ch1.lengthEnabled {
			b |= 0x40
		}
		return b | 0xBF
	case types.NR21:
		return a.ch2.duty<<6 | 0x3F
	case types.NR22:
		return a.ch2.getNRx2()
	case types.NR24:
		b := uint8(0)
		if a.ch2.lengthEnabled {
			b |= 0x40
		}
		return b | 0xBF
	case types.NR30:
		if a.ch3.dacEnabled {
			return 0xFF
		}
		return 0x7F
	case types.NR32:
		return a.ch3.volumeShift<<5 | 0x9F
	case types.NR34:
		b := uint8(0)
		if a.ch3.lengthEnabled {
			b |= 0x40
		}
		return b | 0xBF
	case types.NR42:
		return a.ch4.getNRx2()
	case types.NR43:
		b := a.ch4.shiftAmount<<4 | a.ch4.divisorCode
		if a.ch4.widthMode {
			b |= 0x08
		}
		return b
	case types.NR44:
		b := uint8(0)
		if a.ch4.lengthEnabled {
			b |= 0x40
		}
		return b | 0xBF
	case types.NR50:
		b := a.volumeRight | a.volumeLeft<<4
		if a.vinRight {
			b |= 0x08
		}
		if a.vinLeft {
			b |= 0x80
		}
		return b
	case types.NR51:
		b := uint8(0)
		for i := 0; i < 4; i++ {
			if a.rightEnable[i] {
				b |= 1 << i
			}
			if a.leftEnable[i] {
				b |= 1 << (i + 4)
			}
		}
		return b
	case types.NR52:
		b := uint8(0)
		if a.enabled {
			b |= 0x80
		}
		if a.ch1.enabled {
			b |= 0x01
		}
		if a.ch2.enabled {
			b |= 0x02
		}
		if a.ch3.enabled {
			b |= 0x04
		}
		if a.ch4.enabled {
			b |= 0x08
		}
		return b | 0x70
	}
	return 0xFF
}

func (a *APU) Write(address uint16, value uint8) {
	if address >= types.WaveRAMStart && address <= types.WaveRAMEnd {
		a.ch3.writeWaveRAM(address, value)
		return
	}
	if !a.enabled && address != types.NR52 {
		return
	}
	switch address {
	case types.NR10:
		a.ch1.sweepPeriod = (value & 0x70) >> 4
		a.ch1.sweepNegate = value&0x08 != 0
		a.ch1.sweepShift = value & 0x07
	case types.NR11:
		a.ch1.duty = (value & 0xC0) >> 6
		a.ch1.lengthLoad = value & 0x3F
		a.ch1.length = 64 - uint(a.ch1.lengthLoad)
	case types.NR12:
		a.ch1.setNRx2(value)
	case types.NR13:
		a.ch1.frequency = (a.ch1.frequency & 0x700) | uint16(value)
	case types.NR14:
		a.ch1.frequency = (a.ch1.frequency & 0x00FF) | (uint16(value)&0x07)<<8
		a.ch1.lengthEnabled = value&0x40 != 0
		if value&0x80 != 0 {
			a.ch1.trigger()
		}
	case types.NR21:
		a.ch2.duty = (value & 0xC0) >> 6
		a.ch2.lengthLoad = value & 0x3F
		a.ch2.length = 64 - uint(a.ch2.lengthLoad)
	case types.NR22:
		a.ch2.setNRx2(value)
	case types.NR23:
		a.ch2.frequency = (a.ch2.frequency & 0x700) | uint16(value)
	case types.NR24:
		a.ch2.frequency = (a.ch2.frequency & 0x00FF) | (uint16(value)&0x07)<<8
		a.ch2.lengthEnabled = value&0x40 != 0
		if value&0x80 != 0 {
			a.ch2.trigger()
		}
	case types.NR30:
		a.ch3.dacEnabled = value&0x80 != 0
		if !a.ch3.dacEnabled {
			a.ch3.enabled = false
		}
	case types.NR31:
		a.ch3.length = 256 - uint(value)
	case types.NR32:
		a.ch3.volumeShift = (value & 0x60) >> 5
	case types.NR33:
		a.ch3.frequency = (a.ch3.frequency & 0x700) | uint16(value)
	case types.NR34:
		a.ch3.frequency = (a.ch3.frequency & 0x00FF) | (uint16(value)&0x07)<<8
		a.ch3.lengthEnabled = value&0x40 != 0
		if value&0x80 != 0 {
			a.ch3.trigger()
		}
	case types.NR41:
		a.ch4.length = 64 - uint(value&0x3F)
	case types.NR42:
		a.ch4.setNRx2(value)
	case types.NR43:
		a.ch4.shiftAmount = (value & 0xF0) >> 4
		a.ch4.widthMode = value&0x08 != 0
		a.ch4.divisorCode = value & 0x07
	case types.NR44:
		a.ch4.lengthEnabled = value&0x40 != 0
		if value&0x80 != 0 {
			a.ch4.trigger()
		}
	case types.NR50:
		a.volumeRight = value & 0x07
		a.volumeLeft = (value >> 4) & 0x07
		a.vinRight = value&0x08 != 0
		a.vinLeft = value&0x80 != 0
	case types.NR51:
		for i := 0; i < 4; i++ {
			a.rightEnable[i] = value&(1<<i) != 0
			a.leftEnable[i] = value&(1<<(i+4)) != 0
		}
	case types.NR52:
		wasEnabled := a.enabled
		a.enabled = value&0x80 != 0
		if wasEnabled && !a.enabled {
			a.ch1 = square{hasSweep: true}
			a.ch2 = square{}
			a.ch3.enabled = false
			a.ch4 = noise{}
			a.volumeLeft, a.volumeRight = 0, 0
			a.vinLeft, a.vinRight = false, false
			a.leftEnable = [4]bool{}
			a.rightEnable = [4]bool{}
		}
	}
}

var _ types.Stater = (*APU)(nil)

func (a *APU) Load(s *types.State) {
	a.enabled = s.ReadBool()
	a.loadSquare(&a.ch1, s)
	a.loadSquare(&a.ch2, s)
	a.loadWave(s)
	a.loadNoise(s)
	a.frameSeqAccum = int32(s.Read32())
	a.frameSeqStep = s.Read8()
	a.sampleAccum = int32(s.Read32())
	a.volumeLeft = s.Read8()
	a.volumeRight = s.Read8()
	a.vinLeft = s.ReadBool()
	a.vinRight = s.ReadBool()
	for i := 0; i < 4; i++ {
		a.leftEnable[i] = s.ReadBool()
		a.rightEnable[i] = s.ReadBool()
	}
}

func (a *APU) Save(s *types.State) {
	s.WriteBool(a.enabled)
	a.saveSquare(&a.ch1, s)
	a.saveSquare(&a.ch2, s)
	a.saveWave(s)
	a.saveNoise(s)
	s.Write32(uint32(a.frameSeqAccum))
	s.Write8(a.frameSeqStep)
	s.Write32(uint32(a.sampleAccum))
	s.Write8(a.volumeLeft)
	s.Write8(a.volumeRight)
	s.WriteBool(a.vinLeft)
	s.WriteBool(a.vinRight)
	for i := 0; i < 4; i++ {
		s.WriteBool(a.leftEnable[i])
		s.WriteBool(a.rightEnable[i])
	}
}

func (a *APU) saveSquare(c *square, s *types.State) {
	s.WriteBool(c.enabled)
	s.WriteBool(c.dacEnabled)
	s.Write8(c.duty)
	s.Write8(c.lengthLoad)
	s.Write32(uint32(c.length))
	s.WriteBool(c.lengthEnabled)
	s.Write8(c.startingVolume)
	s.WriteBool(c.envelopeAdd)
	s.Write8(c.envelopePeriod)
	s.Write8(c.envelopeTimer)
	s.Write8(c.currentVolume)
	s.Write16(c.frequency)
	s.Write32(uint32(c.frequencyTimer))
	s.Write8(c.dutyPosition)
	s.Write8(c.sweepPeriod)
	s.WriteBool(c.sweepNegate)
	s.Write8(c.sweepShift)
	s.Write8(c.sweepTimer)
	s.Write16(c.sweepShadowFreq)
	s.WriteBool(c.sweepEnabled)
}

func (a *APU) loadSquare(c *square, s *types.State) {
	hasSweep := c.hasSweep
	c.enabled = s.ReadBool()
	c.dacEnabled = s.ReadBool()
	c.duty = s.Read8()
	c.lengthLoad = s.Read8()
	c.length = uint(s.Read32())
	c.lengthEnabled = s.ReadBool()
	c.startingVolume = s.Read8()
	c.envelopeAdd = s.ReadBool()
	c.envelopePeriod = s.Read8()
	c.envelopeTimer = s.Read8()
	c.currentVolume = s.Read8()
	c.frequency = s.Read16()
	c.frequencyTimer = int32(s.Read32())
	c.dutyPosition = s.Read8()
	c.sweepPeriod = s.Read8()
	c.sweepNegate = s.ReadBool()
	c.sweepShift = s.Read8()
	c.sweepTimer = s.Read8()
	c.sweepShadowFreq = s.Read16()
	c.sweepEnabled = s.ReadBool()
	c.hasSweep = hasSweep
}

func (a *APU) saveWave(s *types.State) {
	c := &a.ch3
	s.WriteBool(c.enabled)
	s.WriteBool(c.dacEnabled)
	s.Write32(uint32(c.length))
	s.WriteBool(c.lengthEnabled)
	s.Write16(c.frequency)
	s.Write32(uint32(c.frequencyTimer))
	s.Write8(c.volumeShift)
	s.Write8(c.position)
	s.WriteData(c.ram[:])
}

func (a *APU) loadWave(s *types.State) {
	c := &a.ch3
	c.enabled = s.ReadBool()
	c.dacEnabled = s.ReadBool()
	c.length = uint(s.Read32())
	c.lengthEnabled = s.ReadBool()
	c.frequency = s.Read16()
	c.frequencyTimer = int32(s.Read32())
	c.volumeShift = s.Read8()
	c.position = s.Read8()
	s.ReadData(c.ram[:])
}

func (a *APU) saveNoise(s *types.State) {
	c := &a.ch4
	s.WriteBool(c.enabled)
	s.WriteBool(c.dacEnabled)
	s.Write32(uint32(c.length))
	s.WriteBool(c.lengthEnabled)
	s.Write8(c.startingVolume)
	s.WriteBool(c.envelopeAdd)
	s.Write8(c.envelopePeriod)
	s.Write8(c.envelopeTimer)
	s.Write8(c.currentVolume)
	s.Write8(c.shiftAmount)
	s.WriteBool(c.widthMode)
	s.Write8(c.divisorCode)
	s.Write16(c.lfsr)
	s.Write32(uint32(c.frequencyTimer))
}

func (a *APU) loadNoise(s *types.State) {
	c := &a.ch4
	c.enabled = s.ReadBool()
	c.dacEnabled = s.ReadBool()
	c.length = uint(s.Read32())
	c.lengthEnabled = s.ReadBool()
	c.startingVolume = s.Read8()
	c.envelopeAdd = s.ReadBool()
	c.envelopePeriod = s.Read8()
	c.envelopeTimer = s.Read8()
	c.currentVolume = s.Read8()
	c.shiftAmount = s.Read8()
	c.widthMode = s.ReadBool()
	c.divisorCode = s.Read8()
	c.lfsr = s.Read16()
	c.frequencyTimer = int32(s.Read32())
}
