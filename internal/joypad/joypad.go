// Package joypad implements the Game Boy's P1 input register: button
// and direction line selection, active-low readback, and the joypad
// interrupt raised on a press edge.
package joypad

import (
	"github.com/aldermoon/dmgboy/internal/interrupts"
	"github.com/aldermoon/dmgboy/internal/types"
)

// Button identifies one of the eight physical inputs.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

// Joypad tracks which of the eight buttons are currently held and
// exposes them through P1 according to whichever line (action,
// direction, or both) the game has selected.
type Joypad struct {
	pressed uint8 // bit set = button held, indexed by Button

	selectActions   bool
	selectDirection bool

	irq interrupts.Raiser
}

func New(irq interrupts.Raiser) *Joypad {
	return &Joypad{irq: irq}
}

// Press marks button as held and, on the press edge, requests a joypad
// interrupt if that button's line is currently selected.
func (j *Joypad) Press(button Button) {
	wasPressed := j.pressed&(1<<button) != 0
	j.pressed |= 1 << button
	if !wasPressed && j.lineSelected(button) {
		j.irq.Request(interrupts.Joypad)
	}
}

// Release marks button as no longer held.
func (j *Joypad) Release(button Button) {
	j.pressed &^= 1 << button
}

func (j *Joypad) lineSelected(button Button) bool {
	if button <= ButtonStart {
		return j.selectActions
	}
	return j.selectDirection
}

func (j *Joypad) Read(address uint16) uint8 {
	if address != types.P1 {
		return 0xFF
	}
	lines := uint8(0x0F)
	if j.selectActions {
		lines &^= j.pressed & 0x0F
	}
	if j.selectDirection {
		lines &^= (j.pressed >> 4) & 0x0F
	}

	selectBits := uint8(0x30)
	if j.selectActions {
		selectBits &^= types.Bit5
	}
	if j.selectDirection {
		selectBits &^= types.Bit4
	}
	return 0xC0 | selectBits | lines
}

func (j *Joypad) Write(address uint16, value uint8) {
	if address != types.P1 {
		return
	}
	j.selectActions = value&types.Bit5 == 0
	j.selectDirection = value&types.Bit4 == 0
}

var _ types.Stater = (*Joypad)(nil)

func (j *Joypad) Load(s *types.State) {
	j.pressed = s.Read8()
	j.selectActions = s.ReadBool()
	j.selectDirection = s.ReadBool()
}

func (j *Joypad) Save(s *types.State) {
	s.Write8(j.pressed)
	s.WriteBool(j.selectActions)
	s.WriteBool(j.selectDirection)
}
