package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainNeverReturnsMoreThanWasPushed(t *testing.T) {
	r := NewRing(8)
	for i := 0; i < 3; i++ {
		r.Push(Sample{Left: int16(i), Right: int16(i)})
	}

	out := r.Drain(100)
	assert.Len(t, out, 3)
	assert.Zero(t, r.Len())
}

// Pushing past capacity drops the oldest sample rather than growing the
// buffer or blocking; the consumer never observes more than capacity
// unread samples and always sees the newest ones.
func TestPushOverwritesOldestSampleWhenFull(t *testing.T) {
	r := NewRing(4)
	for i := 0; i < 6; i++ {
		r.Push(Sample{Left: int16(i), Right: int16(i)})
	}

	assert.Equal(t, 4, r.Len())

	out := r.Drain(4)
	for i, s := range out {
		assert.Equal(t, int16(i+2), s.Left) // samples 0 and 1 were dropped
	}
}

func TestDrainRemovesSamplesInFIFOOrder(t *testing.T) {
	r := NewRing(4)
	r.Push(Sample{Left: 1})
	r.Push(Sample{Left: 2})

	first := r.Drain(1)
	assert.Equal(t, int16(1), first[0].Left)

	second := r.Drain(1)
	assert.Equal(t, int16(2), second[0].Left)
}
