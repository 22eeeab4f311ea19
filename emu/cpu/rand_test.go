package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSeededSourceRepeats(t *testing.T) {
	a := NewSeededSource(42)
	b := NewSeededSource(42)
	for i := 0; i < 64; i++ {
		assert.Equal(t, a.NextByte(), b.NextByte())
	}
}

func TestSequenceSource(t *testing.T) {
	s := NewSequenceSource(1, 2, 3)
	got := make([]uint8, 0, 7)
	for i := 0; i < 7; i++ {
		got = append(got, s.NextByte())
	}
	assert.Equal(t, []uint8{1, 2, 3, 1, 2, 3, 1}, got)

	empty := NewSequenceSource()
	assert.Equal(t, uint8(0), empty.NextByte())
}
