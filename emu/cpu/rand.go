package cpu

import (
	"math/rand"
	"time"
)

// RandomSource supplies the bytes consumed by Cxkk.
type RandomSource interface {
	NextByte() uint8
}

type mathSource struct {
	r *rand.Rand
}

// NewSeededSource returns a source backed by math/rand. Runs with the
// same seed produce the same byte sequence.
func NewSeededSource(seed int64) RandomSource {
	return &mathSource{r: rand.New(rand.NewSource(seed))}
}

// newClockSource is the default source, seeded from the wall clock.
func newClockSource() RandomSource {
	return NewSeededSource(time.Now().UnixNano())
}

func (s *mathSource) NextByte() uint8 {
	return uint8(s.r.Intn(256))
}

// SequenceSource replays a fixed list of bytes, wrapping at the end.
type SequenceSource struct {
	seq []uint8
	pos int
}

// NewSequenceSource returns a source cycling through seq. An empty
// sequence always yields zero.
func NewSequenceSource(seq ...uint8) *SequenceSource {
	return &SequenceSource{seq: seq}
}

func (s *SequenceSource) NextByte() uint8 {
	if len(s.seq) == 0 {
		return 0
	}
	b := s.seq[s.pos%len(s.seq)]
	s.pos++
	return b
}
