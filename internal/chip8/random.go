package chip8

import (
	"math/rand"
	"time"
)

// Random is the source of bytes for the RND instruction.
type Random interface {
	Byte() uint8
}

type randomSource struct {
	rnd *rand.Rand
}

// NewRandom returns a pseudo-random source. The same seed
// always produces the same sequence of bytes.
func NewRandom(seed int64) Random {
	return &randomSource{rnd: rand.New(rand.NewSource(seed))}
}

func newTimeSeededRandom() Random {
	return NewRandom(time.Now().UnixNano())
}

func (r *randomSource) Byte() uint8 {
	return uint8(r.rnd.Intn(0x100))
}
