package walk

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"

	"golang.org/x/exp/rand"
)

// Source is the random stream consumed by every generator.
type Source = rand.Source

// NewSource returns an independent random stream for the given seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// RandomSeed reads a seed from the system entropy pool, falling back to the
// wall clock.
func RandomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

func standardNormals(rng *rand.Rand, n int) []float64 {
	z := make([]float64, n)
	for i := range z {
		z[i] = rng.NormFloat64()
	}
	return z
}
